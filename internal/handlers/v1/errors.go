// Package v1 holds the error mapping shared by the v1 handlers.
package v1

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/operator"
)

// ToHumaError maps a service error to its HTTP status. Unknown errors become
// a 500 with the given message.
func ToHumaError(err error, message string) error {
	var verr *market.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]error, len(verr.Problems))
		for i, p := range verr.Problems {
			details[i] = &huma.ErrorDetail{Location: p.Field, Message: p.Message}
		}
		return huma.Error422UnprocessableEntity("validation failed", details...)
	case errors.Is(err, market.ErrValidation):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, market.ErrAlreadyExists):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, market.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, market.ErrInvalidOwner):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, market.ErrItemNotAvailable), errors.Is(err, market.ErrSelfPurchase):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, operator.ErrStopped),
		errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return huma.Error503ServiceUnavailable("server is shutting down or the request timed out", err)
	}
	return huma.NewError(http.StatusInternalServerError, message, err)
}
