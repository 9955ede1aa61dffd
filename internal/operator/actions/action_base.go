package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/storage"
)

// IAction is one unit of write work. Perform runs inside a single storage
// transaction: returning an error rolls every write back.
type IAction interface {
	Perform(ctx context.Context, writer *storage.Writer) error
}

// translate maps storage sentinels onto the market error taxonomy.
func translate(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("%s: %w", what, market.ErrNotFound)
	case errors.Is(err, storage.ErrDuplicate):
		return fmt.Errorf("%s: %w", what, market.ErrAlreadyExists)
	}
	return fmt.Errorf("%s: %w", what, err)
}
