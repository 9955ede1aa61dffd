package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/resell-server/internal/handlers/v1/feed"
	"github.com/carson-networks/resell-server/internal/handlers/v1/item"
	"github.com/carson-networks/resell-server/internal/handlers/v1/status"
	"github.com/carson-networks/resell-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/resell-server/internal/handlers/v1/user"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/middleware"
	"github.com/carson-networks/resell-server/internal/service"
)

const shutdownTimeout = 10 * time.Second

type Rest struct {
	Logger             *logrus.Logger
	Port               string
	Service            *service.Service
	PurchaseRatePerMin int
}

// Handler builds the mux serving /status and the huma API under /v1.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler()
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Resell Server", "1.0.0"))
	api.UseMiddleware(
		logging.HumaMiddleware(r.Logger),
		middleware.RateLimit(api, r.PurchaseRatePerMin, item.PurchaseOperationID),
	)

	svc := r.Service
	item.NewCreateItemHandler(svc.Listing).Register(api)
	item.NewGetItemHandler(svc.Listing).Register(api)
	item.NewUpdateItemHandler(svc.Listing).Register(api)
	item.NewDeleteItemHandler(svc.Listing).Register(api)
	item.NewPurchaseItemHandler(svc.Transaction).Register(api)
	item.NewGetItemTransactionHandler(svc.Transaction).Register(api)
	feed.NewFeedHandler(svc.Search).Register(api)
	user.NewRegisterUserHandler(svc.User).Register(api)
	user.NewGetUserHandler(svc.User).Register(api)
	transaction.NewListTransactionsHandler(svc.Transaction).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(30) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
			return err
		}
		return nil
	case <-ctx.Done():
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		r.Logger.WithError(err).Error("HttpServer.Serve.shutdown error")
		return err
	}
	return nil
}
