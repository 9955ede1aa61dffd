package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/resell-server/api"
	"github.com/carson-networks/resell-server/internal/config"
	"github.com/carson-networks/resell-server/internal/logging"
	"github.com/carson-networks/resell-server/internal/market"
	"github.com/carson-networks/resell-server/internal/operator"
	"github.com/carson-networks/resell-server/internal/service"
	"github.com/carson-networks/resell-server/internal/storage"
	"github.com/carson-networks/resell-server/internal/storage/memstore"
	"github.com/carson-networks/resell-server/internal/storage/migrations"
	"github.com/carson-networks/resell-server/internal/storage/sqlconfig"
)

func openStorage(ctx context.Context, env *config.Config, logger *logrus.Logger) (*storage.Storage, error) {
	if env.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage, nothing will be persisted")
		return memstore.New(), nil
	}

	db, err := sqlconfig.Open(ctx, env)
	if err != nil {
		return nil, err
	}
	status, err := migrations.Up(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	logger.WithFields(logrus.Fields{
		"preMigrationVersion":  status.PreMigrationVersion,
		"postMigrationVersion": status.PostMigrationVersion,
	}).Info("Migration status")
	return sqlconfig.NewStorage(db), nil
}

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("resell-server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStorage(ctx, envConfig, logger)
	if err != nil {
		logger.WithError(err).Fatal("openStorage")
		return
	}

	commission, err := market.NewCommissionCalculator(envConfig.CommissionRate)
	if err != nil {
		logger.WithError(err).Fatal("market.NewCommissionCalculator")
		return
	}

	op := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers, logger)
	op.Start()

	svc := service.NewService(store, op, service.Options{
		Commission:        commission,
		AllowSelfPurchase: envConfig.AllowSelfPurchase,
		FeedCacheSize:     envConfig.FeedCacheSize,
		FeedCacheTTL:      envConfig.FeedCacheTTL,
	})

	httpRest := api.Rest{
		Logger:             logger,
		Port:               envConfig.HTTPPort,
		Service:            svc,
		PurchaseRatePerMin: envConfig.PurchaseRatePerMin,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpRest.Serve(gctx)
	})

	err = g.Wait()
	op.Stop()
	if closeErr := store.Close(); closeErr != nil {
		logger.WithError(closeErr).Error("storage.Close")
	}
	if err != nil {
		logger.WithError(err).Fatal("resell-server stopped")
		return
	}
	logger.Info("resell-server stopped")
}
