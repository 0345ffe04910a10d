package app

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"pricewatch/internal/config"
	"pricewatch/internal/delivery/httpapi"
	"pricewatch/internal/infra/binance"
	"pricewatch/internal/infra/db"
	"pricewatch/internal/infra/expo"
	"pricewatch/internal/infra/log"
	"pricewatch/internal/usecase"
)

type App struct {
	server    *httpapi.Server
	poller    *usecase.Poller
	logger    *zap.Logger
	cleanupFn func() error
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	logger, err := log.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.WebhookSecret == "changeme" {
		logger.Warn("TV_SECRET left at its default value")
	}

	dbConn, err := db.Open(cfg, logger)
	if err != nil {
		return nil, err
	}

	alertRepo := db.NewAlertRepository(dbConn)
	prices := binance.NewClient(cfg.BinanceBaseURL, cfg.BinanceTimeout, logger)
	notifier := expo.NewClient(cfg.ExpoPushURL, cfg.ExpoTimeout, logger)

	alertUC := usecase.NewAlertUsecase(alertRepo)
	evaluator := usecase.NewEvaluator(alertRepo, notifier, logger)
	poller := usecase.NewPoller(alertRepo, prices, evaluator, cfg.PollSource, cfg.PollInterval, logger)

	handlers := httpapi.NewHandlers(alertUC, evaluator, cfg.WebhookSecret, cfg.WebhookSource, logger)
	server := httpapi.NewServer(cfg.HTTPAddr, handlers, cfg.ShutdownTimeout, logger)

	cleanup := func() error {
		sqlDB, err := dbConn.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return &App{server: server, poller: poller, logger: logger, cleanupFn: cleanup}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.logger.Info("pricewatch starting")

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return a.server.Run(groupCtx)
	})
	group.Go(func() error {
		return a.poller.Run(groupCtx)
	})

	return group.Wait()
}

func (a *App) Shutdown() {
	a.logger.Info("pricewatch shutting down")
	if a.cleanupFn != nil {
		if err := a.cleanupFn(); err != nil {
			a.logger.Warn("failed to close database", zap.Error(err))
		}
	}
	_ = a.logger.Sync()
}
