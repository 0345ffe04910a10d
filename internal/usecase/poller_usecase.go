package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"pricewatch/internal/domain"
	"pricewatch/internal/infra/metrics"
)

// Poller drives the pull side of evaluation: every interval it fetches the
// current price for each symbol carrying an active alert on its source and
// hands the result to the Evaluator. Fetch failures skip that symbol for the
// tick; the next tick is the retry.
type Poller struct {
	alerts    domain.AlertRepository
	prices    domain.PriceSource
	evaluator *Evaluator
	source    string
	interval  time.Duration
	logger    *zap.Logger
}

func NewPoller(alerts domain.AlertRepository, prices domain.PriceSource, evaluator *Evaluator, source string, interval time.Duration, logger *zap.Logger) *Poller {
	return &Poller{
		alerts:    alerts,
		prices:    prices,
		evaluator: evaluator,
		source:    source,
		interval:  interval,
		logger:    logger,
	}
}

// Run loops until ctx is cancelled. It never returns an error from a tick;
// nothing inside a tick is fatal to the loop.
func (p *Poller) Run(ctx context.Context) error {
	p.logger.Info("poll loop started",
		zap.String("source", p.source),
		zap.Duration("interval", p.interval),
	)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("poll loop stopped")
			return nil
		case <-ticker.C:
			p.tick(ctx)
		}
	}
}

func (p *Poller) tick(ctx context.Context) {
	start := time.Now()

	symbols, err := p.alerts.ListDistinctSymbols(ctx, p.source)
	if err != nil {
		metrics.PollTicksTotal.WithLabelValues("skipped").Inc()
		p.logger.Warn("failed to list symbols, skipping tick", zap.Error(err))
		return
	}

	for _, symbol := range symbols {
		price, err := p.prices.GetPrice(ctx, symbol)
		if err != nil {
			metrics.PriceFetchesTotal.WithLabelValues("error").Inc()
			p.logger.Warn("price fetch failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
			continue
		}
		metrics.PriceFetchesTotal.WithLabelValues("success").Inc()

		if _, err := p.evaluator.Evaluate(ctx, symbol, price, p.source); err != nil {
			p.logger.Warn("evaluation failed",
				zap.String("symbol", symbol),
				zap.Error(err),
			)
		}
	}

	metrics.PollTicksTotal.WithLabelValues("ok").Inc()
	metrics.PollTickDuration.Observe(time.Since(start).Seconds())
}
