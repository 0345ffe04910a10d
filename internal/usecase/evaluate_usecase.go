package usecase

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"pricewatch/internal/domain"
	"pricewatch/internal/infra/metrics"
)

// Evaluator matches a pushed or polled price against the active alerts for a
// symbol+source pair and fires each match at most once. It is safe to call
// from any number of goroutines: the per-record conditional deactivate in the
// store decides which caller fires an alert, so overlapping evaluations of
// the same symbol never double-fire and never double-notify.
type Evaluator struct {
	alerts   domain.AlertRepository
	notifier domain.Notifier
	logger   *zap.Logger
}

func NewEvaluator(alerts domain.AlertRepository, notifier domain.Notifier, logger *zap.Logger) *Evaluator {
	return &Evaluator{alerts: alerts, notifier: notifier, logger: logger}
}

// Evaluate fires every active alert on symbol+source whose threshold the
// price has reached, and returns how many this call fired. The caller is
// responsible for passing an uppercase symbol. A failed push delivery does
// not undo a firing: once the deactivate commits the alert is spent.
func (e *Evaluator) Evaluate(ctx context.Context, symbol string, price float64, source string) (int, error) {
	candidates, err := e.alerts.FindCandidates(ctx, symbol, source)
	if err != nil {
		return 0, err
	}
	metrics.EvaluationsTotal.WithLabelValues(source).Inc()

	fired := 0
	for _, alert := range candidates {
		if !alert.Direction.Matches(price, alert.Price) {
			continue
		}

		won, err := e.alerts.TryDeactivate(ctx, alert.ID)
		if err != nil {
			e.logger.Warn("failed to deactivate alert",
				zap.Uint("alert_id", alert.ID),
				zap.Error(err),
			)
			continue
		}
		if !won {
			// A concurrent evaluation already fired this alert.
			continue
		}

		fired++
		metrics.AlertsFiredTotal.WithLabelValues(source).Inc()
		e.logger.Info("alert fired",
			zap.Uint("alert_id", alert.ID),
			zap.String("symbol", symbol),
			zap.Float64("price", price),
			zap.Float64("threshold", alert.Price),
			zap.String("source", source),
		)

		title := fmt.Sprintf("%s Alert!", symbol)
		body := fmt.Sprintf("Price %s crossed %s", formatPrice(price), formatPrice(alert.Price))
		if err := e.notifier.Notify(ctx, alert.Token, title, body); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			e.logger.Warn("failed to deliver push",
				zap.Uint("alert_id", alert.ID),
				zap.Error(err),
			)
		}
	}

	return fired, nil
}

func formatPrice(price float64) string {
	return decimal.NewFromFloat(price).String()
}
