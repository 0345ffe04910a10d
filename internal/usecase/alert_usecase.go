package usecase

import (
	"context"
	"errors"
	"math"
	"strings"

	"pricewatch/internal/domain"
	"pricewatch/internal/infra/metrics"
)

// MaxActiveAlertsPerToken caps how many active alerts one device token may
// hold at a time. Firing or deleting an alert frees capacity.
const MaxActiveAlertsPerToken = 10

var (
	ErrMissingToken     = errors.New("missing token")
	ErrMissingSymbol    = errors.New("missing symbol")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrTooManyAlerts    = errors.New("too many active alerts")
	ErrAlertNotFound    = errors.New("alert not found")
)

type AlertUsecase struct {
	alerts domain.AlertRepository
}

func NewAlertUsecase(alerts domain.AlertRepository) *AlertUsecase {
	return &AlertUsecase{alerts: alerts}
}

// Register validates and persists a new active alert. The capacity check is
// count-then-insert: two concurrent registrations for the same token can both
// pass it and overshoot the cap slightly. That is accepted — the cap is a
// quota, not a correctness invariant, and serializing registrations per token
// is not worth it.
func (u *AlertUsecase) Register(ctx context.Context, token, symbol, direction string, price float64, source string) (*domain.Alert, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrMissingToken
	}

	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return nil, ErrMissingSymbol
	}

	dir, ok := domain.ParseDirection(direction)
	if !ok {
		return nil, ErrInvalidDirection
	}

	if math.IsNaN(price) || math.IsInf(price, 0) || price < 0 {
		return nil, ErrInvalidPrice
	}

	if source = strings.TrimSpace(source); source == "" {
		source = domain.DefaultSource
	}

	count, err := u.alerts.CountActive(ctx, token)
	if err != nil {
		return nil, err
	}
	if count >= MaxActiveAlertsPerToken {
		return nil, ErrTooManyAlerts
	}

	alert := &domain.Alert{
		Token:     token,
		Symbol:    symbol,
		Direction: dir,
		Price:     price,
		Source:    source,
		Active:    true,
	}
	if err := u.alerts.Create(ctx, alert); err != nil {
		return nil, err
	}

	metrics.AlertsRegisteredTotal.Inc()
	return alert, nil
}

// List returns the active alerts owned by a token, newest first.
func (u *AlertUsecase) List(ctx context.Context, token string) ([]domain.Alert, error) {
	return u.alerts.ListActive(ctx, token)
}

// Delete soft-deletes an alert when the token owns it. A foreign token gets
// the same ErrAlertNotFound as a nonexistent id so ownership never leaks.
func (u *AlertUsecase) Delete(ctx context.Context, alertID uint, token string) error {
	ok, err := u.alerts.DeactivateOwned(ctx, alertID, token)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAlertNotFound
	}
	return nil
}
