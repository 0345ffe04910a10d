package domain

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert) error
	CountActive(ctx context.Context, token string) (int64, error)
	// ListActive returns the active alerts for a token, newest first.
	ListActive(ctx context.Context, token string) ([]Alert, error)
	// ListDistinctSymbols returns every symbol carrying at least one active
	// alert on the given source.
	ListDistinctSymbols(ctx context.Context, source string) ([]string, error)
	// FindCandidates returns the active alerts for a symbol+source pair.
	FindCandidates(ctx context.Context, symbol, source string) ([]Alert, error)
	// TryDeactivate flips active true->false for one alert. It reports true
	// only when this call performed the transition; a concurrent caller that
	// lost the race sees false. This is the only synchronization primitive
	// the evaluation path relies on.
	TryDeactivate(ctx context.Context, alertID uint) (bool, error)
	// DeactivateOwned flips active true->false only when the token owns the
	// alert. Ownership mismatch and absence both report false.
	DeactivateOwned(ctx context.Context, alertID uint, token string) (bool, error)
}
