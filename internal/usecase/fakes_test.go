package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"pricewatch/internal/domain"
)

// memRepo is an in-memory AlertRepository whose TryDeactivate is a real
// compare-and-set under a mutex, so concurrent evaluation tests exercise the
// same single-winner semantics the SQL implementation provides.
type memRepo struct {
	mu     sync.Mutex
	nextID uint
	alerts []*domain.Alert
}

func newMemRepo() *memRepo { return &memRepo{} }

func (r *memRepo) Create(_ context.Context, alert *domain.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	alert.ID = r.nextID
	alert.CreatedAt = time.Now()
	clone := *alert
	r.alerts = append(r.alerts, &clone)
	return nil
}

func (r *memRepo) CountActive(_ context.Context, token string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, a := range r.alerts {
		if a.Token == token && a.Active {
			count++
		}
	}
	return count, nil
}

func (r *memRepo) ListActive(_ context.Context, token string) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Alert
	for i := len(r.alerts) - 1; i >= 0; i-- {
		if a := r.alerts[i]; a.Token == token && a.Active {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memRepo) ListDistinctSymbols(_ context.Context, source string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, a := range r.alerts {
		if a.Active && a.Source == source && !seen[a.Symbol] {
			seen[a.Symbol] = true
			out = append(out, a.Symbol)
		}
	}
	return out, nil
}

func (r *memRepo) FindCandidates(_ context.Context, symbol, source string) ([]domain.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Alert
	for _, a := range r.alerts {
		if a.Active && a.Symbol == symbol && a.Source == source {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memRepo) TryDeactivate(_ context.Context, alertID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ID == alertID {
			if !a.Active {
				return false, nil
			}
			a.Active = false
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) DeactivateOwned(_ context.Context, alertID uint, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ID == alertID && a.Token == token && a.Active {
			a.Active = false
			return true, nil
		}
	}
	return false, nil
}

// get returns a copy of an alert for assertions.
func (r *memRepo) get(alertID uint) (domain.Alert, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.ID == alertID {
			return *a, true
		}
	}
	return domain.Alert{}, false
}

type notifyCall struct {
	token, title, body string
}

type recordingNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

func (n *recordingNotifier) Notify(_ context.Context, token, title, body string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{token: token, title: title, body: body})
	return n.err
}

func (n *recordingNotifier) callCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

type fakePriceSource struct {
	mu      sync.Mutex
	prices  map[string]float64
	errs    map[string]error
	fetched []string
}

func (s *fakePriceSource) GetPrice(_ context.Context, symbol string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetched = append(s.fetched, symbol)
	if err, ok := s.errs[symbol]; ok {
		return 0, err
	}
	price, ok := s.prices[symbol]
	if !ok {
		return 0, errors.New("unknown symbol")
	}
	return price, nil
}
