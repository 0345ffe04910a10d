package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"go.uber.org/zap"

	"pricewatch/internal/domain"
)

func mustRegister(t *testing.T, repo *memRepo, token, symbol string, direction domain.Direction, price float64, source string) domain.Alert {
	t.Helper()
	alert := &domain.Alert{
		Token:     token,
		Symbol:    symbol,
		Direction: direction,
		Price:     price,
		Source:    source,
		Active:    true,
	}
	if err := repo.Create(context.Background(), alert); err != nil {
		t.Fatalf("create alert: %v", err)
	}
	return *alert
}

func TestEvaluator_Evaluate_ThresholdScenario(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	evaluator := NewEvaluator(repo, notifier, zap.NewNop())
	ctx := context.Background()

	alert := mustRegister(t, repo, "t1", "ETHUSD", domain.DirectionAbove, 3000, "binance")

	fired, err := evaluator.Evaluate(ctx, "ETHUSD", 2999, "binance")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fired != 0 {
		t.Fatalf("below threshold: fired = %d, want 0", fired)
	}
	if got, _ := repo.get(alert.ID); !got.Active {
		t.Fatal("alert deactivated without a match")
	}

	fired, err = evaluator.Evaluate(ctx, "ETHUSD", 3000, "binance")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fired != 1 {
		t.Fatalf("at threshold: fired = %d, want 1", fired)
	}
	if got, _ := repo.get(alert.ID); got.Active {
		t.Fatal("alert still active after firing")
	}

	fired, err = evaluator.Evaluate(ctx, "ETHUSD", 3500, "binance")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fired != 0 {
		t.Fatalf("already fired: fired = %d, want 0", fired)
	}
	if notifier.callCount() != 1 {
		t.Fatalf("deliveries = %d, want 1", notifier.callCount())
	}
}

func TestEvaluator_Evaluate_BelowDirection(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	evaluator := NewEvaluator(repo, notifier, zap.NewNop())
	ctx := context.Background()

	alert := mustRegister(t, repo, "t1", "BTCUSDT", domain.DirectionBelow, 40000, "binance")

	if fired, _ := evaluator.Evaluate(ctx, "BTCUSDT", 40001, "binance"); fired != 0 {
		t.Fatalf("above threshold: fired = %d, want 0", fired)
	}
	if fired, _ := evaluator.Evaluate(ctx, "BTCUSDT", 40000, "binance"); fired != 1 {
		t.Fatal("Below alert did not fire at threshold")
	}
	if got, _ := repo.get(alert.ID); got.Active {
		t.Fatal("alert still active after firing")
	}
}

func TestEvaluator_Evaluate_SourceMismatch(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	evaluator := NewEvaluator(repo, notifier, zap.NewNop())

	alert := mustRegister(t, repo, "t1", "ETHUSD", domain.DirectionAbove, 3000, "binance")

	fired, err := evaluator.Evaluate(context.Background(), "ETHUSD", 9999, "tradingview")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fired != 0 {
		t.Fatalf("fired = %d, want 0 for foreign source", fired)
	}
	if got, _ := repo.get(alert.ID); !got.Active {
		t.Fatal("alert on another source was deactivated")
	}
}

func TestEvaluator_Evaluate_DeliveryFailureDoesNotUndoFiring(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{err: errors.New("provider rejected")}
	evaluator := NewEvaluator(repo, notifier, zap.NewNop())

	alert := mustRegister(t, repo, "t1", "ETHUSD", domain.DirectionAbove, 3000, "binance")

	fired, err := evaluator.Evaluate(context.Background(), "ETHUSD", 3100, "binance")
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if fired != 1 {
		t.Fatalf("fired = %d, want 1 despite delivery failure", fired)
	}
	if got, _ := repo.get(alert.ID); got.Active {
		t.Fatal("delivery failure rolled back the firing")
	}
}

func TestEvaluator_Evaluate_MessageFormat(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	evaluator := NewEvaluator(repo, notifier, zap.NewNop())

	mustRegister(t, repo, "device-1", "BTCUSDT", domain.DirectionAbove, 49500, "binance")

	if _, err := evaluator.Evaluate(context.Background(), "BTCUSDT", 50000, "binance"); err != nil {
		t.Fatalf("evaluate: %v", err)
	}

	if notifier.callCount() != 1 {
		t.Fatalf("deliveries = %d, want 1", notifier.callCount())
	}
	call := notifier.calls[0]
	if call.token != "device-1" {
		t.Errorf("token = %q, want device-1", call.token)
	}
	if call.title != "BTCUSDT Alert!" {
		t.Errorf("title = %q", call.title)
	}
	if call.body != "Price 50000 crossed 49500" {
		t.Errorf("body = %q", call.body)
	}
}

func TestEvaluator_Evaluate_ConcurrentFiresOnce(t *testing.T) {
	repo := newMemRepo()
	notifier := &recordingNotifier{}
	evaluator := NewEvaluator(repo, notifier, zap.NewNop())

	alert := mustRegister(t, repo, "t1", "ETHUSD", domain.DirectionAbove, 3000, "binance")

	const evaluators = 16
	var wg sync.WaitGroup
	results := make(chan int, evaluators)
	start := make(chan struct{})

	for i := 0; i < evaluators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			fired, err := evaluator.Evaluate(context.Background(), "ETHUSD", 3200, "binance")
			if err != nil {
				t.Errorf("evaluate: %v", err)
				return
			}
			results <- fired
		}()
	}

	close(start)
	wg.Wait()
	close(results)

	total := 0
	for fired := range results {
		total += fired
	}
	if total != 1 {
		t.Fatalf("total fired across concurrent evaluations = %d, want exactly 1", total)
	}
	if notifier.callCount() != 1 {
		t.Fatalf("deliveries = %d, want exactly 1", notifier.callCount())
	}
	if got, _ := repo.get(alert.ID); got.Active {
		t.Fatal("alert still active after concurrent evaluations")
	}
}
