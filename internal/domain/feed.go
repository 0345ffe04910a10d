package domain

import "context"

// PriceSource fetches the current spot price for a symbol from an external
// market-data feed.
type PriceSource interface {
	GetPrice(ctx context.Context, symbol string) (float64, error)
}

// Notifier delivers a push message to a device token. Delivery is best
// effort: a returned error means the push did not go out, it never means the
// alert did not fire.
type Notifier interface {
	Notify(ctx context.Context, token, title, body string) error
}
