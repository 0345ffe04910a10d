package binance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Client fetches spot prices from the Binance REST API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type tickerResponse struct {
	Symbol string `json:"symbol"`
	Price  string `json:"price"`
}

func (c *Client) GetPrice(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/api/v3/ticker/price?symbol=%s", c.baseURL, url.QueryEscape(symbol))
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}

	start := time.Now()
	response, err := c.client.Do(request)
	if err != nil {
		c.logger.Warn("ticker request failed", zap.String("symbol", symbol), zap.Error(err))
		return 0, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	defer response.Body.Close()

	c.logger.Debug(
		"ticker request complete",
		zap.String("symbol", symbol),
		zap.Int("status", response.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if response.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("fetch %s: status %d", symbol, response.StatusCode)
	}

	var payload tickerResponse
	if err := json.NewDecoder(response.Body).Decode(&payload); err != nil {
		return 0, fmt.Errorf("fetch %s: %w", symbol, err)
	}

	price, err := strconv.ParseFloat(payload.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: bad price %q: %w", symbol, payload.Price, err)
	}
	return price, nil
}
