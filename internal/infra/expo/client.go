package expo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Client delivers push messages through the Expo push endpoint.
type Client struct {
	pushURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewClient(pushURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		pushURL: pushURL,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type pushRequest struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (c *Client) Notify(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(pushRequest{To: token, Title: title, Body: body})
	if err != nil {
		return err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.pushURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return fmt.Errorf("push send: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("push send: status %d", response.StatusCode)
	}

	c.logger.Debug("push delivered", zap.String("title", title))
	return nil
}
