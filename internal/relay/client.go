package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"

	"wedding-rsvp/internal/models"
)

// SendEmailPath is the relay route served by this service.
const SendEmailPath = "/api/send-email"

// Client calls a relay route over HTTP instead of sending mail itself.
type Client struct {
	url    string
	client heimdall.Doer
}

// NewClient targets baseURL + SendEmailPath with a single attempt per call.
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("relay url is required")
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url: baseURL + SendEmailPath,
		client: httpclient.NewClient(
			httpclient.WithHTTPTimeout(timeout),
			httpclient.WithRetryCount(0),
		),
	}, nil
}

// Notify posts s to the relay route. Only a 2xx answer counts as delivered.
func (c *Client) Notify(ctx context.Context, s models.Submission) error {
	body, err := json.Marshal(s)
	if err != nil {
		return notDelivered(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return notDelivered(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if err := do(c.client, req); err != nil {
		return notDelivered(err)
	}
	return nil
}
