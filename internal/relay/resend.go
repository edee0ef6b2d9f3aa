package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gojektech/heimdall/v6"
	"github.com/gojektech/heimdall/v6/httpclient"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/text/language"

	"wedding-rsvp/internal/i18n"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/pkg/logger"
)

const tracerName = "wedding-rsvp/internal/relay"

// MailerConfig holds the fixed identities and the provider credential.
type MailerConfig struct {
	Endpoint string
	APIKey   string
	From     string
	To       []string
	Locale   language.Tag
	Timeout  time.Duration
}

// Mailer sends host alerts through the Resend email API.
type Mailer struct {
	cfg    MailerConfig
	client heimdall.Doer
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// NewMailer validates cfg and builds a client that makes exactly one attempt.
func NewMailer(cfg MailerConfig) (*Mailer, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("relay credential is not configured")
	}
	if cfg.From == "" || len(cfg.To) == 0 {
		return nil, errors.New("relay sender and recipient are required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(cfg.Timeout),
		httpclient.WithRetryCount(0),
	)
	return &Mailer{cfg: cfg, client: client}, nil
}

// Notify renders and sends the alert for s.
func (m *Mailer) Notify(ctx context.Context, s models.Submission) (err error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "relay.resend")
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()
	span.SetAttributes(attribute.Int64("submission.id", s.ID))

	email, err := Render(i18n.Printer(m.cfg.Locale), s)
	if err != nil {
		return notDelivered(err)
	}
	body, err := json.Marshal(resendRequest{
		From:    m.cfg.From,
		To:      m.cfg.To,
		Subject: email.Subject,
		HTML:    email.HTML,
	})
	if err != nil {
		return notDelivered(err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return notDelivered(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.cfg.APIKey)

	if err := do(m.client, req); err != nil {
		logger.Warn(ctx, "Host notification failed", "submission_id", s.ID, "error", err)
		return notDelivered(err)
	}
	logger.Info(ctx, "Host notified", "submission_id", s.ID)
	return nil
}

// do sends req once and treats any non-2xx answer as a failure.
func do(client heimdall.Doer, req *http.Request) error {
	resp, err := client.Do(req)
	// heimdall hands back the 5xx response along with its error.
	if resp != nil {
		defer resp.Body.Close()
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
	}
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return nil
}
