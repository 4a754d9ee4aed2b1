// Package sendgrid implements a Sender that posts the forward payload to
// the SendGrid v3 mail send API.
package sendgrid

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shineum/mail-forward-lite/internal/forward"
	"github.com/shineum/mail-forward-lite/internal/sender"
)

// DefaultEndpoint is the SendGrid v3 mail send URL.
const DefaultEndpoint = "https://api.sendgrid.com/v3/mail/send"

// Config holds the configuration for creating a Provider.
type Config struct {
	APIKey string

	// Endpoint overrides the send URL; empty means DefaultEndpoint.
	Endpoint string
}

// Provider sends mail through the SendGrid HTTP API with a single POST per
// message. Failures are not retried; the status and response body are
// preserved in the returned error.
type Provider struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// New creates a Provider with the given configuration.
func New(cfg Config) *Provider {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Provider{
		apiKey:     cfg.APIKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithClient creates a Provider with a custom HTTP client, used for testing.
func NewWithClient(cfg Config, client *http.Client) *Provider {
	p := New(cfg)
	p.httpClient = client
	return p
}

// Send posts the payload as JSON. Any 2xx response is success; anything
// else becomes a *sender.SendError.
func (p *Provider) Send(ctx context.Context, payload *forward.Payload) error {
	bodyJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(bodyJSON))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	return &sender.SendError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

// Name returns the backend name.
func (p *Provider) Name() string {
	return "sendgrid"
}
