package publishers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/newsreap/newsreap/internal/logger"
)

// webhookPublisher posts events to a generic HTTP endpoint.
type webhookPublisher struct {
	id     string
	cfg    WebhookConfig
	client *http.Client
	log    logger.Logger
}

// newWebhookPublisher builds an HTTP sink from config.
func newWebhookPublisher(_ context.Context, cfg Config, log logger.Logger) (Publisher, error) {
	if cfg.Webhook == nil {
		return nil, fmt.Errorf("publisher %q missing webhook configuration", cfg.ID)
	}

	return &webhookPublisher{
		id:  cfg.ID,
		cfg: *cfg.Webhook,
		client: &http.Client{
			Timeout: time.Duration(cfg.Webhook.TimeoutSeconds) * time.Second,
		},
		log: logger.Ensure(log),
	}, nil
}

func (p *webhookPublisher) ID() string   { return p.id }
func (p *webhookPublisher) Type() string { return TypeWebhook }

// Publish sends the event as a JSON body to the configured endpoint.
func (p *webhookPublisher) Publish(ctx context.Context, evt Event) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, p.cfg.Method, p.cfg.URL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range p.cfg.Headers {
		req.Header.Set(k, v)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("send webhook request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	p.log.Debugw("webhook publisher delivered event", "publisher", p.id, "status", resp.StatusCode)
	return nil
}
