package publishers

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/newsreap/newsreap/internal/domain"
	"github.com/newsreap/newsreap/internal/logger"
)

// Event is the article payload delivered to each sink.
type Event struct {
	Title           string `json:"title"`
	URL             string `json:"url"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	Source          string `json:"source"`
	MatchedKeywords string `json:"matched_keywords"`
}

// EventFrom converts an article into its sink payload.
func EventFrom(a domain.Article) Event {
	return Event{
		Title:           a.Title,
		URL:             a.URL,
		Date:            a.DateString(),
		Description:     a.Description,
		Source:          a.Source,
		MatchedKeywords: strings.Join(a.MatchedKeywords, ", "),
	}
}

// Publisher delivers events to one configured sink.
type Publisher interface {
	ID() string
	Type() string
	Publish(ctx context.Context, evt Event) error
}

// Builder creates a Publisher from a config entry.
type Builder func(ctx context.Context, cfg Config, log logger.Logger) (Publisher, error)

// Registry maps publisher types to builders.
type Registry interface {
	Register(typ string, builder Builder)
	PublisherFor(ctx context.Context, cfg Config, log logger.Logger) (Publisher, error)
}

type registry struct {
	mu       sync.RWMutex
	builders map[string]Builder
}

// NewRegistry returns a registry with optional pre-registered builders.
func NewRegistry(builders map[string]Builder) Registry {
	r := &registry{builders: make(map[string]Builder)}
	for typ, b := range builders {
		r.Register(typ, b)
	}
	return r
}

// Register associates a builder with a publisher type.
func (r *registry) Register(typ string, builder Builder) {
	if typ = strings.TrimSpace(strings.ToLower(typ)); typ == "" || builder == nil {
		return
	}

	r.mu.Lock()
	r.builders[typ] = builder
	r.mu.Unlock()
}

// PublisherFor returns the publisher built for the provided config.
func (r *registry) PublisherFor(ctx context.Context, cfg Config, log logger.Logger) (Publisher, error) {
	if cfg.Type == "" {
		return nil, fmt.Errorf("publisher %q has no type configured", cfg.ID)
	}

	r.mu.RLock()
	builder := r.builders[strings.ToLower(cfg.Type)]
	r.mu.RUnlock()

	if builder == nil {
		return nil, fmt.Errorf("no publisher registered for type %q", cfg.Type)
	}
	return builder(ctx, cfg, logger.Ensure(log))
}

// DefaultRegistry wires up the known publisher types.
func DefaultRegistry() Registry {
	return NewRegistry(map[string]Builder{
		TypeWebhook: newWebhookPublisher,
		TypeQueue:   newQueuePublisher,
	})
}

// BuildAll instantiates publishers for the given configs.
func BuildAll(ctx context.Context, reg Registry, cfgs []Config, log logger.Logger) ([]Publisher, error) {
	if reg == nil || len(cfgs) == 0 {
		return nil, nil
	}

	if ctx == nil {
		ctx = context.Background()
	}
	log = logger.Ensure(log)

	var pubs []Publisher
	for _, cfg := range cfgs {
		pub, err := reg.PublisherFor(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		pubs = append(pubs, pub)
	}
	return pubs, nil
}

// PublishAll delivers every article to every publisher, best effort.
// Failures are logged and counted but never abort the loop.
func PublishAll(ctx context.Context, pubs []Publisher, articles []domain.Article, log logger.Logger) int {
	log = logger.Ensure(log)

	var failures int
	for _, pub := range pubs {
		for _, a := range articles {
			if ctx.Err() != nil {
				return failures
			}
			if err := pub.Publish(ctx, EventFrom(a)); err != nil {
				failures++
				log.Warnw("publish failed",
					"publisher", pub.ID(),
					"type", pub.Type(),
					"url", a.URL,
					"error", err.Error(),
				)
			}
		}
	}
	return failures
}
