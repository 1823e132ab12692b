// Package fetch implements the harvest pipeline: fetch each configured
// source, detect RSS vs HTML, parse out articles and run the selection
// rules over them.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/newsreap/newsreap/internal/domain"
	"github.com/newsreap/newsreap/internal/filter"
	"github.com/newsreap/newsreap/internal/logger"
	"github.com/newsreap/newsreap/pkg/httpclient"
)

// defaultSourceDelay spaces requests out so small sites are not hammered.
const defaultSourceDelay = 1 * time.Second

// Criteria is the article selection configuration for one run.
type Criteria struct {
	Keywords filter.Keywords
	Since    time.Time
}

// SeenFunc reports whether a canonical URL was already exported by a
// previous run. Articles it matches are dropped.
type SeenFunc func(url string) bool

// Result carries the harvest output and the per-source outcomes.
type Result struct {
	Articles []domain.Article
	Stats    []domain.SourceStat
}

// Harvester walks a list of source URLs sequentially and collects the
// articles that pass the selection rules.
type Harvester struct {
	client httpclient.Client
	log    logger.Logger
	delay  time.Duration
	seen   SeenFunc
}

// Option configures a Harvester.
type Option func(*Harvester)

// WithDelay overrides the pause between source fetches.
func WithDelay(d time.Duration) Option {
	return func(h *Harvester) { h.delay = d }
}

// WithSeen installs a cross-run seen-URL check.
func WithSeen(fn SeenFunc) Option {
	return func(h *Harvester) { h.seen = fn }
}

// NewHarvester creates a Harvester with the given HTTP client and logger.
func NewHarvester(client httpclient.Client, log logger.Logger, opts ...Option) *Harvester {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.DefaultTimeout)
	}

	h := &Harvester{
		client: client,
		log:    logger.Ensure(log),
		delay:  defaultSourceDelay,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Run fetches every source URL in order. A failing source is logged and
// skipped; the run continues with the next one.
func (h *Harvester) Run(ctx context.Context, urls []string, crit Criteria) Result {
	res := Result{}
	dedup := filter.NewDedup()

	for i, raw := range urls {
		src := domain.NormalizeURL(raw)
		if src == "" {
			continue
		}

		if i > 0 && h.delay > 0 {
			select {
			case <-ctx.Done():
				return res
			case <-time.After(h.delay):
			}
		}

		articles, stat := h.harvestSource(ctx, src, crit, dedup)
		res.Articles = append(res.Articles, articles...)
		res.Stats = append(res.Stats, stat)
	}

	return res
}

// harvestSource fetches and parses a single source URL.
func (h *Harvester) harvestSource(ctx context.Context, src string, crit Criteria, dedup *filter.Dedup) ([]domain.Article, domain.SourceStat) {
	stat := domain.SourceStat{URL: src}

	h.log.Debugw("fetching source", "url", src)

	resp, err := h.client.Get(ctx, src, httpclient.BrowserHeaders())
	if err != nil {
		stat.Status = domain.StatusError
		if httpclient.IsTimeout(err) {
			stat.Status = domain.StatusTimeout
			h.log.Warnw("source fetch timed out", "url", src)
		} else {
			h.log.Warnw("source fetch failed", "url", src, "error", err.Error())
		}
		return nil, stat
	}

	body := resp.Body()
	if resp.StatusCode() != 200 {
		stat.Status = domain.StatusError
		h.log.Warnw("source returned non-200",
			"url", src,
			"status", resp.StatusCode(),
			"body", responseSnippet(body),
		)
		return nil, stat
	}

	var cands []candidate
	if isFeed(src, resp.Header("Content-Type"), body) {
		cands, err = parseFeed(body)
	} else {
		cands, err = parseListing(body, src)
	}
	if err != nil {
		stat.Status = domain.StatusError
		h.log.Warnw("source parse failed", "url", src, "error", err.Error())
		return nil, stat
	}

	articles := h.collect(src, cands, crit, dedup)
	stat.Status = domain.StatusOK
	stat.Articles = len(articles)

	h.log.Infow("source harvested", "url", src, "entries", len(cands), "kept", len(articles))
	return articles, stat
}

// collect applies the selection rules to raw candidates and builds
// Article records for the survivors.
func (h *Harvester) collect(src string, cands []candidate, crit Criteria, dedup *filter.Dedup) []domain.Article {
	sourceName := domain.SourceNameFromURL(src)

	var out []domain.Article
	for _, c := range cands {
		canonical := filter.CanonicalURL(c.url)

		if filter.IsNoise(c.title) {
			continue
		}
		if dedup.Observe(canonical) {
			continue
		}
		if h.seen != nil && h.seen(canonical) {
			continue
		}
		if !filter.AfterCutoff(c.published, crit.Since) {
			continue
		}

		searchText := fmt.Sprintf("%s %s %s", c.title, canonical, c.description)
		matched := crit.Keywords.Match(searchText)
		if len(matched) == 0 {
			continue
		}

		out = append(out, domain.Article{
			ID:              domain.HashURL(canonical),
			Title:           strings.TrimSpace(c.title),
			URL:             canonical,
			Description:     c.description,
			Source:          sourceName,
			MatchedKeywords: matched,
			PublishedAt:     c.published,
		})
	}
	return out
}

// Enrich fills in missing titles and descriptions by scraping each
// article page for og:/meta tags. Failures leave the article as-is.
func (h *Harvester) Enrich(ctx context.Context, articles []domain.Article) []domain.Article {
	out := make([]domain.Article, len(articles))
	copy(out, articles)

	for i := range out {
		if ctx.Err() != nil {
			return out
		}
		if out[i].Description != "" && out[i].Title != "" {
			continue
		}

		if h.delay > 0 {
			select {
			case <-ctx.Done():
				return out
			case <-time.After(h.delay):
			}
		}

		meta, err := h.fetchMeta(ctx, out[i].URL)
		if err != nil {
			h.log.Warnw("article metadata scrape failed", "url", out[i].URL, "error", err.Error())
			continue
		}
		if out[i].Title == "" && meta.Title != "" {
			out[i].Title = meta.Title
		}
		if out[i].Description == "" && meta.Description != "" {
			out[i].Description = meta.Description
		}
	}
	return out
}

// fetchMeta fetches one article page and extracts its metadata.
func (h *Harvester) fetchMeta(ctx context.Context, url string) (pageMeta, error) {
	resp, err := h.client.Get(ctx, url, httpclient.BrowserHeaders())
	if err != nil {
		return pageMeta{}, fmt.Errorf("http fetch: %w", err)
	}
	if resp.StatusCode() != 200 {
		return pageMeta{}, fmt.Errorf("status %d body: %s", resp.StatusCode(), responseSnippet(resp.Body()))
	}
	return parseMeta(resp.Body())
}

// responseSnippet returns a truncated snippet of the response body for logging.
func responseSnippet(body []byte) string {
	const maxLen = 512
	s := strings.TrimSpace(string(body))
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	if s == "" {
		return "<empty>"
	}
	return s
}
