// Package filter holds the article selection rules: keyword matching,
// publish-date cutoff, noise rejection, canonical URL extraction and
// per-run deduplication.
package filter

import (
	"net/url"
	"strings"
	"time"

	"github.com/newsreap/newsreap/internal/domain"
)

// MatchAllKeyword marks articles collected with no keyword filter.
const MatchAllKeyword = "*"

const minTitleLength = 10

// Keywords is a case-insensitive substring matcher.
type Keywords []string

// NewKeywords builds a matcher from a comma-separated keyword string.
// Empty input yields a matcher that accepts everything.
func NewKeywords(raw string) Keywords {
	var kws Keywords
	for _, part := range strings.Split(raw, ",") {
		if kw := strings.TrimSpace(part); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws
}

// Match returns the keywords found in text, or [MatchAllKeyword] when
// the matcher is empty. A nil return means no keyword matched.
func (k Keywords) Match(text string) []string {
	if len(k) == 0 {
		return []string{MatchAllKeyword}
	}

	lower := strings.ToLower(text)
	var matched []string
	for _, kw := range k {
		if strings.Contains(lower, strings.ToLower(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}

// AfterCutoff reports whether the publish date passes the start-date
// filter. Undated articles always pass; dates are compared at calendar
// day granularity.
func AfterCutoff(published, cutoff time.Time) bool {
	if cutoff.IsZero() || published.IsZero() {
		return true
	}

	pubDay := time.Date(published.Year(), published.Month(), published.Day(), 0, 0, 0, 0, time.UTC)
	cutDay := time.Date(cutoff.Year(), cutoff.Month(), cutoff.Day(), 0, 0, 0, 0, time.UTC)
	return !pubDay.Before(cutDay)
}

// noiseTitles are boilerplate entries that show up in feed and listing
// markup but are never articles.
var noiseTitles = map[string]struct{}{
	"no title":         {},
	"advertisement":    {},
	"sponsored":        {},
	"sign in":          {},
	"sign up":          {},
	"log in":           {},
	"subscribe":        {},
	"read more":        {},
	"click here":       {},
	"comments":         {},
	"terms of service": {},
	"privacy policy":   {},
	"cookie policy":    {},
}

// IsNoise rejects titles that are too short to be headlines or match a
// known boilerplate entry.
func IsNoise(title string) bool {
	title = strings.TrimSpace(title)
	if len(title) < minTitleLength {
		return true
	}

	_, noisy := noiseTitles[strings.ToLower(title)]
	return noisy
}

// CanonicalURL unwraps Bing News redirect links to the article they
// point at. Anything that is not a Bing redirect passes through
// unchanged.
//
// Redirect shape: https://www.bing.com/news/apiclick.aspx?...&url=<target>
func CanonicalURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	host := strings.ToLower(parsed.Hostname())
	if host != "bing.com" && !strings.HasSuffix(host, ".bing.com") {
		return raw
	}
	if !strings.Contains(strings.ToLower(parsed.Path), "apiclick") && parsed.Query().Get("url") == "" {
		return raw
	}

	// Query().Get already percent-decodes the parameter once; decoding
	// again would corrupt targets with encoded characters.
	target := parsed.Query().Get("url")
	if target == "" {
		return raw
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return raw
	}
	return target
}

// Dedup tracks canonical URLs seen during a single run.
type Dedup struct {
	seen map[string]struct{}
}

// NewDedup returns an empty per-run dedup set.
func NewDedup() *Dedup {
	return &Dedup{seen: make(map[string]struct{})}
}

// Observe records the URL and reports whether it was already seen.
func (d *Dedup) Observe(rawURL string) bool {
	key := domain.HashURL(rawURL)
	if _, dup := d.seen[key]; dup {
		return true
	}
	d.seen[key] = struct{}{}
	return false
}

// Len returns the number of distinct URLs observed.
func (d *Dedup) Len() int { return len(d.seen) }
