package domain

import (
	"crypto/sha1" //nolint:gosec // non-cryptographic id generation
	"encoding/hex"
	"net/url"
	"strings"
	"time"
)

// Article is a single collected news item. Articles have no identity
// beyond their canonical URL; ID is derived from it.
type Article struct {
	ID              string
	Title           string
	URL             string
	Description     string
	Source          string
	MatchedKeywords []string
	PublishedAt     time.Time
}

// DateString renders the publish date for export, or "Unknown" when
// the source carried no parseable date.
func (a Article) DateString() string {
	if a.PublishedAt.IsZero() {
		return "Unknown"
	}
	return a.PublishedAt.Format("2006-01-02")
}

// Source is one named feed or page URL inside a preset category.
type Source struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// Category is a named, statically configured group of sources.
type Category struct {
	Name    string   `json:"name" yaml:"name"`
	Sources []Source `json:"sources" yaml:"sources"`
}

// SourceStatus classifies the outcome of fetching one source.
type SourceStatus string

const (
	StatusOK      SourceStatus = "ok"
	StatusTimeout SourceStatus = "timeout"
	StatusError   SourceStatus = "error"
)

// SourceStat records the per-source outcome of a run.
type SourceStat struct {
	URL      string
	Status   SourceStatus
	Articles int
}

// HashURL generates a stable hex id for the given URL string.
func HashURL(u string) string {
	sum := sha1.Sum([]byte(u))
	return hex.EncodeToString(sum[:])
}

// SourceNameFromURL derives a friendly source name from a URL host,
// e.g. "https://www.theverge.com/rss" -> "Theverge".
func SourceNameFromURL(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Host == "" {
		return "Unknown"
	}

	host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
	if host == "" {
		return "Unknown"
	}

	label := strings.SplitN(host, ".", 2)[0]
	if label == "" {
		return "Unknown"
	}
	return strings.ToUpper(label[:1]) + label[1:]
}

// NormalizeURL trims the raw URL and defaults the scheme to https.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return "https://" + raw
	}
	return raw
}
