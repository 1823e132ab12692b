package fetch

import (
	"bytes"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/mmcdole/gofeed"
)

// maxDescriptionLength bounds exported descriptions.
const maxDescriptionLength = 300

// candidate is a raw article extracted from a feed or listing, before
// the selection rules run.
type candidate struct {
	title       string
	url         string
	description string
	published   time.Time
}

// parseFeed extracts candidates from an RSS/Atom document.
func parseFeed(body []byte) ([]candidate, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	cands := make([]candidate, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Link == "" {
			continue
		}

		c := candidate{
			title:       item.Title,
			url:         item.Link,
			description: truncate(stripHTML(firstNonEmpty(item.Description, item.Content)), maxDescriptionLength),
			published:   itemDate(item),
		}
		cands = append(cands, c)
	}
	return cands, nil
}

// itemDate picks the best available timestamp from a feed item.
func itemDate(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := s[:n]
	for len(cut) > 0 && !utf8.ValidString(cut) {
		cut = cut[:len(cut)-1]
	}
	return cut
}
