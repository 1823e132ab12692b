package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsFeed(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		body        string
		want        bool
	}{
		{"xml content type", "https://example.com/news", "application/rss+xml", "", true},
		{"atom content type", "https://example.com/news", "application/atom+xml; charset=utf-8", "", true},
		{"feed url hint", "https://example.com/feed", "text/html", "", true},
		{"rss url hint", "https://example.com/rss/index", "text/html", "", true},
		{"body sniff rss", "https://example.com/news", "text/html", `<?xml version="1.0"?><rss version="2.0">`, true},
		{"body sniff atom", "https://example.com/news", "text/html", `<feed xmlns="http://www.w3.org/2005/Atom">`, true},
		{"plain html", "https://example.com/news", "text/html", "<!DOCTYPE html><html><body>", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isFeed(tt.url, tt.contentType, []byte(tt.body)))
		})
	}
}

func TestBingNewsFeedURL(t *testing.T) {
	got := BingNewsFeedURL("quantum computing")

	assert.Contains(t, got, "https://www.bing.com/news/search?")
	assert.Contains(t, got, "format=RSS")
	assert.Contains(t, got, "q=quantum+computing")
}
