package fetch

import (
	"bytes"
	"strings"
)

// feedMarkers appear near the top of RSS/Atom documents.
var feedMarkers = [][]byte{
	[]byte("<rss"),
	[]byte("<feed"),
	[]byte("<channel"),
}

// isFeed decides whether a fetched document is an RSS/Atom feed, by
// Content-Type, URL shape, and finally a body sniff.
func isFeed(url, contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	for _, marker := range []string{"xml", "rss", "atom"} {
		if strings.Contains(ct, marker) {
			return true
		}
	}

	lower := strings.ToLower(url)
	for _, hint := range []string{"/feed", "/rss", ".xml", "atom"} {
		if strings.Contains(lower, hint) {
			return true
		}
	}

	head := body
	if len(head) > 512 {
		head = head[:512]
	}
	head = bytes.ToLower(head)
	for _, marker := range feedMarkers {
		if bytes.Contains(head, marker) {
			return true
		}
	}
	return false
}
