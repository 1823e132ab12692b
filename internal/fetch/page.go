package fetch

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// maxListingEntries caps how many entries a single HTML listing can
	// contribute, so index pages full of navigation links stay bounded.
	maxListingEntries = 50

	maxHTMLBodyBytes = 1 << 20 // 1 MiB
	maxTitleLength   = 150
)

// articleSelectors is the cascade tried against an HTML listing; the
// first selector with hits wins.
var articleSelectors = []string{
	"article",
	".post",
	".entry",
	".article",
	".news-item",
	".story",
	"[class*='article']",
	"[class*='post']",
}

var descClassPattern = regexp.MustCompile(`(?i)(excerpt|summary|desc)`)

// parseListing extracts article candidates from an HTML page such as a
// section front or blog index.
func parseListing(body []byte, baseURL string) ([]candidate, error) {
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var nodes *goquery.Selection
	for _, sel := range articleSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			nodes = found
			break
		}
	}
	if nodes == nil {
		nodes = doc.Find("a[href]")
	}

	var cands []candidate
	nodes.EachWithBreak(func(_ int, node *goquery.Selection) bool {
		c, ok := listingCandidate(node, baseURL)
		if ok {
			cands = append(cands, c)
		}
		return len(cands) < maxListingEntries
	})
	return cands, nil
}

// listingCandidate extracts one candidate from a listing node.
func listingCandidate(node *goquery.Selection, baseURL string) (candidate, bool) {
	var link, title string

	if goquery.NodeName(node) == "a" {
		link, _ = node.Attr("href")
		title = strings.TrimSpace(node.Text())
	} else {
		anchor := node.Find("a[href]").First()
		if anchor.Length() == 0 {
			return candidate{}, false
		}
		link, _ = anchor.Attr("href")
		title = strings.TrimSpace(anchor.Text())
		if title == "" {
			title = truncate(strings.TrimSpace(node.Text()), 100)
		}
	}

	link = strings.TrimSpace(link)
	if link == "" || title == "" {
		return candidate{}, false
	}

	if strings.HasPrefix(link, "/") {
		link = resolveURL(link, baseURL)
	} else if !strings.HasPrefix(link, "http") {
		return candidate{}, false
	}

	var description string
	node.Find("p, span, div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, _ := s.Attr("class")
		if descClassPattern.MatchString(class) {
			description = truncate(strings.TrimSpace(s.Text()), maxDescriptionLength)
			return false
		}
		return true
	})

	return candidate{
		title:       truncate(title, maxTitleLength),
		url:         link,
		description: description,
	}, true
}

// pageMeta holds metadata extracted from a single article page.
type pageMeta struct {
	Title       string
	Description string
}

// parseMeta extracts og:/meta metadata from an article page, falling
// back to the first substantial paragraph for the description.
func parseMeta(body []byte) (pageMeta, error) {
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm := pageMeta{}
	pm.Title = firstNonEmpty(
		extract(`meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("h1").First().Text()),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	pm.Description = firstNonEmpty(
		extract(`meta[property="og:description"]`),
		extract(`meta[name="description"]`),
		firstParagraph(doc),
	)

	pm.Title = truncate(pm.Title, maxTitleLength)
	pm.Description = truncate(pm.Description, maxDescriptionLength)
	return pm, nil
}

// firstParagraph returns the first paragraph long enough to serve as a
// summary.
func firstParagraph(doc *goquery.Document) string {
	const minLen = 50

	var out string
	doc.Find("p").EachWithBreak(func(i int, p *goquery.Selection) bool {
		if i >= 5 {
			return false
		}
		if text := strings.TrimSpace(p.Text()); len(text) > minLen {
			out = text
			return false
		}
		return true
	})
	return out
}

// stripHTML flattens an HTML fragment to its text content.
func stripHTML(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return strings.TrimSpace(fragment)
	}
	return strings.TrimSpace(doc.Text())
}

// firstNonEmpty returns the first non-empty string from the given values.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// resolveURL resolves a possibly relative URL against a base URL.
func resolveURL(raw, base string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if parsed.IsAbs() {
		return parsed.String()
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return raw
	}

	return baseURL.ResolveReference(parsed).String()
}
