package fetch

import "net/url"

// BingNewsFeedURL builds the Bing News RSS feed for a free-form topic.
// Bing serves search results as a regular RSS document when format=RSS
// is requested, which makes topic discovery a plain feed fetch.
func BingNewsFeedURL(topic string) string {
	q := url.Values{}
	q.Set("q", topic)
	q.Set("format", "RSS")
	return "https://www.bing.com/news/search?" + q.Encode()
}
