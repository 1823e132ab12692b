package fetch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Example News</title>
  <link>https://example.com</link>
  <item>
    <title>First headline about something</title>
    <link>https://example.com/articles/1</link>
    <description><![CDATA[<p>Rich <b>HTML</b> summary of the story.</p>]]></description>
    <pubDate>Thu, 20 Aug 2026 10:00:00 GMT</pubDate>
  </item>
  <item>
    <title>Second headline about other things</title>
    <link>https://example.com/articles/2</link>
    <description>Plain text summary</description>
  </item>
  <item>
    <title>Entry without a link is skipped</title>
  </item>
</channel>
</rss>`

const sampleAtom = `<?xml version="1.0" encoding="utf-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>Atom Example</title>
  <entry>
    <title>Atom entry headline text</title>
    <link href="https://example.org/posts/1"/>
    <summary>Atom summary</summary>
    <updated>2026-08-19T08:30:00Z</updated>
  </entry>
</feed>`

func TestParseFeedRSS(t *testing.T) {
	cands, err := parseFeed([]byte(sampleRSS))
	require.NoError(t, err)
	require.Len(t, cands, 2)

	first := cands[0]
	assert.Equal(t, "First headline about something", first.title)
	assert.Equal(t, "https://example.com/articles/1", first.url)
	assert.Equal(t, "Rich HTML summary of the story.", first.description)
	assert.Equal(t, time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC), first.published.UTC())

	second := cands[1]
	assert.Equal(t, "Plain text summary", second.description)
	assert.True(t, second.published.IsZero())
}

func TestParseFeedAtom(t *testing.T) {
	cands, err := parseFeed([]byte(sampleAtom))
	require.NoError(t, err)
	require.Len(t, cands, 1)

	assert.Equal(t, "Atom entry headline text", cands[0].title)
	assert.Equal(t, "https://example.org/posts/1", cands[0].url)
	assert.Equal(t, time.Date(2026, 8, 19, 8, 30, 0, 0, time.UTC), cands[0].published.UTC())
}

func TestParseFeedInvalid(t *testing.T) {
	_, err := parseFeed([]byte("not a feed at all"))
	assert.Error(t, err)
}

func TestTruncateRuneSafe(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 10))
	assert.Equal(t, "ab", truncate("abcd", 2))

	// multi-byte rune at the cut point is dropped, not split
	s := "aé" // 'é' is two bytes
	assert.Equal(t, "a", truncate(s, 2))
}
