package filter

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestKeywordsMatch(t *testing.T) {
	kws := NewKeywords("Bitcoin, AI , ")

	assert.Equal(t, []string{"Bitcoin"}, kws.Match("bitcoin hits new high"))
	assert.Equal(t, []string{"Bitcoin", "AI"}, kws.Match("Bitcoin meets AI trading"))
	assert.Nil(t, kws.Match("quiet day in markets"))
}

func TestKeywordsMatchCaseInsensitive(t *testing.T) {
	kws := NewKeywords("OpenAI")
	assert.Equal(t, []string{"OpenAI"}, kws.Match("OPENAI announces a model"))
}

func TestEmptyKeywordsMatchAll(t *testing.T) {
	var kws Keywords
	assert.Equal(t, []string{MatchAllKeyword}, kws.Match("anything at all"))

	kws = NewKeywords("  ,  ")
	assert.Equal(t, []string{MatchAllKeyword}, kws.Match(""))
}

func TestAfterCutoff(t *testing.T) {
	cutoff := time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		published time.Time
		want      bool
	}{
		{"after", time.Date(2026, 8, 21, 0, 0, 0, 0, time.UTC), true},
		{"same day later hour", time.Date(2026, 8, 20, 23, 59, 0, 0, time.UTC), true},
		{"before", time.Date(2026, 8, 19, 23, 59, 0, 0, time.UTC), false},
		{"undated passes", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AfterCutoff(tt.published, cutoff))
		})
	}
}

func TestAfterCutoffNoCutoff(t *testing.T) {
	old := time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.True(t, AfterCutoff(old, time.Time{}))
}

func TestIsNoise(t *testing.T) {
	assert.True(t, IsNoise("short"))
	assert.True(t, IsNoise("  Advertisement "))
	assert.True(t, IsNoise("Privacy Policy"))
	assert.False(t, IsNoise("Researchers disclose new kernel vulnerability"))
}

func TestCanonicalURL(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "bing apiclick unwrapped",
			in:   "https://www.bing.com/news/apiclick.aspx?ref=FexRss&aid=&tid=1&url=https%3A%2F%2Fexample.com%2Fstory&c=2",
			want: "https://example.com/story",
		},
		{
			name: "bing url param without apiclick path",
			in:   "https://bing.com/news/redir?url=https%3A%2F%2Fexample.org%2Fa",
			want: "https://example.org/a",
		},
		{
			name: "encoded characters in target decoded exactly once",
			in:   "https://www.bing.com/news/apiclick.aspx?url=https%3A%2F%2Fexample.com%2Fa%2520b%3Fq%3D1",
			want: "https://example.com/a%20b?q=1",
		},
		{
			name: "non-bing passthrough",
			in:   "https://example.com/read?url=https%3A%2F%2Fother.com",
			want: "https://example.com/read?url=https%3A%2F%2Fother.com",
		},
		{
			name: "bing without target passthrough",
			in:   "https://www.bing.com/news/apiclick.aspx?ref=FexRss",
			want: "https://www.bing.com/news/apiclick.aspx?ref=FexRss",
		},
		{
			name: "non-http target rejected",
			in:   "https://www.bing.com/news/apiclick.aspx?url=javascript%3Aalert(1)",
			want: "https://www.bing.com/news/apiclick.aspx?url=javascript%3Aalert(1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanonicalURL(tt.in))
		})
	}
}

func TestDedup(t *testing.T) {
	d := NewDedup()

	assert.False(t, d.Observe("https://example.com/a"))
	assert.True(t, d.Observe("https://example.com/a"))
	assert.False(t, d.Observe("https://example.com/b"))
	assert.Equal(t, 2, d.Len())
}
