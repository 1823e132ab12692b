package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/newsreap/newsreap/internal/domain"
)

func sampleArticles() []domain.Article {
	return []domain.Article{
		{
			Title:           "First story title",
			URL:             "https://example.com/1",
			Description:     "A description, with a comma",
			Source:          "Example",
			MatchedKeywords: []string{"ai", "chips"},
			PublishedAt:     time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:           "Second story title",
			URL:             "https://example.com/2",
			Source:          "Example",
			MatchedKeywords: []string{"*"},
		},
	}
}

func TestParseFormats(t *testing.T) {
	formats, err := ParseFormats("json, CSV ,json")
	require.NoError(t, err)
	assert.Equal(t, []Format{FormatCSV, FormatJSON}, formats)

	_, err = ParseFormats("xml")
	assert.Error(t, err)

	_, err = ParseFormats(" , ")
	assert.Error(t, err)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeCSV(&buf, sampleArticles()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{
		"First story title",
		"https://example.com/1",
		"2026-08-20",
		"A description, with a comma",
		"Example",
		"ai, chips",
	}, rows[1])
	assert.Equal(t, "Unknown", rows[2][2])
	assert.Equal(t, "*", rows[2][5])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, sampleArticles()))

	var records []map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &records))
	require.Len(t, records, 2)

	assert.Equal(t, "First story title", records[0]["title"])
	assert.Equal(t, "ai, chips", records[0]["matched_keywords"])
	assert.Equal(t, "Unknown", records[1]["date"])
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeJSON(&buf, nil))
	assert.Equal(t, "[]", string(bytes.TrimSpace(buf.Bytes())))
}

func TestWriteHTML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeHTML(&buf, sampleArticles()))

	out := buf.String()
	assert.Contains(t, out, "First story title")
	assert.Contains(t, out, `href="https://example.com/1"`)
	assert.Contains(t, out, "2 articles")
}

func TestWriteHTMLEscapes(t *testing.T) {
	articles := []domain.Article{{
		Title: "Tags <script>alert(1)</script> stay inert",
		URL:   "https://example.com/xss",
	}}

	var buf bytes.Buffer
	require.NoError(t, writeHTML(&buf, articles))
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
}

func TestWriteFiles(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "report")

	paths, err := WriteFiles(base, []Format{FormatCSV, FormatHTML, FormatJSON}, sampleArticles())
	require.NoError(t, err)
	require.Len(t, paths, 3)

	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
	}
}

func TestWriteFilesEmptyBase(t *testing.T) {
	_, err := WriteFiles("  ", []Format{FormatCSV}, nil)
	assert.Error(t, err)
}
