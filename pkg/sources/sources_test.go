package sources

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultCatalog(t *testing.T) {
	cat, err := LoadDefault()
	require.NoError(t, err)

	cats := cat.Categories()
	require.NotEmpty(t, cats)

	tech, ok := cat.Category("technology")
	require.True(t, ok, "default catalog should have a Technology category")
	assert.NotEmpty(t, tech.Sources)
}

func writeCatalog(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAMLCatalog(t *testing.T) {
	path := writeCatalog(t, "sources.yaml", `
categories:
  Crypto:
    - name: Coindesk
      url: https://www.coindesk.com/arc/outboundfeeds/rss/
    - url: decrypt.co/feed
`)

	cat, err := Load(path)
	require.NoError(t, err)

	crypto, ok := cat.Category("Crypto")
	require.True(t, ok)
	require.Len(t, crypto.Sources, 2)

	// name derived from URL, scheme defaulted
	assert.Equal(t, "Decrypt", crypto.Sources[1].Name)
	assert.Equal(t, "https://decrypt.co/feed", crypto.Sources[1].URL)
}

func TestLoadJSONCatalog(t *testing.T) {
	path := writeCatalog(t, "sources.json", `{
  "categories": {
    "Science": [
      {"name": "Nature", "url": "https://www.nature.com/nature.rss"}
    ]
  }
}`)

	cat, err := Load(path)
	require.NoError(t, err)

	urls, err := cat.URLs("science")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://www.nature.com/nature.rss"}, urls)
}

func TestLoadCatalogEnvExpansion(t *testing.T) {
	t.Setenv("FEED_HOST", "feeds.example.com")
	path := writeCatalog(t, "sources.yaml", `
categories:
  Internal:
    - name: Ours
      url: https://${FEED_HOST}/rss
`)

	cat, err := Load(path)
	require.NoError(t, err)

	urls, err := cat.URLs("Internal")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://feeds.example.com/rss"}, urls)
}

func TestLoadCatalogRejectsDuplicateURL(t *testing.T) {
	path := writeCatalog(t, "sources.yaml", `
categories:
  Dup:
    - url: https://example.com/feed
    - url: https://example.com/feed
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "twice")
}

func TestLoadCatalogRejectsEmptyCategory(t *testing.T) {
	path := writeCatalog(t, "sources.yaml", `
categories:
  Empty: []
`)

	_, err := Load(path)
	assert.Error(t, err)
}

func TestURLsUnknownCategory(t *testing.T) {
	cat, err := LoadDefault()
	require.NoError(t, err)

	_, err = cat.URLs("nonexistent")
	assert.Error(t, err)
}
