// Package sources loads the preset source catalog: named categories of
// feed and page URLs shipped with the tool or supplied by the user.
package sources

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/newsreap/newsreap/internal/domain"
)

// maxCategorySources caps a preset category; the catalogs are meant to
// stay small and curated.
const maxCategorySources = 30

//go:embed catalog.yaml
var defaultCatalog []byte

// catalogFile represents the structure of the catalog file.
type catalogFile struct {
	Categories map[string][]domain.Source `json:"categories" yaml:"categories"`
}

// Catalog materializes the preset categories loaded from a config file.
type Catalog struct {
	mu         sync.RWMutex
	categories []domain.Category
	idx        map[string]domain.Category
}

// LoadDefault builds the catalog shipped with the binary.
func LoadDefault() (*Catalog, error) {
	return load(defaultCatalog, ".yaml")
}

// Load loads a catalog from a YAML/JSON file, falling back to the
// embedded default when path is empty.
func Load(path string) (*Catalog, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return LoadDefault()
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sources file: %w", err)
	}
	defer file.Close()

	raw, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read sources file: %w", err)
	}

	return load(raw, filepath.Ext(path))
}

func load(raw []byte, ext string) (*Catalog, error) {
	expanded := []byte(os.ExpandEnv(string(raw)))

	file, err := parseCatalog(expanded, ext)
	if err != nil {
		return nil, err
	}
	if len(file.Categories) == 0 {
		return nil, errors.New("sources file contains no categories")
	}

	cat := &Catalog{
		idx: make(map[string]domain.Category, len(file.Categories)),
	}

	names := make([]string, 0, len(file.Categories))
	for name := range file.Categories {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		c := sanitizeCategory(name, file.Categories[name])
		if err := validateCategory(c); err != nil {
			return nil, err
		}
		key := strings.ToLower(c.Name)
		if _, exists := cat.idx[key]; exists {
			return nil, fmt.Errorf("duplicate category %q", c.Name)
		}
		cat.categories = append(cat.categories, c)
		cat.idx[key] = c
	}

	return cat, nil
}

// parseCatalog attempts to decode the catalog file content.
func parseCatalog(data []byte, ext string) (catalogFile, error) {
	ext = strings.ToLower(strings.TrimSpace(ext))
	decoders := []struct {
		name string
		exts []string
		fn   func([]byte, any) error
	}{
		{name: "yaml", exts: []string{".yaml", ".yml"}, fn: yaml.Unmarshal},
		{name: "json", exts: []string{".json"}, fn: json.Unmarshal},
	}

	for _, d := range decoders {
		if ext != "" && !contains(d.exts, ext) {
			continue
		}
		var file catalogFile
		if err := d.fn(data, &file); err == nil {
			return file, nil
		}
	}

	return catalogFile{}, errors.New("sources file format not recognized (expected YAML or JSON)")
}

func contains(values []string, v string) bool {
	for _, cand := range values {
		if cand == v {
			return true
		}
	}
	return false
}

// sanitizeCategory trims names and URLs and drops empty entries.
func sanitizeCategory(name string, srcs []domain.Source) domain.Category {
	out := domain.Category{Name: strings.TrimSpace(name)}
	for _, s := range srcs {
		s.Name = strings.TrimSpace(s.Name)
		s.URL = domain.NormalizeURL(s.URL)
		if s.URL == "" {
			continue
		}
		if s.Name == "" {
			s.Name = domain.SourceNameFromURL(s.URL)
		}
		out.Sources = append(out.Sources, s)
	}
	return out
}

// validateCategory checks that required fields are present.
func validateCategory(c domain.Category) error {
	if c.Name == "" {
		return errors.New("category name is required")
	}
	if len(c.Sources) == 0 {
		return fmt.Errorf("category %q has no sources", c.Name)
	}
	if len(c.Sources) > maxCategorySources {
		return fmt.Errorf("category %q has %d sources, max is %d", c.Name, len(c.Sources), maxCategorySources)
	}

	seen := make(map[string]struct{}, len(c.Sources))
	for _, s := range c.Sources {
		key := strings.ToLower(s.URL)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("category %q lists %s twice", c.Name, s.URL)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// Categories returns all categories in name order.
func (c *Catalog) Categories() []domain.Category {
	if c == nil {
		return nil
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Category returns the category with the given name, case-insensitive.
func (c *Catalog) Category(name string) (domain.Category, bool) {
	if c == nil {
		return domain.Category{}, false
	}

	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return domain.Category{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	cat, ok := c.idx[name]
	return cat, ok
}

// URLs flattens the named category into its source URLs.
func (c *Catalog) URLs(category string) ([]string, error) {
	cat, ok := c.Category(category)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", category)
	}

	urls := make([]string, 0, len(cat.Sources))
	for _, s := range cat.Sources {
		urls = append(urls, s.URL)
	}
	return urls, nil
}
