// Package export renders collected articles to the supported output
// formats and writes them next to each other under a shared base name.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/newsreap/newsreap/internal/domain"
)

// Format names an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatHTML Format = "html"
)

// Writer renders articles to one output format.
type Writer func(w io.Writer, articles []domain.Article) error

// writers maps each supported format to its renderer.
var writers = map[Format]Writer{
	FormatCSV:  writeCSV,
	FormatJSON: writeJSON,
	FormatHTML: writeHTML,
}

// record is the flat six-column article shape shared by all formats.
type record struct {
	Title           string `json:"title"`
	URL             string `json:"url"`
	Date            string `json:"date"`
	Description     string `json:"description"`
	Source          string `json:"source"`
	MatchedKeywords string `json:"matched_keywords"`
}

func toRecord(a domain.Article) record {
	return record{
		Title:           a.Title,
		URL:             a.URL,
		Date:            a.DateString(),
		Description:     a.Description,
		Source:          a.Source,
		MatchedKeywords: strings.Join(a.MatchedKeywords, ", "),
	}
}

// ParseFormats parses a comma-separated format list such as "csv,html".
func ParseFormats(raw string) ([]Format, error) {
	var out []Format
	seen := make(map[Format]struct{})

	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		f := Format(name)
		if _, ok := writers[f]; !ok {
			return nil, fmt.Errorf("unknown export format %q", name)
		}
		if _, dup := seen[f]; dup {
			continue
		}
		seen[f] = struct{}{}
		out = append(out, f)
	}

	if len(out) == 0 {
		return nil, errors.New("no export formats given")
	}

	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// WriteFiles writes one file per format as <base>.<format> and returns
// the paths written.
func WriteFiles(base string, formats []Format, articles []domain.Article) ([]string, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, errors.New("output base name is empty")
	}

	var paths []string
	for _, f := range formats {
		writer, ok := writers[f]
		if !ok {
			return paths, fmt.Errorf("unknown export format %q", f)
		}

		path := fmt.Sprintf("%s.%s", base, f)
		file, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("create %s: %w", path, err)
		}

		err = writer(file, articles)
		if cerr := file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return paths, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
