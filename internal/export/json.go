package export

import (
	"encoding/json"
	"io"

	"github.com/newsreap/newsreap/internal/domain"
)

func writeJSON(w io.Writer, articles []domain.Article) error {
	records := make([]record, 0, len(articles))
	for _, a := range articles {
		records = append(records, toRecord(a))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(records)
}
