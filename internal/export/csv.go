package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/newsreap/newsreap/internal/domain"
)

// csvHeader fixes the six-column layout of CSV exports.
var csvHeader = []string{"title", "url", "date", "description", "source", "matched_keywords"}

func writeCSV(w io.Writer, articles []domain.Article) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, a := range articles {
		rec := toRecord(a)
		row := []string{rec.Title, rec.URL, rec.Date, rec.Description, rec.Source, rec.MatchedKeywords}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
