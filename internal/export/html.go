package export

import (
	_ "embed"
	"html/template"
	"io"
	"time"

	"github.com/newsreap/newsreap/internal/domain"
)

//go:embed report.html.tmpl
var reportTemplate string

var htmlTmpl = template.Must(template.New("report").Parse(reportTemplate))

type htmlData struct {
	GeneratedAt string
	Count       int
	Records     []record
}

func writeHTML(w io.Writer, articles []domain.Article) error {
	data := htmlData{
		GeneratedAt: time.Now().Format("2006-01-02 15:04"),
		Count:       len(articles),
		Records:     make([]record, 0, len(articles)),
	}
	for _, a := range articles {
		data.Records = append(data.Records, toRecord(a))
	}
	return htmlTmpl.Execute(w, data)
}
