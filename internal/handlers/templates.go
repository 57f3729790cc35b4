package handlers

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yukikurage/task-report-api/internal/constants"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format(constants.DateLayout)
	},
	"hours": func(d decimal.NullDecimal) string {
		if !d.Valid {
			return ""
		}
		return d.Decimal.StringFixed(2)
	},
	"deref": func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	},
	"derefID": func(id *uint64) uint64 {
		if id == nil {
			return 0
		}
		return *id
	},
	"inc": func(n int) int { return n + 1 },
	"dec": func(n int) int { return n - 1 },
}

// ParseTemplates parses the embedded console pages.
func ParseTemplates() (*template.Template, error) {
	return template.New("console").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// LoadTemplates installs the console pages on the engine.
func LoadTemplates(r *gin.Engine) error {
	tmpl, err := ParseTemplates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)
	return nil
}
