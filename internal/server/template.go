package server

import (
	"html/template"
	"sync"
	"time"

	"github.com/MuhamedUsman/provlens/internal/domain"
	"github.com/MuhamedUsman/provlens/internal/webui"
)

var (
	once sync.Once
	t    *template.Template
)

func getTemplate() *template.Template {
	once.Do(func() {
		funcs := template.FuncMap{
			"inc":             func(i int) int { return i + 1 },
			"cleaned":         cleanedField,
			"scoreClass":      scoreClass,
			"humanizeElapsed": humanizeElapsed,
		}
		t = template.Must(template.New("pages").
			Funcs(funcs).
			ParseFS(webui.Files, "*.tmpl.html"),
		)
	})
	return t
}

// cleanedField prefers the cleaner's value for a column, falling back to
// the original when the cleaner left it untouched.
func cleanedField(r domain.RecordReport, header string) string {
	if v, ok := r.Result.CleanedData[header]; ok && v != "" {
		return v
	}
	return r.Record.Get(header)
}

func scoreClass(score int) string {
	switch {
	case score >= 80:
		return "score-good"
	case score >= 50:
		return "score-warn"
	default:
		return "score-bad"
	}
}

func humanizeElapsed(d time.Duration) string {
	return d.Round(time.Millisecond).String()
}
