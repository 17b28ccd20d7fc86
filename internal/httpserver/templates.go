package httpserver

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"login",
	"register",
	"dashboard",
	"item_detail",
	"report_item",
	"messages",
	"profile",
	"admin",
	"loading",
	"error",
}

var templateFuncs = template.FuncMap{
	"formatTime": formatTime,
	"formatDate": formatDate,
}

// Templates holds one parsed template per screen, each sharing the layout.
type Templates struct {
	pages map[string]*template.Template
}

func NewTemplates() (*Templates, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").Funcs(templateFuncs).ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Templates{pages: pages}, nil
}

func (t *Templates) Render(w http.ResponseWriter, status int, name string, data any) {
	tpl, ok := t.pages[name]
	if !ok {
		log.Printf("httpserver: unknown template %q", name)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		log.Printf("httpserver: rendering %s: %v", name, err)
	}
}

// formatTime mirrors the inbox timestamp convention: time of day for today,
// weekday plus time within a week, full date otherwise.
func formatTime(t time.Time) string {
	now := time.Now()
	local := t.Local()
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return local.Format("15:04")
	}
	if now.Sub(local) < 7*24*time.Hour {
		return local.Format("Mon 15:04")
	}
	return local.Format("Jan 2, 2006 15:04")
}

func formatDate(t time.Time) string {
	return t.Local().Format("Jan 2, 2006")
}
