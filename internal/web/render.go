package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/mmynk/rentkeeper/internal/middleware"
	"github.com/mmynk/rentkeeper/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = []string{
	"index",
	"house_detail",
	"register",
	"login",
	"owner_dashboard",
	"add_house",
	"add_tenant",
	"add_bill",
	"add_agreement",
	"not_found",
	"error",
}

var funcs = template.FuncMap{
	"money": formatMoney,
	"date":  formatDate,
}

// formatMoney renders an amount with English digit grouping and two decimals.
func formatMoney(v float64) string {
	return message.NewPrinter(language.English).Sprintf("%.2f", v)
}

func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

// renderer holds one parsed template set per page, each combined with the layout.
type renderer struct {
	pages map[string]*template.Template
}

func newRenderer() (*renderer, error) {
	r := &renderer{pages: make(map[string]*template.Template, len(pages))}
	for _, name := range pages {
		t, err := template.New("layout").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// render executes a page into a buffer first so a template error never
// produces a half-written response. The owner and pending flash messages
// are added to data.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	t, ok := s.templates.pages[name]
	if !ok {
		slog.Error("Unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if data == nil {
		data = map[string]any{}
	}
	owner, _ := middleware.OwnerFromContext(r.Context())
	data["Owner"] = owner
	data["Flashes"] = s.flash.Pop(w, r)
	data["RequestID"] = middleware.GetRequestID(r.Context())

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("Failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Debug("Failed to write response", "error", err)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "not_found", nil)
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("Request failed",
		"request_id", middleware.GetRequestID(r.Context()),
		"path", r.URL.Path,
		"error", err,
	)
	s.render(w, r, http.StatusInternalServerError, "error", nil)
}
