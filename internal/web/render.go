package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/crucial707/pfconsole/internal/theme"
	"github.com/crucial707/pfconsole/internal/views"
)

//go:embed templates
var templatesFS embed.FS

// Page carries the fields every page renders: title, active nav entry,
// theme and the transient notice/error banners. Path is where the theme
// toggle returns to.
type Page struct {
	Title  string
	Nav    string
	Path   string
	Theme  theme.State
	Notice string
	Error  string
}

// pageSet holds one parsed template per page, each combined with the layout.
type pageSet struct {
	pages map[string]*template.Template
}

var templateFuncs = template.FuncMap{
	"pathEscape":  url.PathEscape,
	"queryEscape": url.QueryEscape,
	"upper":       strings.ToUpper,
	"userContact": views.UserContact,
	"inc":         func(i int) int { return i + 1 },
}

func parsePages() (*pageSet, error) {
	layout, err := templatesFS.ReadFile("templates/layout.html")
	if err != nil {
		return nil, err
	}
	base, err := template.New("layout").Funcs(templateFuncs).Parse(string(layout))
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	names, err := fs.Glob(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	set := &pageSet{pages: make(map[string]*template.Template)}
	for _, name := range names {
		file := path.Base(name)
		if file == "layout.html" {
			continue
		}
		content, err := templatesFS.ReadFile(name)
		if err != nil {
			return nil, err
		}
		t, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := t.Parse(string(content)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		set.pages[file] = t
	}
	return set, nil
}

// page returns the common page fields for r.
func (s *Server) page(r *http.Request, title, nav string) Page {
	// After a form post the toggle falls back to the Referer.
	back := ""
	if r.Method == http.MethodGet {
		back = r.URL.RequestURI()
	}
	return Page{Title: title, Nav: nav, Path: back, Theme: theme.FromRequest(r)}
}

// render executes the named page into a buffer and writes it with status, so
// a template error never leaves a half-written page.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any) {
	t, ok := s.pages.pages[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		slog.Error("template execute", "template", name, "request_id", chimw.GetReqID(r.Context()), "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// redirect sends a 303 so a form post is followed by a GET.
func redirect(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}

// logBackendError records a failed backend call made on behalf of r.
func logBackendError(r *http.Request, op string, err error) {
	slog.Warn("backend call failed",
		"op", op,
		"request_id", chimw.GetReqID(r.Context()),
		"path", r.URL.Path,
		"err", err)
}

// localPath accepts only a site-relative path (with optional query) and
// returns fallback for anything a browser could resolve to another host.
// Browsers read a backslash as a slash, so "/\host" counts as off-site.
func localPath(raw, fallback string) string {
	if strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return fallback
	}
	if u.Path == "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(u.Path, "//") || strings.Contains(u.Path, "\\") {
		return fallback
	}
	if u.RawQuery != "" {
		return u.Path + "?" + u.RawQuery
	}
	return u.Path
}
