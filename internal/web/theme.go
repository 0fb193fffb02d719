package web

import (
	"net/http"
	"net/url"

	"github.com/crucial707/pfconsole/internal/theme"
)

// toggleTheme flips the stored theme and returns to the page the toggle was
// pressed on.
func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	theme.Toggle(w, r)
	back := "/"
	if err := r.ParseForm(); err == nil && r.FormValue("back") != "" {
		back = localPath(r.FormValue("back"), "/")
	} else if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host {
		back = localPath(ref.RequestURI(), "/")
	}
	redirect(w, r, back)
}
