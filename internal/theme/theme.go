// Package theme keeps the light/dark preference in a cookie, the console's
// only client-side persisted state.
package theme

import "net/http"

// Theme values.
const (
	Light = "light"
	Dark  = "dark"
)

// CookieName is the cookie holding the preference.
const CookieName = "theme"

// State is the theme as rendered on every page: the data-theme attribute and
// the toggle button.
type State struct {
	Name   string
	Icon   string
	Label  string
	IsDark bool
}

// For returns the render state of name. Anything other than "dark" is light.
func For(name string) State {
	if name == Dark {
		return State{Name: Dark, Icon: "☀️", Label: "Light", IsDark: true}
	}
	return State{Name: Light, Icon: "🌙", Label: "Dark"}
}

// FromRequest reads the stored preference, defaulting to light.
func FromRequest(r *http.Request) State {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return For(Light)
	}
	return For(c.Value)
}

// Toggle flips the stored preference and returns the new state.
func Toggle(w http.ResponseWriter, r *http.Request) State {
	next := Dark
	if FromRequest(r).IsDark {
		next = Light
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    next,
		Path:     "/",
		MaxAge:   365 * 24 * 3600,
		SameSite: http.SameSiteLaxMode,
	})
	return For(next)
}
