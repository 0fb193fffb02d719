package views

import "strings"

// LogLevelClass is the CSS class of a log line for level.
func LogLevelClass(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	if l == "" {
		l = "info"
	}
	return "log-" + l
}
