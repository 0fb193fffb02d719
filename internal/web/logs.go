package web

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/crucial707/pfconsole/internal/apiclient"
	"github.com/crucial707/pfconsole/internal/models"
	"github.com/crucial707/pfconsole/internal/views"
)

var logLimits = []int{50, 100, 250, 500, 1000}

type logLine struct {
	models.LogEntry
	Class string
}

type logsView struct {
	Page
	Entries    []logLine
	CountLabel string
	Level      string
	Limit      int
	Levels     []string
	Limits     []int
}

// logViewer renders the log entries selected by the level and limit filters.
// Filtering happens in the backend. Links into the viewer carry #latest so the
// browser opens it scrolled to the newest entry.
func (s *Server) logViewer(w http.ResponseWriter, r *http.Request) {
	level := r.URL.Query().Get("level")
	if level == "" {
		level = "All"
	}
	limit := s.cfg.LogLimit
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	v := logsView{
		Page:   s.page(r, "Logs", "logs"),
		Level:  level,
		Limit:  limit,
		Levels: models.LogLevels,
		Limits: logLimits,
	}
	if r.URL.Query().Get("cleared") == "1" {
		v.Notice = "Logs cleared successfully!"
	}

	entries, err := s.api.ListLogs(r.Context(), apiclient.LogFilter{Level: level, Limit: limit})
	if err != nil {
		logBackendError(r, "logs.list", err)
		v.Error = "Failed to load logs: " + apiclient.Message(err)
		v.CountLabel = "Error"
		s.render(w, r, http.StatusOK, "logs.html", v)
		return
	}
	v.Entries = make([]logLine, 0, len(entries))
	for _, e := range entries {
		v.Entries = append(v.Entries, logLine{LogEntry: e, Class: views.LogLevelClass(e.Level)})
	}
	v.CountLabel = fmt.Sprintf("%d log entries", len(entries))
	s.render(w, r, http.StatusOK, "logs.html", v)
}

func logsClearConfirmView(p Page) confirmView {
	return confirmView{
		Page:     p,
		Question: "Are you sure you want to clear all logs?",
		Action:   "/logs/clear",
		Cancel:   "/logs#latest",
		Button:   "Clear logs",
	}
}

// logsClearConfirm asks before clearing; nothing is sent to the backend.
func (s *Server) logsClearConfirm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "confirm.html", logsClearConfirmView(s.page(r, "Clear Logs", "logs")))
}

// logsClear deletes every log entry after confirmation.
func (s *Server) logsClear(w http.ResponseWriter, r *http.Request) {
	if err := s.api.ClearLogs(r.Context()); err != nil {
		logBackendError(r, "logs.clear", err)
		v := logsClearConfirmView(s.page(r, "Clear Logs", "logs"))
		v.Error = "Failed to clear logs: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "confirm.html", v)
		return
	}
	redirect(w, r, "/logs?cleared=1#latest")
}

// logsDownload streams the raw backend log file to the browser.
func (s *Server) logsDownload(w http.ResponseWriter, r *http.Request) {
	dl, err := s.api.DownloadLogs(r.Context())
	if err != nil {
		logBackendError(r, "logs.download", err)
		http.Error(w, "Failed to download log file: "+apiclient.Message(err), http.StatusBadGateway)
		return
	}
	defer dl.Body.Close()

	ct := dl.ContentType
	if ct == "" {
		ct = "text/plain; charset=utf-8"
	}
	cd := dl.ContentDisposition
	if cd == "" {
		cd = `attachment; filename="PackageFactory.log"`
	}
	w.Header().Set("Content-Type", ct)
	w.Header().Set("Content-Disposition", cd)
	if _, err := io.Copy(w, dl.Body); err != nil {
		logBackendError(r, "logs.download", err)
	}
}
