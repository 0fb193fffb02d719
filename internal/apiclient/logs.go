package apiclient

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/crucial707/pfconsole/internal/models"
)

// LogFilter selects log entries server-side. An empty Level or "All" means
// every level; Limit <= 0 leaves the backend default.
type LogFilter struct {
	Level string
	Limit int
}

// Query encodes the filter as the query string of GET /api/logs.
func (f LogFilter) Query() string {
	q := url.Values{}
	if f.Level != "" && f.Level != "All" {
		q.Set("level", f.Level)
	}
	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	return q.Encode()
}

type logsResponse struct {
	envelope
	Logs []models.LogEntry `json:"logs"`
}

// ListLogs returns filtered log entries (GET /api/logs).
func (c *Client) ListLogs(ctx context.Context, f LogFilter) ([]models.LogEntry, error) {
	path := "/api/logs"
	if q := f.Query(); q != "" {
		path += "?" + q
	}
	var out logsResponse
	if err := c.do(ctx, "logs.list", http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	if out.Logs == nil {
		out.Logs = []models.LogEntry{}
	}
	return out.Logs, nil
}

// ClearLogs deletes every log entry (DELETE /api/logs).
func (c *Client) ClearLogs(ctx context.Context) error {
	var out envelope
	return c.do(ctx, "logs.clear", http.MethodDelete, "/api/logs", nil, &out)
}

// LogDownload is the raw log file as served by the backend. Close Body when done.
type LogDownload struct {
	Body               io.ReadCloser
	ContentType        string
	ContentDisposition string
}

// DownloadLogs opens the raw log file (GET /api/logs/download).
func (c *Client) DownloadLogs(ctx context.Context) (*LogDownload, error) {
	resp, err := c.stream(ctx, "logs.download", "/api/logs/download")
	if err != nil {
		return nil, err
	}
	return &LogDownload{
		Body:               resp.Body,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}
