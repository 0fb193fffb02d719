package models

// Log levels understood by GET /api/logs.
var LogLevels = []string{"All", "Info", "Warning", "Error", "Debug"}

// LogEntry is one backend log line.
type LogEntry struct {
	Level     string `json:"Level"`
	Timestamp string `json:"Timestamp"`
	Component string `json:"Component"`
	Message   string `json:"Message"`
	File      string `json:"File"`
}
