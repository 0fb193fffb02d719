package views

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/crucial707/pfconsole/internal/models"
)

// FilterApps keeps the apps whose display name, publisher or file name
// contains query, case-insensitively. An empty query returns apps unchanged.
func FilterApps(apps []models.App, query string) []models.App {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return apps
	}
	out := make([]models.App, 0, len(apps))
	for _, a := range apps {
		if strings.Contains(strings.ToLower(a.DisplayName), q) ||
			strings.Contains(strings.ToLower(a.Publisher), q) ||
			strings.Contains(strings.ToLower(a.FileName), q) {
			out = append(out, a)
		}
	}
	return out
}

// AppCountLabel is the badge text: "X of Y apps" when a filter hides some
// apps, otherwise "X app" or "X apps".
func AppCountLabel(showing, total int) string {
	if total > 0 && showing != total {
		return fmt.Sprintf("%d of %d apps", showing, total)
	}
	if showing == 1 {
		return "1 app"
	}
	return fmt.Sprintf("%d apps", showing)
}

var sizeUnits = []string{"B", "KB", "MB", "GB"}

// FormatFileSize renders bytes with two decimals at most, N/A for zero.
func FormatFileSize(bytes int64) string {
	if bytes <= 0 {
		return NotAvailable
	}
	i := int(math.Floor(math.Log(float64(bytes)) / math.Log(1024)))
	if i >= len(sizeUnits) {
		i = len(sizeUnits) - 1
	}
	v := math.Round(float64(bytes)/math.Pow(1024, float64(i))*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}

// DateTimeLayout is used for app timestamps.
const DateTimeLayout = "Jan 2, 2006 15:04:05"

// FormatDate renders a timestamp in loc. Empty values are N/A; values that
// do not parse are returned as sent.
func FormatDate(s string, loc *time.Location) string {
	if s == "" {
		return NotAvailable
	}
	t, ok := ParseTimestamp(s, loc)
	if !ok {
		return s
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(DateTimeLayout)
}

// FormatClock renders the time of day of a timestamp, or "".
func FormatClock(s string, loc *time.Location) string {
	t, ok := ParseTimestamp(s, loc)
	if !ok {
		return ""
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(TimelineTimeLayout)
}

// MinOSVersion turns the first true "vMAJOR_RELEASE" flag into a label such as
// "Windows 10 1809".
func MinOSVersion(a *models.Applicability) string {
	if a == nil {
		return NotAvailable
	}
	for _, f := range a.MinimumSupportedOperatingSystem {
		if f.Value && strings.HasPrefix(f.Key, "v") {
			v := strings.Replace(strings.TrimPrefix(f.Key, "v"), "_", " ", 1)
			return "Windows " + v
		}
	}
	return NotAvailable
}

// Architecture returns the applicability architecture or N/A.
func Architecture(a *models.Applicability) string {
	if a == nil || a.Architecture == "" {
		return NotAvailable
	}
	return a.Architecture
}

// Truncate shortens s to n runes, appending "..." when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// AppRow is one row of the apps table.
type AppRow struct {
	ID          string
	DisplayName string
	Description string
	Publisher   string
	FileName    string
	Size        string
	Modified    string
}

// NewAppRows builds table rows for apps.
func NewAppRows(apps []models.App, loc *time.Location) []AppRow {
	rows := make([]AppRow, 0, len(apps))
	for _, a := range apps {
		rows = append(rows, AppRow{
			ID:          a.ID,
			DisplayName: a.DisplayName,
			Description: Truncate(a.Description, 60),
			Publisher:   orDefault(a.Publisher, NotAvailable),
			FileName:    orDefault(a.FileName, NotAvailable),
			Size:        FormatFileSize(a.Size),
			Modified:    FormatDate(a.LastModifiedDateTime, loc),
		})
	}
	return rows
}

// StatusRow is one line of the deployment status table.
type StatusRow struct {
	Label string
	Count int
	Class string
}

// StatusRows lists the deployment counts, or nil when there is no data.
func StatusRows(s models.DeploymentStatus) []StatusRow {
	if s.Empty() {
		return nil
	}
	return []StatusRow{
		{"Installed", s.Installed, "status-installed"},
		{"Failed", s.Failed, "status-failed"},
		{"Pending", s.Pending, "status-pending"},
		{"Not installed", s.NotInstalled, "status-not-installed"},
	}
}

// AssignmentTarget renders the target of an assignment.
func AssignmentTarget(a models.Assignment) string {
	if a.TargetGroupID == "" {
		return "All Users/Devices"
	}
	return a.TargetGroupID
}
