package views

import (
	"strings"
	"time"

	"github.com/crucial707/pfconsole/internal/models"
)

const defaultActivityIcon = "📋"

var activityIcons = map[string]string{
	models.ActionAppUpload:    "📦",
	models.ActionAppAssign:    "✅",
	models.ActionGroupCreate:  "🏢",
	models.ActionGroupDelete:  "🗑️",
	models.ActionMemberAdd:    "➕",
	models.ActionMemberRemove: "➖",
	models.ActionServerStart:  "🚀",
}

// ActivityIcon returns the icon for an action type.
func ActivityIcon(actionType string) string {
	if icon, ok := activityIcons[actionType]; ok {
		return icon
	}
	return defaultActivityIcon
}

// ActivityMessage is a rendered activity line: a bold Label followed by Text.
// Unknown action types have no label and the raw type as text.
type ActivityMessage struct {
	Label string
	Text  string
}

// FormatActivity builds the message for a. It depends only on the action type
// and the fields present on a.
func FormatActivity(a models.Activity) ActivityMessage {
	switch a.ActionType {
	case models.ActionAppUpload:
		return ActivityMessage{"App uploaded:", a.AppName}
	case models.ActionAppAssign:
		return ActivityMessage{"App assigned:", a.AppName + " to " + a.GroupName + " (" + a.Intent + ")"}
	case models.ActionGroupCreate:
		return ActivityMessage{"Group created:", a.GroupName}
	case models.ActionGroupDelete:
		return ActivityMessage{"Group deleted:", a.GroupName}
	case models.ActionMemberAdd:
		return ActivityMessage{"Member added:", a.UserName + " to " + a.GroupName}
	case models.ActionMemberRemove:
		return ActivityMessage{"Member removed:", a.UserName + " from " + a.GroupName}
	case models.ActionServerStart:
		return ActivityMessage{"Server started", ""}
	default:
		return ActivityMessage{Text: a.ActionType}
	}
}

// TimelineEntry is one rendered activity.
type TimelineEntry struct {
	Icon    string
	Time    string
	Message ActivityMessage
	Failed  bool
	Error   string
}

// DateGroup is the activities of one calendar date.
type DateGroup struct {
	Date    string
	Entries []TimelineEntry
}

// Layouts used for timeline headers and entry times.
const (
	TimelineDateLayout = "Monday, January 2, 2006"
	TimelineTimeLayout = "15:04:05"
)

// UnknownDate heads the group of activities whose timestamp does not parse.
const UnknownDate = "Unknown date"

// Timestamps without a zone are read in the configured location.
var zonelessLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp reads an RFC 3339 timestamp, or one of the zoneless forms
// the backend emits, interpreting the latter in loc.
func ParseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, true
	}
	for _, layout := range zonelessLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// GroupActivities groups activities by their calendar date in loc. Groups
// appear in order of the first activity of each date and entries keep the
// order they were received in. Activities with an unreadable timestamp share
// one UnknownDate group. A nil loc means time.Local.
func GroupActivities(activities []models.Activity, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.Local
	}
	var groups []DateGroup
	index := make(map[string]int)
	for _, a := range activities {
		date, clock := UnknownDate, ""
		if ts, ok := ParseTimestamp(a.Timestamp, loc); ok {
			ts = ts.In(loc)
			date, clock = ts.Format(TimelineDateLayout), ts.Format(TimelineTimeLayout)
		}
		i, ok := index[date]
		if !ok {
			i = len(groups)
			index[date] = i
			groups = append(groups, DateGroup{Date: date})
		}
		groups[i].Entries = append(groups[i].Entries, TimelineEntry{
			Icon:    ActivityIcon(a.ActionType),
			Time:    clock,
			Message: FormatActivity(a),
			Failed:  !a.Success,
			Error:   a.ErrorMessage,
		})
	}
	return groups
}
