package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Assignment intents accepted by POST /api/intune/apps/{id}/assign.
const (
	IntentRequired  = "required"
	IntentAvailable = "available"
	IntentUninstall = "uninstall"
)

// Intents lists the assignment intents in display order.
var Intents = []string{IntentRequired, IntentAvailable, IntentUninstall}

// App is a managed application published to the device-management service.
type App struct {
	ID                      string         `json:"id"`
	DisplayName             string         `json:"displayName"`
	Description             string         `json:"description,omitempty"`
	Publisher               string         `json:"publisher,omitempty"`
	FileName                string         `json:"fileName,omitempty"`
	Size                    int64          `json:"size,omitempty"`
	CommittedContentVersion string         `json:"committedContentVersion,omitempty"`
	SetupFilePath           string         `json:"setupFilePath,omitempty"`
	InstallCommandLine      string         `json:"installCommandLine,omitempty"`
	UninstallCommandLine    string         `json:"uninstallCommandLine,omitempty"`
	Applicability           *Applicability `json:"applicability,omitempty"`
	CreatedDateTime         string         `json:"createdDateTime,omitempty"`
	LastModifiedDateTime    string         `json:"lastModifiedDateTime,omitempty"`
}

// Applicability holds the requirement rules of an app.
type Applicability struct {
	Architecture                    string  `json:"architecture,omitempty"`
	MinimumSupportedOperatingSystem OSFlags `json:"minimumSupportedOperatingSystem,omitempty"`
}

// OSFlag is one "v10_1809": true style entry.
type OSFlag struct {
	Key   string
	Value bool
}

// OSFlags keeps the minimum OS flags in the order the backend sent them;
// the first true flag is the effective minimum.
type OSFlags []OSFlag

// UnmarshalJSON decodes a JSON object preserving key order. Non-boolean
// values are ignored.
func (f *OSFlags) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*f = nil
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("os flags: expected object, got %v", tok)
	}
	var out OSFlags
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := keyTok.(string)
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return err
		}
		var v bool
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out = append(out, OSFlag{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*f = out
	return nil
}

// MarshalJSON encodes the flags back into an object in their stored order.
func (f OSFlags) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, fl := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(fl.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		if fl.Value {
			buf.WriteString(":true")
		} else {
			buf.WriteString(":false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Assignment targets an app at a group with an intent. An empty
// TargetGroupID means all users or devices.
type Assignment struct {
	Intent        string `json:"intent"`
	TargetGroupID string `json:"targetGroupId,omitempty"`
}

// AssignRequest is the body of POST /api/intune/apps/{id}/assign.
type AssignRequest struct {
	GroupID string `json:"groupId" validate:"required"`
	Intent  string `json:"intent" validate:"required,oneof=required available uninstall"`
}

// DeploymentStatus summarizes install state counts of an app.
type DeploymentStatus struct {
	Installed    int `json:"installed"`
	Failed       int `json:"failed"`
	Pending      int `json:"pending"`
	NotInstalled int `json:"notInstalled"`
}

// Empty reports whether every count is zero.
func (s DeploymentStatus) Empty() bool {
	return s.Installed == 0 && s.Failed == 0 && s.Pending == 0 && s.NotInstalled == 0
}

// Total is the sum of all counts.
func (s DeploymentStatus) Total() int {
	return s.Installed + s.Failed + s.Pending + s.NotInstalled
}
