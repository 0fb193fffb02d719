package views

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/crucial707/pfconsole/internal/models"
)

var sampleApps = []models.App{
	{ID: "1", DisplayName: "7-Zip", Publisher: "Igor Pavlov", FileName: "7z.msi"},
	{ID: "2", DisplayName: "Notepad++", Publisher: "Don Ho", FileName: "npp.exe"},
	{ID: "3", DisplayName: "Chrome", Publisher: "Google", FileName: "GoogleChrome.msi"},
}

func TestFilterApps(t *testing.T) {
	if got := FilterApps(sampleApps, ""); len(got) != len(sampleApps) {
		t.Errorf("empty query returned %d apps, want %d", len(got), len(sampleApps))
	}
	cases := []struct {
		q    string
		want []string
	}{
		{"zip", []string{"1"}},
		{"GOOGLE", []string{"3"}},
		{"don ho", []string{"2"}},
		{".MSI", []string{"1", "3"}},
		{"nothing", nil},
	}
	for _, tc := range cases {
		got := FilterApps(sampleApps, tc.q)
		if len(got) != len(tc.want) {
			t.Errorf("FilterApps(%q) = %d apps, want %d", tc.q, len(got), len(tc.want))
			continue
		}
		for i, id := range tc.want {
			if got[i].ID != id {
				t.Errorf("FilterApps(%q)[%d] = %s, want %s", tc.q, i, got[i].ID, id)
			}
		}
	}
}

func TestAppCountLabel(t *testing.T) {
	cases := []struct {
		showing, total int
		want           string
	}{
		{3, 3, "3 apps"},
		{1, 1, "1 app"},
		{1, 3, "1 of 3 apps"},
		{0, 3, "0 of 3 apps"},
		{0, 0, "0 apps"},
	}
	for _, tc := range cases {
		if got := AppCountLabel(tc.showing, tc.total); got != tc.want {
			t.Errorf("AppCountLabel(%d, %d) = %q, want %q", tc.showing, tc.total, got, tc.want)
		}
	}
}

func TestFormatFileSize(t *testing.T) {
	cases := map[int64]string{
		0:               "N/A",
		512:             "512 B",
		2048:            "2 KB",
		1536:            "1.5 KB",
		5 * 1024 * 1024: "5 MB",
		3 << 40:         "3072 GB",
		1234567:         "1.18 MB",
	}
	for in, want := range cases {
		if got := FormatFileSize(in); got != want {
			t.Errorf("FormatFileSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestMinOSVersion(t *testing.T) {
	var a models.Applicability
	raw := `{"architecture":"x64","minimumSupportedOperatingSystem":{"v8_0":false,"v10_1809":true,"v10_21H2":true}}`
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := MinOSVersion(&a); got != "Windows 10 1809" {
		t.Errorf("MinOSVersion = %q", got)
	}
	if got := MinOSVersion(nil); got != NotAvailable {
		t.Errorf("MinOSVersion(nil) = %q", got)
	}
	if got := MinOSVersion(&models.Applicability{}); got != NotAvailable {
		t.Errorf("MinOSVersion(empty) = %q", got)
	}
}

func TestStatusRows_EmptyMeansNoData(t *testing.T) {
	if rows := StatusRows(models.DeploymentStatus{}); rows != nil {
		t.Errorf("expected no rows for zero counts, got %+v", rows)
	}
	rows := StatusRows(models.DeploymentStatus{Failed: 2})
	if len(rows) != 4 || rows[1].Count != 2 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate("", time.UTC); got != NotAvailable {
		t.Errorf("FormatDate empty = %q", got)
	}
	if got := FormatDate("2026-02-03T04:05:06Z", time.UTC); got != "Feb 3, 2026 04:05:06" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDate("yesterday", time.UTC); got != "yesterday" {
		t.Errorf("FormatDate unparseable = %q", got)
	}
}

func TestNewAppRows(t *testing.T) {
	long := "This description is deliberately longer than sixty characters to be cut."
	rows := NewAppRows([]models.App{{ID: "1", DisplayName: "X", Description: long}}, time.UTC)
	if rows[0].Publisher != NotAvailable || rows[0].Size != NotAvailable {
		t.Errorf("unexpected fallbacks: %+v", rows[0])
	}
	if len([]rune(rows[0].Description)) != 63 {
		t.Errorf("description not truncated: %q", rows[0].Description)
	}
}

func TestAssignmentTarget(t *testing.T) {
	if got := AssignmentTarget(models.Assignment{Intent: "required"}); got != "All Users/Devices" {
		t.Errorf("AssignmentTarget = %q", got)
	}
}
