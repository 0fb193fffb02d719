package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/crucial707/pfconsole/internal/models"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return New(srv.URL, srv.Client())
}

func TestNormalizeApps(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{"absent", ``, []string{}},
		{"null", `null`, []string{}},
		{"empty array", `[]`, []string{}},
		{"single object", `{"id":"a1","displayName":"Seven Zip"}`, []string{"a1"}},
		{"array", `[{"id":"a1"},{"id":"a2"},{"id":"a3"}]`, []string{"a1", "a2", "a3"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			apps, err := NormalizeApps(json.RawMessage(tc.raw))
			if err != nil {
				t.Fatalf("NormalizeApps: %v", err)
			}
			if apps == nil {
				t.Fatal("NormalizeApps returned nil slice")
			}
			if len(apps) != len(tc.want) {
				t.Fatalf("len = %d, want %d", len(apps), len(tc.want))
			}
			for i, id := range tc.want {
				if apps[i].ID != id {
					t.Errorf("apps[%d].ID = %q, want %q", i, apps[i].ID, id)
				}
			}
		})
	}
}

func TestNormalizeApps_Invalid(t *testing.T) {
	if _, err := NormalizeApps(json.RawMessage(`"nope"`)); err == nil {
		t.Fatal("expected error for string apps field")
	}
}

func TestListApps_SingleObject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/intune/apps" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"apps":{"id":"x","displayName":"Only"},"timestamp":"2026-01-02T10:00:00Z"}`))
	})
	list, err := c.ListApps(context.Background())
	if err != nil {
		t.Fatalf("ListApps: %v", err)
	}
	if len(list.Apps) != 1 || list.Apps[0].DisplayName != "Only" {
		t.Errorf("unexpected apps: %+v", list.Apps)
	}
	if list.SyncedAt != "2026-01-02T10:00:00Z" {
		t.Errorf("SyncedAt = %q", list.SyncedAt)
	}
}

func TestDo_AppErrorFromEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"error":"group not found"}`))
	})
	_, err := c.ListGroupMembers(context.Background(), "g1")
	if !IsAppError(err) {
		t.Fatalf("expected AppError, got %v", err)
	}
	if got := Message(err); got != "group not found" {
		t.Errorf("Message = %q", got)
	}
}

func TestDo_AppErrorWithoutMessageUsesFallback(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	})
	err := c.ClearLogs(context.Background())
	if got := Message(err); got != FallbackMessage {
		t.Errorf("Message = %q, want %q", got, FallbackMessage)
	}
}

func TestDo_NonJSONIsTransportError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>oops</html>`))
	})
	_, err := c.ListActivities(context.Background(), 100)
	if !IsTransportError(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestListActivities_KeepsZonelessTimestamps(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"activities":[` +
			`{"action_type":"app_upload","timestamp":"2026-01-15T10:30:00.1234567","success":true},` +
			`{"action_type":"app_upload","timestamp":"2026-01-15 10:30:00","success":true},` +
			`{"action_type":"app_upload","timestamp":"2026-01-15T10:30:00Z","success":true}]}`))
	})
	acts, err := c.ListActivities(context.Background(), 100)
	if err != nil {
		t.Fatalf("ListActivities: %v", err)
	}
	if len(acts) != 3 || acts[1].Timestamp != "2026-01-15 10:30:00" {
		t.Errorf("activities = %+v", acts)
	}
}

func TestDo_UnreachableIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := New(url, nil)
	_, err := c.ListPackages(context.Background())
	if !IsTransportError(err) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestDo_ErrorStatusWithEnvelope(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"error":"package missing"}`))
	})
	_, err := c.GetPackageDetails(context.Background(), "foo")
	if !IsAppError(err) || Message(err) != "package missing" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreatePackage_Failure(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/create-package" {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		w.Write([]byte(`{"Success":false,"Error":"disk full"}`))
	})
	_, err := c.CreatePackage(context.Background(), models.CreatePackageRequest{AppName: "App"})
	if !IsAppError(err) || Message(err) != "disk full" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCreatePackage_Success(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var in models.CreatePackageRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if in.InstallerType != "msi" || in.MSIFilename != "setup.msi" {
			t.Errorf("unexpected body: %+v", in)
		}
		w.Write([]byte(`{"Success":true,"PackageName":"Acme_Tool_1.0_x64_EN_01","PackagePath":"C:\\Out\\Acme"}`))
	})
	res, err := c.CreatePackage(context.Background(), models.CreatePackageRequest{InstallerType: "msi", MSIFilename: "setup.msi"})
	if err != nil {
		t.Fatalf("CreatePackage: %v", err)
	}
	if res.PackageName != "Acme_Tool_1.0_x64_EN_01" || res.PackagePath != `C:\Out\Acme` {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestListLogs_Query(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("level"); got != "Error" {
			t.Errorf("level = %q", got)
		}
		if got := r.URL.Query().Get("limit"); got != "50" {
			t.Errorf("limit = %q", got)
		}
		w.Write([]byte(`{"success":true,"logs":null}`))
	})
	logs, err := c.ListLogs(context.Background(), LogFilter{Level: "Error", Limit: 50})
	if err != nil {
		t.Fatalf("ListLogs: %v", err)
	}
	if logs == nil || len(logs) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", logs)
	}
}

func TestLogFilter_AllOmitsLevel(t *testing.T) {
	if q := (LogFilter{Level: "All", Limit: 100}).Query(); q != "limit=100" {
		t.Errorf("Query = %q", q)
	}
	if q := (LogFilter{}).Query(); q != "" {
		t.Errorf("Query = %q", q)
	}
}

func TestGetAppWithStatus_Concurrent(t *testing.T) {
	var inFlight, maxInFlight int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(50 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		switch r.URL.Path {
		case "/api/intune/apps/a1":
			w.Write([]byte(`{"success":true,"app":{"id":"a1","displayName":"Tool"},"assignments":[{"intent":"required","targetGroupId":"g1"}]}`))
		case "/api/intune/apps/a1/status":
			w.Write([]byte(`{"success":true,"status":{"installed":3,"failed":1,"pending":0,"notInstalled":2}}`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	})
	got, err := c.GetAppWithStatus(context.Background(), "a1")
	if err != nil {
		t.Fatalf("GetAppWithStatus: %v", err)
	}
	if got.App.DisplayName != "Tool" || len(got.Assignments) != 1 || got.Status.Installed != 3 {
		t.Errorf("unexpected result: %+v", got)
	}
	if atomic.LoadInt32(&maxInFlight) != 2 {
		t.Errorf("expected both requests in flight together, max = %d", maxInFlight)
	}
}

func TestGetAppWithStatus_EitherFailureFails(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/intune/apps/a1/status" {
			w.Write([]byte(`{"success":false,"error":"report unavailable"}`))
			return
		}
		w.Write([]byte(`{"success":true,"app":{"id":"a1"}}`))
	})
	_, err := c.GetAppWithStatus(context.Background(), "a1")
	if err == nil || Message(err) != "report unavailable" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAssignApp_Body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/intune/apps/a1/assign" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		var in models.AssignRequest
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.GroupID != "g9" || in.Intent != "available" {
			t.Errorf("unexpected body: %+v", in)
		}
		w.Write([]byte(`{"success":true}`))
	})
	if err := c.AssignApp(context.Background(), "a1", models.AssignRequest{GroupID: "g9", Intent: "available"}); err != nil {
		t.Fatalf("AssignApp: %v", err)
	}
}

func TestPathEscaping(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.EscapedPath() != "/api/packages/My%20App%2F1/details" {
			t.Errorf("escaped path = %q", r.URL.EscapedPath())
		}
		w.Write([]byte(`{"success":true,"package":{"name":"My App/1"}}`))
	})
	if _, err := c.GetPackageDetails(context.Background(), "My App/1"); err != nil {
		t.Fatalf("GetPackageDetails: %v", err)
	}
}

func TestDownloadLogs(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="factory.log"`)
		w.Write([]byte("line1\nline2\n"))
	})
	dl, err := c.DownloadLogs(context.Background())
	if err != nil {
		t.Fatalf("DownloadLogs: %v", err)
	}
	defer dl.Body.Close()
	b, _ := io.ReadAll(dl.Body)
	if string(b) != "line1\nline2\n" || dl.ContentDisposition == "" {
		t.Errorf("unexpected download: %q %q", b, dl.ContentDisposition)
	}
}

func TestMessage_PlainError(t *testing.T) {
	if got := Message(errors.New("boom")); got != "boom" {
		t.Errorf("Message = %q", got)
	}
	if Message(nil) != "" {
		t.Error("Message(nil) should be empty")
	}
}
