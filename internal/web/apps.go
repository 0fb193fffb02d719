package web

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/pfconsole/internal/apiclient"
	"github.com/crucial707/pfconsole/internal/models"
	"github.com/crucial707/pfconsole/internal/views"
)

type appsView struct {
	Page
	Query      string
	Rows       []views.AppRow
	Total      int
	CountLabel string
	SyncedAt   string
	Loaded     bool
}

// appsList renders the managed apps table, filtered by ?q=.
func (s *Server) appsList(w http.ResponseWriter, r *http.Request) {
	v := appsView{
		Page:  s.page(r, "Intune Apps", "apps"),
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	list, err := s.api.ListApps(r.Context())
	if err != nil {
		logBackendError(r, "apps.list", err)
		v.Error = "Failed to load apps: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "apps.html", v)
		return
	}
	shown := views.FilterApps(list.Apps, v.Query)
	v.Loaded = true
	v.Total = len(list.Apps)
	v.Rows = views.NewAppRows(shown, s.loc)
	v.CountLabel = views.AppCountLabel(len(shown), len(list.Apps))
	v.SyncedAt = views.FormatClock(list.SyncedAt, s.loc)
	s.render(w, r, http.StatusOK, "apps.html", v)
}

type assignmentRow struct {
	Intent string
	Target string
}

// assignForm is the inline assignment form of the details panel.
type assignForm struct {
	Groups  []models.Group
	GroupID string
	Intent  string
	Intents []string
	Error   string
}

type appDetailsView struct {
	Page
	App          models.App
	Loaded       bool
	Size         string
	Created      string
	Modified     string
	MinOS        string
	Architecture string
	Status       []views.StatusRow
	StatusTotal  int
	Assignments  []assignmentRow
	Assign       *assignForm
}

// loadAppDetails fetches the app and its deployment status and fills v.
func (s *Server) loadAppDetails(r *http.Request, appID string, v *appDetailsView) {
	d, err := s.api.GetAppWithStatus(r.Context(), appID)
	if err != nil {
		logBackendError(r, "apps.details", err)
		v.Error = "Failed to load app details: " + apiclient.Message(err)
		return
	}
	a := d.App
	v.Loaded = true
	v.App = a
	v.Title = a.DisplayName
	v.Size = views.FormatFileSize(a.Size)
	v.Created = views.FormatDate(a.CreatedDateTime, s.loc)
	v.Modified = views.FormatDate(a.LastModifiedDateTime, s.loc)
	v.MinOS = views.MinOSVersion(a.Applicability)
	v.Architecture = views.Architecture(a.Applicability)
	v.Status = views.StatusRows(d.Status)
	v.StatusTotal = d.Status.Total()
	for _, as := range d.Assignments {
		v.Assignments = append(v.Assignments, assignmentRow{Intent: as.Intent, Target: views.AssignmentTarget(as)})
	}
}

// openAssignForm attaches the assignment form with the group choices.
func (s *Server) openAssignForm(r *http.Request, v *appDetailsView, f *assignForm) {
	f.Intents = models.Intents
	if f.Intent == "" {
		f.Intent = models.IntentRequired
	}
	groups, err := s.api.ListGroups(r.Context())
	if err != nil {
		logBackendError(r, "groups.list", err)
		f.Error = joinErrors(f.Error, "Failed to load groups: "+apiclient.Message(err))
	}
	f.Groups = groups
	v.Assign = f
}

// appDetails renders the details panel of one app.
func (s *Server) appDetails(w http.ResponseWriter, r *http.Request) {
	appID := chi.URLParam(r, "id")
	v := appDetailsView{Page: s.page(r, "App Details", "apps")}
	s.loadAppDetails(r, appID, &v)
	if r.URL.Query().Get("assigned") == "1" {
		v.Notice = "Assignment created"
	}
	if v.Loaded && r.URL.Query().Get("assign") == "1" {
		s.openAssignForm(r, &v, &assignForm{})
	}
	s.render(w, r, http.StatusOK, "app_details.html", v)
}

// appAssign assigns the app to a group, then returns to its details panel.
func (s *Server) appAssign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	appID := chi.URLParam(r, "id")
	req := models.AssignRequest{
		GroupID: strings.TrimSpace(r.FormValue("groupId")),
		Intent:  strings.TrimSpace(r.FormValue("intent")),
	}
	if req.Intent == "" {
		req.Intent = models.IntentRequired
	}

	var msg string
	if err := s.validate.Struct(req); err != nil {
		if req.GroupID == "" {
			msg = "Group is required"
		} else {
			msg = "Invalid assignment intent"
		}
	} else if err := s.api.AssignApp(r.Context(), appID, req); err != nil {
		logBackendError(r, "apps.assign", err)
		msg = "Failed to create assignment: " + apiclient.Message(err)
	} else {
		redirect(w, r, "/apps/"+url.PathEscape(appID)+"?assigned=1")
		return
	}

	v := appDetailsView{Page: s.page(r, "App Details", "apps")}
	s.loadAppDetails(r, appID, &v)
	s.openAssignForm(r, &v, &assignForm{GroupID: req.GroupID, Intent: req.Intent, Error: msg})
	s.render(w, r, http.StatusOK, "app_details.html", v)
}
