package web

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/crucial707/pfconsole/internal/apiclient"
	"github.com/crucial707/pfconsole/internal/directory"
	"github.com/crucial707/pfconsole/internal/ids"
	"github.com/crucial707/pfconsole/internal/models"
	"github.com/crucial707/pfconsole/internal/views"
)

// sessionCookie keys the directory session of a browser.
const sessionCookie = "pf_directory"

// directorySession returns the session of r, issuing a cookie for a new one.
func (s *Server) directorySession(w http.ResponseWriter, r *http.Request) *directory.Session {
	key := ""
	if c, err := r.Cookie(sessionCookie); err == nil && ids.Valid(c.Value) {
		key = c.Value
	}
	sess, newKey := s.sessions.Get(key)
	if newKey != key {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    newKey,
			Path:     "/directory",
			HttpOnly: true,
			Secure:   s.cfg.Env == "prod",
			SameSite: http.SameSiteLaxMode,
		})
	}
	return sess
}

// Overlay is the membership dialog mounted over the directory tab. Its
// close link unmounts it by returning to the tab.
type Overlay struct {
	Title    string
	GroupID  string
	Name     string
	Members  []models.Member
	Groups   []models.Group
	Users    []models.User
	Empty    string
	Error    string
	Notice   string
	CloseURL string
}

type directoryView struct {
	Page
	Tab        string
	Query      string
	Groups     []models.Group
	Users      []models.User
	CountLabel string
	Loaded     bool
	Overlay    *Overlay
}

func normalizeTab(tab string) string {
	if tab == directory.TabUsers {
		return directory.TabUsers
	}
	return directory.TabGroups
}

func tabURL(tab string) string {
	return "/directory?tab=" + tab
}

// loadTab fills v with the tab's list, loading it on first use of the
// session and filtering by v.Query.
func (s *Server) loadTab(r *http.Request, sess *directory.Session, v *directoryView) {
	switch v.Tab {
	case directory.TabUsers:
		users, err := sess.Users(r.Context(), s.api)
		if err != nil {
			logBackendError(r, "users.list", err)
			v.Error = "Failed to load users"
			return
		}
		v.Loaded = true
		v.Users = views.FilterUsers(users, v.Query)
		v.CountLabel = fmt.Sprintf("%d users", len(users))
	default:
		groups, err := sess.Groups(r.Context(), s.api)
		if err != nil {
			logBackendError(r, "groups.list", err)
			v.Error = "Failed to load groups"
			return
		}
		v.Loaded = true
		v.Groups = views.FilterGroups(groups, v.Query)
		v.CountLabel = fmt.Sprintf("%d groups", len(groups))
	}
}

func (s *Server) newDirectoryView(r *http.Request, tab string) directoryView {
	return directoryView{
		Page:  s.page(r, "Groups & Users", "directory"),
		Tab:   normalizeTab(tab),
		Query: strings.TrimSpace(r.URL.Query().Get("q")),
	}
}

// directoryPage renders the groups or users tab.
func (s *Server) directoryPage(w http.ResponseWriter, r *http.Request) {
	sess := s.directorySession(w, r)
	v := s.newDirectoryView(r, r.URL.Query().Get("tab"))
	switch r.URL.Query().Get("done") {
	case "created":
		v.Notice = "Group created"
	case "deleted":
		v.Notice = "Group deleted"
	}
	s.loadTab(r, sess, &v)
	s.render(w, r, http.StatusOK, "directory.html", v)
}

// directoryRefresh drops the loaded list of a tab so the next visit refetches it.
func (s *Server) directoryRefresh(w http.ResponseWriter, r *http.Request) {
	sess := s.directorySession(w, r)
	tab := normalizeTab(r.URL.Query().Get("tab"))
	sess.Invalidate(tab)
	redirect(w, r, tabURL(tab))
}

func membersURL(groupID, name string) string {
	return "/directory/groups/" + url.PathEscape(groupID) + "/members?name=" + url.QueryEscape(name)
}

// renderMembers mounts the members overlay of a group over the groups tab.
func (s *Server) renderMembers(w http.ResponseWriter, r *http.Request, sess *directory.Session, groupID, name string, ov *Overlay) {
	v := s.newDirectoryView(r, directory.TabGroups)
	v.Query = ""
	s.loadTab(r, sess, &v)

	ov.Title = "Members of " + name
	ov.GroupID = groupID
	ov.Name = name
	ov.Empty = "No members yet"
	ov.CloseURL = tabURL(directory.TabGroups)
	members, err := s.api.ListGroupMembers(r.Context(), groupID)
	if err != nil {
		logBackendError(r, "groups.members", err)
		ov.Error = joinErrors(ov.Error, "Failed to load members: "+apiclient.Message(err))
	} else {
		ov.Members = members
	}
	// Candidates for the add-member picker; without them the form takes a raw id.
	if users, err := sess.Users(r.Context(), s.api); err == nil {
		ov.Users = users
	}
	v.Overlay = ov
	s.render(w, r, http.StatusOK, "directory.html", v)
}

func joinErrors(a, b string) string {
	if a == "" {
		return b
	}
	return a + ". " + b
}

// groupMembers shows who belongs to a group.
func (s *Server) groupMembers(w http.ResponseWriter, r *http.Request) {
	sess := s.directorySession(w, r)
	ov := &Overlay{}
	switch r.URL.Query().Get("done") {
	case "added":
		ov.Notice = "Member added"
	case "removed":
		ov.Notice = "Member removed"
	}
	s.renderMembers(w, r, sess, chi.URLParam(r, "id"), r.URL.Query().Get("name"), ov)
}

// groupMemberAdd adds a user to a group and shows the updated members.
func (s *Server) groupMemberAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := s.directorySession(w, r)
	groupID := chi.URLParam(r, "id")
	name := r.FormValue("name")
	userID := strings.TrimSpace(r.FormValue("userId"))

	if userID == "" {
		s.renderMembers(w, r, sess, groupID, name, &Overlay{Error: "User is required"})
		return
	}
	if err := s.api.AddGroupMember(r.Context(), groupID, userID); err != nil {
		logBackendError(r, "groups.members.add", err)
		s.renderMembers(w, r, sess, groupID, name, &Overlay{Error: "Failed to add member: " + apiclient.Message(err)})
		return
	}
	redirect(w, r, membersURL(groupID, name)+"&done=added")
}

// groupMemberRemove removes a member and shows the updated members.
func (s *Server) groupMemberRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := s.directorySession(w, r)
	groupID := chi.URLParam(r, "id")
	name := r.FormValue("name")
	if err := s.api.RemoveGroupMember(r.Context(), groupID, chi.URLParam(r, "memberID")); err != nil {
		logBackendError(r, "groups.members.remove", err)
		s.renderMembers(w, r, sess, groupID, name, &Overlay{Error: "Failed to remove member: " + apiclient.Message(err)})
		return
	}
	redirect(w, r, membersURL(groupID, name)+"&done=removed")
}

// userGroups shows the groups a user belongs to, over the users tab.
func (s *Server) userGroups(w http.ResponseWriter, r *http.Request) {
	sess := s.directorySession(w, r)
	v := s.newDirectoryView(r, directory.TabUsers)
	v.Query = ""
	s.loadTab(r, sess, &v)

	name := r.URL.Query().Get("name")
	ov := &Overlay{
		Title:    "Groups for " + name,
		Name:     name,
		Empty:    "Not a member of any groups",
		CloseURL: tabURL(directory.TabUsers),
	}
	groups, err := s.api.ListUserGroups(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		logBackendError(r, "users.groups", err)
		ov.Error = "Failed to load groups: " + apiclient.Message(err)
	} else {
		ov.Groups = groups
	}
	v.Overlay = ov
	s.render(w, r, http.StatusOK, "directory.html", v)
}

// groupCreate creates a group and reloads the groups tab.
func (s *Server) groupCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	sess := s.directorySession(w, r)
	in := struct {
		DisplayName string `validate:"required,max=256"`
		Description string `validate:"max=1024"`
	}{
		DisplayName: strings.TrimSpace(r.FormValue("displayName")),
		Description: strings.TrimSpace(r.FormValue("description")),
	}
	fail := func(msg string) {
		v := s.newDirectoryView(r, directory.TabGroups)
		s.loadTab(r, sess, &v)
		v.Error = joinErrors(v.Error, msg)
		s.render(w, r, http.StatusOK, "directory.html", v)
	}
	if err := s.validate.Struct(in); err != nil {
		fail(validationMessage(err))
		return
	}
	if err := s.api.CreateGroup(r.Context(), in.DisplayName, in.Description); err != nil {
		logBackendError(r, "groups.create", err)
		fail("Failed to create group: " + apiclient.Message(err))
		return
	}
	sess.Invalidate(directory.TabGroups)
	redirect(w, r, tabURL(directory.TabGroups)+"&done=created")
}

func groupDeleteConfirmView(p Page, groupID, name string) confirmView {
	return confirmView{
		Page:     p,
		Question: "Are you sure you want to delete group: " + name + "?",
		Action:   "/directory/groups/" + url.PathEscape(groupID) + "/delete?name=" + url.QueryEscape(name),
		Cancel:   tabURL(directory.TabGroups),
		Button:   "Delete group",
	}
}

// groupDeleteConfirm asks before deleting a group.
func (s *Server) groupDeleteConfirm(w http.ResponseWriter, r *http.Request) {
	v := groupDeleteConfirmView(s.page(r, "Delete Group", "directory"), chi.URLParam(r, "id"), r.URL.Query().Get("name"))
	s.render(w, r, http.StatusOK, "confirm.html", v)
}

// groupDelete deletes a group after confirmation.
func (s *Server) groupDelete(w http.ResponseWriter, r *http.Request) {
	sess := s.directorySession(w, r)
	groupID := chi.URLParam(r, "id")
	if err := s.api.DeleteGroup(r.Context(), groupID); err != nil {
		logBackendError(r, "groups.delete", err)
		v := groupDeleteConfirmView(s.page(r, "Delete Group", "directory"), groupID, r.URL.Query().Get("name"))
		v.Error = "Failed to delete group: " + apiclient.Message(err)
		s.render(w, r, http.StatusOK, "confirm.html", v)
		return
	}
	sess.Invalidate(directory.TabGroups)
	redirect(w, r, tabURL(directory.TabGroups)+"&done=deleted")
}
