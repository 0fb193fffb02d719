package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/crucial707/pfconsole/internal/models"
)

type groupsResponse struct {
	envelope
	Groups []models.Group `json:"groups"`
}

type usersResponse struct {
	envelope
	Users []models.User `json:"users"`
}

type membersResponse struct {
	envelope
	Members []models.Member `json:"members"`
}

// ListGroups returns every directory group (GET /api/intune/groups).
func (c *Client) ListGroups(ctx context.Context) ([]models.Group, error) {
	var out groupsResponse
	if err := c.do(ctx, "groups.list", http.MethodGet, "/api/intune/groups", nil, &out); err != nil {
		return nil, err
	}
	if out.Groups == nil {
		out.Groups = []models.Group{}
	}
	return out.Groups, nil
}

// CreateGroup creates a directory group (POST /api/intune/groups).
func (c *Client) CreateGroup(ctx context.Context, displayName, description string) error {
	in := map[string]string{"displayName": displayName, "description": description}
	var out envelope
	return c.do(ctx, "groups.create", http.MethodPost, "/api/intune/groups", in, &out)
}

// DeleteGroup removes a directory group (DELETE /api/intune/groups/{id}).
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	var out envelope
	return c.do(ctx, "groups.delete", http.MethodDelete, "/api/intune/groups/"+url.PathEscape(groupID), nil, &out)
}

// ListGroupMembers returns the members of a group (GET /api/intune/groups/{id}/members).
func (c *Client) ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error) {
	var out membersResponse
	if err := c.do(ctx, "groups.members", http.MethodGet, "/api/intune/groups/"+url.PathEscape(groupID)+"/members", nil, &out); err != nil {
		return nil, err
	}
	if out.Members == nil {
		out.Members = []models.Member{}
	}
	return out.Members, nil
}

// AddGroupMember adds a user to a group (POST /api/intune/groups/{id}/members).
func (c *Client) AddGroupMember(ctx context.Context, groupID, userID string) error {
	in := map[string]string{"userId": userID}
	var out envelope
	return c.do(ctx, "groups.members.add", http.MethodPost, "/api/intune/groups/"+url.PathEscape(groupID)+"/members", in, &out)
}

// RemoveGroupMember removes a user from a group
// (DELETE /api/intune/groups/{id}/members/{memberId}).
func (c *Client) RemoveGroupMember(ctx context.Context, groupID, memberID string) error {
	var out envelope
	path := "/api/intune/groups/" + url.PathEscape(groupID) + "/members/" + url.PathEscape(memberID)
	return c.do(ctx, "groups.members.remove", http.MethodDelete, path, nil, &out)
}

// ListUsers returns every directory user (GET /api/intune/users).
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var out usersResponse
	if err := c.do(ctx, "users.list", http.MethodGet, "/api/intune/users", nil, &out); err != nil {
		return nil, err
	}
	if out.Users == nil {
		out.Users = []models.User{}
	}
	return out.Users, nil
}

// ListUserGroups returns the groups a user belongs to (GET /api/intune/users/{id}/groups).
func (c *Client) ListUserGroups(ctx context.Context, userID string) ([]models.Group, error) {
	var out groupsResponse
	if err := c.do(ctx, "users.groups", http.MethodGet, "/api/intune/users/"+url.PathEscape(userID)+"/groups", nil, &out); err != nil {
		return nil, err
	}
	if out.Groups == nil {
		out.Groups = []models.Group{}
	}
	return out.Groups, nil
}

type appsResponse struct {
	envelope
	Apps      json.RawMessage `json:"apps"`
	Timestamp string          `json:"timestamp"`
}

// AppList is the normalized result of GET /api/intune/apps.
type AppList struct {
	Apps []models.App
	// SyncedAt is the backend timestamp of the listing, verbatim.
	SyncedAt string
}

// ListApps returns the managed apps (GET /api/intune/apps).
func (c *Client) ListApps(ctx context.Context) (AppList, error) {
	var out appsResponse
	if err := c.do(ctx, "apps.list", http.MethodGet, "/api/intune/apps", nil, &out); err != nil {
		return AppList{}, err
	}
	apps, err := NormalizeApps(out.Apps)
	if err != nil {
		return AppList{}, &TransportError{Endpoint: "apps.list", Status: http.StatusOK, Err: err}
	}
	return AppList{Apps: apps, SyncedAt: out.Timestamp}, nil
}

// NormalizeApps decodes the apps field, which the backend sends as an array,
// as a bare object when there is exactly one app, or as null when there are
// none. The result is never nil.
func NormalizeApps(raw json.RawMessage) ([]models.App, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return []models.App{}, nil
	}
	switch raw[0] {
	case '[':
		var apps []models.App
		if err := json.Unmarshal(raw, &apps); err != nil {
			return nil, fmt.Errorf("decode apps: %w", err)
		}
		if apps == nil {
			apps = []models.App{}
		}
		return apps, nil
	case '{':
		var app models.App
		if err := json.Unmarshal(raw, &app); err != nil {
			return nil, fmt.Errorf("decode app: %w", err)
		}
		return []models.App{app}, nil
	default:
		return nil, fmt.Errorf("decode apps: unexpected value %.20s", raw)
	}
}

type appDetailResponse struct {
	envelope
	App         models.App          `json:"app"`
	Assignments []models.Assignment `json:"assignments"`
}

// AppDetail is an app with its assignments.
type AppDetail struct {
	App         models.App
	Assignments []models.Assignment
}

// GetApp returns one app and its assignments (GET /api/intune/apps/{id}).
func (c *Client) GetApp(ctx context.Context, appID string) (AppDetail, error) {
	var out appDetailResponse
	if err := c.do(ctx, "apps.get", http.MethodGet, "/api/intune/apps/"+url.PathEscape(appID), nil, &out); err != nil {
		return AppDetail{}, err
	}
	return AppDetail{App: out.App, Assignments: out.Assignments}, nil
}

type appStatusResponse struct {
	envelope
	Status models.DeploymentStatus `json:"status"`
}

// GetAppStatus returns the deployment status summary (GET /api/intune/apps/{id}/status).
func (c *Client) GetAppStatus(ctx context.Context, appID string) (models.DeploymentStatus, error) {
	var out appStatusResponse
	if err := c.do(ctx, "apps.status", http.MethodGet, "/api/intune/apps/"+url.PathEscape(appID)+"/status", nil, &out); err != nil {
		return models.DeploymentStatus{}, err
	}
	return out.Status, nil
}

// AppDetailWithStatus is the joined result of GetApp and GetAppStatus.
type AppDetailWithStatus struct {
	AppDetail
	Status models.DeploymentStatus
}

// GetAppWithStatus fetches app metadata and deployment status concurrently and
// returns once both have resolved. If either fails the first error is returned
// and no partial result is.
func (c *Client) GetAppWithStatus(ctx context.Context, appID string) (AppDetailWithStatus, error) {
	var (
		detail AppDetail
		status models.DeploymentStatus
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = c.GetApp(gctx, appID)
		return err
	})
	g.Go(func() error {
		var err error
		status, err = c.GetAppStatus(gctx, appID)
		return err
	})
	if err := g.Wait(); err != nil {
		return AppDetailWithStatus{}, err
	}
	return AppDetailWithStatus{AppDetail: detail, Status: status}, nil
}

// AssignApp creates an assignment (POST /api/intune/apps/{id}/assign).
func (c *Client) AssignApp(ctx context.Context, appID string, req models.AssignRequest) error {
	var out envelope
	return c.do(ctx, "apps.assign", http.MethodPost, "/api/intune/apps/"+url.PathEscape(appID)+"/assign", req, &out)
}
