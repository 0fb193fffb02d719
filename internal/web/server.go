// Package web serves the Package Factory console: server-rendered pages for
// package creation, the package library, logs, activity history, the
// groups/users directory and the managed apps dashboard. Every page is built
// from backend API calls made through apiclient.
package web

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/pfconsole/internal/apiclient"
	"github.com/crucial707/pfconsole/internal/config"
	"github.com/crucial707/pfconsole/internal/directory"
	"github.com/crucial707/pfconsole/internal/middleware"
	"github.com/crucial707/pfconsole/internal/models"
)

// Backend is the subset of the API client the console uses.
type Backend interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, s models.Settings) error
	CreatePackage(ctx context.Context, req models.CreatePackageRequest) (models.CreatePackageResult, error)
	ListPackages(ctx context.Context) ([]models.PackageSummary, error)
	GetPackageDetails(ctx context.Context, name string) (models.PackageDetail, error)
	DeletePackage(ctx context.Context, name string) error

	ListActivities(ctx context.Context, limit int) ([]models.Activity, error)

	ListLogs(ctx context.Context, f apiclient.LogFilter) ([]models.LogEntry, error)
	ClearLogs(ctx context.Context) error
	DownloadLogs(ctx context.Context) (*apiclient.LogDownload, error)

	ListGroups(ctx context.Context) ([]models.Group, error)
	CreateGroup(ctx context.Context, displayName, description string) error
	DeleteGroup(ctx context.Context, groupID string) error
	ListGroupMembers(ctx context.Context, groupID string) ([]models.Member, error)
	AddGroupMember(ctx context.Context, groupID, userID string) error
	RemoveGroupMember(ctx context.Context, groupID, memberID string) error
	ListUsers(ctx context.Context) ([]models.User, error)
	ListUserGroups(ctx context.Context, userID string) ([]models.Group, error)

	ListApps(ctx context.Context) (apiclient.AppList, error)
	GetAppWithStatus(ctx context.Context, appID string) (apiclient.AppDetailWithStatus, error)
	AssignApp(ctx context.Context, appID string, req models.AssignRequest) error
}

// Server holds the console's dependencies. Handlers keep no state of their
// own beyond the directory sessions.
type Server struct {
	api      Backend
	cfg      config.Config
	loc      *time.Location
	sessions *directory.Store
	pages    *pageSet
	validate *validator.Validate
	now      func() time.Time
}

// New parses the embedded templates and returns a Server.
func New(cfg config.Config, api Backend, sessions *directory.Store) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{
		api:      api,
		cfg:      cfg,
		loc:      cfg.Location(),
		sessions: sessions,
		pages:    pages,
		validate: validator.New(),
		now:      time.Now,
	}, nil
}

// Routes builds the console router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(s.cfg.TLSEnabled()))

	// Health and metrics (no templates)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	limiter := middleware.FormRateLimiter(s.cfg.FormRatePerMinute)
	r.Group(func(r chi.Router) {
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Use(limiter.Middleware)

		r.Post("/theme", s.toggleTheme)

		// Package creation and library
		r.Get("/", s.packageForm)
		r.Post("/packages", s.createPackage)
		r.Get("/settings", s.settingsForm)
		r.Post("/settings", s.saveSettings)
		r.Get("/packages", s.packageLibrary)
		r.Get("/packages/{name}", s.packageDetails)
		r.Get("/packages/{name}/template", s.packageTemplate)
		r.Get("/packages/{name}/delete", s.packageDeleteConfirm)
		r.Post("/packages/{name}/delete", s.packageDelete)

		// Activity
		r.Get("/activity", s.activityTimeline)

		// Logs
		r.Get("/logs", s.logViewer)
		r.Get("/logs/clear", s.logsClearConfirm)
		r.Post("/logs/clear", s.logsClear)
		r.Get("/logs/download", s.logsDownload)

		// Groups & users
		r.Get("/directory", s.directoryPage)
		r.Post("/directory/refresh", s.directoryRefresh)
		r.Post("/directory/groups", s.groupCreate)
		r.Get("/directory/groups/{id}/members", s.groupMembers)
		r.Post("/directory/groups/{id}/members", s.groupMemberAdd)
		r.Post("/directory/groups/{id}/members/{memberID}/remove", s.groupMemberRemove)
		r.Get("/directory/groups/{id}/delete", s.groupDeleteConfirm)
		r.Post("/directory/groups/{id}/delete", s.groupDelete)
		r.Get("/directory/users/{id}/groups", s.userGroups)

		// Managed apps
		r.Get("/apps", s.appsList)
		r.Get("/apps/{id}", s.appDetails)
		r.Post("/apps/{id}/assign", s.appAssign)
	})

	return r
}
