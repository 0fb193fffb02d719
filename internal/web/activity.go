package web

import (
	"net/http"

	"github.com/crucial707/pfconsole/internal/views"
)

type activityView struct {
	Page
	Groups []views.DateGroup
	Count  int
	Loaded bool
}

// activityTimeline renders the activity feed grouped by calendar date.
func (s *Server) activityTimeline(w http.ResponseWriter, r *http.Request) {
	v := activityView{Page: s.page(r, "Activity History", "activity")}

	acts, err := s.api.ListActivities(r.Context(), s.cfg.ActivityLimit)
	if err != nil {
		logBackendError(r, "activity.history", err)
		v.Error = "Failed to load activity history"
		s.render(w, r, http.StatusOK, "activity.html", v)
		return
	}
	v.Loaded = true
	v.Count = len(acts)
	v.Groups = views.GroupActivities(acts, s.loc)
	s.render(w, r, http.StatusOK, "activity.html", v)
}
