package apiclient

import (
	"context"
	"net/http"
	"strconv"

	"github.com/crucial707/pfconsole/internal/models"
)

type activityResponse struct {
	envelope
	Activities []models.Activity `json:"activities"`
}

// ListActivities returns up to limit history records, newest first as the
// backend orders them (GET /api/activity/history?limit=N).
func (c *Client) ListActivities(ctx context.Context, limit int) ([]models.Activity, error) {
	var out activityResponse
	if err := c.do(ctx, "activity.history", http.MethodGet, "/api/activity/history?limit="+strconv.Itoa(limit), nil, &out); err != nil {
		return nil, err
	}
	if out.Activities == nil {
		out.Activities = []models.Activity{}
	}
	return out.Activities, nil
}
