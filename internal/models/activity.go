package models

// Activity action types reported by the backend history feed.
const (
	ActionAppUpload    = "app_upload"
	ActionAppAssign    = "app_assign"
	ActionGroupCreate  = "group_create"
	ActionGroupDelete  = "group_delete"
	ActionMemberAdd    = "member_add"
	ActionMemberRemove = "member_remove"
	ActionServerStart  = "server_start"
)

// Activity represents one entry of the activity history.
type Activity struct {
	ActionType   string `json:"action_type"`
	Timestamp    string `json:"timestamp"`
	Success      bool   `json:"success"`
	ErrorMessage string `json:"error_message,omitempty"`
	AppName      string `json:"app_name,omitempty"`
	GroupName    string `json:"group_name,omitempty"`
	UserName     string `json:"user_name,omitempty"`
	Intent       string `json:"intent,omitempty"`
}
