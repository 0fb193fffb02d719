package views

import (
	"strings"

	"github.com/crucial707/pfconsole/internal/models"
)

// FilterGroups keeps groups whose display name contains query, case-insensitively.
func FilterGroups(groups []models.Group, query string) []models.Group {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return groups
	}
	out := make([]models.Group, 0, len(groups))
	for _, g := range groups {
		if strings.Contains(strings.ToLower(g.DisplayName), q) {
			out = append(out, g)
		}
	}
	return out
}

// FilterUsers keeps users whose display name contains query, case-insensitively.
func FilterUsers(users []models.User, query string) []models.User {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return users
	}
	out := make([]models.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.DisplayName), q) {
			out = append(out, u)
		}
	}
	return out
}

// UserContact is the principal name, falling back to mail, then N/A.
func UserContact(u models.User) string {
	if u.UserPrincipalName != "" {
		return u.UserPrincipalName
	}
	return orDefault(u.Mail, NotAvailable)
}
