package entity

import "time"

// Activity is one audit-trail entry for a project. Writes are best
// effort: a failed insert must never fail the request that caused it.
type Activity struct {
	ID        string         `json:"id"`
	ProjectID string         `json:"project_id"`
	UserID    string         `json:"user_id,omitempty"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
