package entity

import "time"

// CollaboratorRole is the access level of a collaborator.
type CollaboratorRole string

const (
	CollaboratorRoleViewer CollaboratorRole = "viewer"
	CollaboratorRoleEditor CollaboratorRole = "editor"
)

// Collaborator grants a user access to a project they do not own.
type Collaborator struct {
	ID        string           `json:"id"`
	ProjectID string           `json:"project_id"`
	UserID    string           `json:"user_id"`
	Role      CollaboratorRole `json:"role"`
	CreatedAt time.Time        `json:"created_at"`

	// Profile is populated on reads that join profiles.
	Profile *Profile `json:"profile,omitempty"`
}
