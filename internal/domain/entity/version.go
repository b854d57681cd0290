package entity

import "time"

// ChangeType records why a version snapshot was taken.
type ChangeType string

const (
	ChangeTypeManualSave ChangeType = "manual_save"
	ChangeTypeAutoSave   ChangeType = "auto_save"
	ChangeTypePreRestore ChangeType = "pre_restore"
	ChangeTypeRestore    ChangeType = "restore"
)

// ProjectVersion is an immutable snapshot of a project's form data.
// Versions are only ever inserted and read, never mutated.
type ProjectVersion struct {
	ID         string     `json:"id"`
	ProjectID  string     `json:"project_id"`
	FormData   FormData   `json:"form_data,omitempty"`
	ChangeType ChangeType `json:"change_type"`
	CreatedBy  string     `json:"created_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
