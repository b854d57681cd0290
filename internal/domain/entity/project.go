// Package entity defines the domain model.
package entity

import (
	"time"
)

// ProjectStatus is the soft lifecycle state of a project.
type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "draft"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusArchived   ProjectStatus = "archived"
)

// FormData is the whole document state, one entry per form section.
// Section values are arbitrary JSON trees; callers must treat missing
// sections as empty rather than erroring.
type FormData map[string]any

// Clone returns a deep copy of the form data.
func (f FormData) Clone() FormData {
	if f == nil {
		return FormData{}
	}
	out := make(FormData, len(f))
	for k, v := range f {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	default:
		return t
	}
}

// Project is one PRD document. The entire section tree lives in FormData
// as a single JSONB blob; Revision is an optimistic counter bumped on
// every write so explicit saves can detect stale bases.
type Project struct {
	ID        string        `json:"id"`
	OwnerID   string        `json:"owner_id"`
	Title     string        `json:"title"`
	Status    ProjectStatus `json:"status"`
	FormData  FormData      `json:"form_data"`
	Revision  int64         `json:"revision"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewProject creates a draft project.
func NewProject(ownerID, title string) *Project {
	if title == "" {
		title = "Untitled Project"
	}
	now := time.Now()
	return &Project{
		OwnerID:   ownerID,
		Title:     title,
		Status:    ProjectStatusDraft,
		FormData:  FormData{},
		Revision:  1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsEditable reports whether the project accepts content changes.
func (p *Project) IsEditable() bool {
	return p.Status == ProjectStatusDraft || p.Status == ProjectStatusInProgress
}

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s ProjectStatus) bool {
	switch s {
	case ProjectStatusDraft, ProjectStatusInProgress, ProjectStatusCompleted, ProjectStatusArchived:
		return true
	}
	return false
}
