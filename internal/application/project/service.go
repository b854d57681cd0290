// Package project implements the document lifecycle: CRUD, versioning,
// collaboration, comments and the activity trail.
package project

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"

	"prd-builder-api/internal/application/generation"
	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
	"prd-builder-api/internal/workflow/prompt"
	apperrors "prd-builder-api/pkg/errors"
	"prd-builder-api/pkg/logger"
)

var tracer = otel.Tracer("project")

// Service coordinates the project repositories behind the HTTP surface.
type Service struct {
	transactor    repository.Transactor
	projects      repository.ProjectRepository
	versions      repository.VersionRepository
	collaborators repository.CollaboratorRepository
	comments      repository.CommentRepository
	activity      repository.ActivityRepository
	profiles      repository.ProfileRepository
	registry      *prompt.Registry
}

// NewService wires the project service.
func NewService(
	transactor repository.Transactor,
	projects repository.ProjectRepository,
	versions repository.VersionRepository,
	collaborators repository.CollaboratorRepository,
	comments repository.CommentRepository,
	activity repository.ActivityRepository,
	profiles repository.ProfileRepository,
	registry *prompt.Registry,
) *Service {
	return &Service{
		transactor:    transactor,
		projects:      projects,
		versions:      versions,
		collaborators: collaborators,
		comments:      comments,
		activity:      activity,
		profiles:      profiles,
		registry:      registry,
	}
}

// access levels derived from ownership and collaborator role.
type accessLevel int

const (
	accessNone accessLevel = iota
	accessView
	accessEdit
	accessOwner
)

// access resolves the caller's level on a project. With auth disabled
// (empty userID) every request gets owner-level access; this matches the
// deliberate local-dev bypass in the auth middleware.
func (s *Service) access(ctx context.Context, project *entity.Project, userID string) (accessLevel, error) {
	if userID == "" || project.OwnerID == userID {
		return accessOwner, nil
	}
	collab, err := s.collaborators.GetByProjectAndUser(ctx, project.ID, userID)
	if err != nil {
		return accessNone, err
	}
	if collab == nil {
		return accessNone, nil
	}
	if collab.Role == entity.CollaboratorRoleEditor {
		return accessEdit, nil
	}
	return accessView, nil
}

// load fetches a project and checks the caller reaches at least the
// wanted level.
func (s *Service) load(ctx context.Context, projectID, userID string, want accessLevel) (*entity.Project, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperrors.ErrProjectNotFound
	}

	level, err := s.access(ctx, project, userID)
	if err != nil {
		return nil, err
	}
	if level < want {
		if level == accessNone {
			// Hide the project's existence from strangers.
			return nil, apperrors.ErrProjectNotFound
		}
		return nil, apperrors.ErrForbidden
	}
	return project, nil
}

// Create makes a new draft project owned by userID.
func (s *Service) Create(ctx context.Context, userID, title string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "project.Service.Create")
	defer span.End()

	project := entity.NewProject(userID, title)
	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.logActivity(ctx, project.ID, userID, "project_created", map[string]any{"title": project.Title})
	return project, nil
}

// Get returns a project the caller can at least view.
func (s *Service) Get(ctx context.Context, userID, projectID string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "project.Service.Get")
	defer span.End()

	return s.load(ctx, projectID, userID, accessView)
}

// List returns projects the caller owns or collaborates on.
func (s *Service) List(ctx context.Context, userID string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	ctx, span := tracer.Start(ctx, "project.Service.List")
	defer span.End()

	return s.projects.ListAccessible(ctx, userID, page)
}

// UpdateInput is an explicit save. Nil fields keep current values;
// Revision is the base the caller edited from.
type UpdateInput struct {
	Title    *string
	Status   *entity.ProjectStatus
	FormData entity.FormData
	Revision int64
}

// Update applies an explicit save with the optimistic revision check.
func (s *Service) Update(ctx context.Context, userID, projectID string, in UpdateInput) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "project.Service.Update")
	defer span.End()

	project, err := s.load(ctx, projectID, userID, accessEdit)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		project.Title = *in.Title
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, apperrors.New(apperrors.CodeInvalidParam,
				fmt.Sprintf("invalid status %q", *in.Status))
		}
		project.Status = *in.Status
	}
	if in.FormData != nil {
		project.FormData = in.FormData
	}
	if in.Revision > 0 {
		project.Revision = in.Revision
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	s.logActivity(ctx, project.ID, userID, "project_updated", nil)
	return project, nil
}

// Delete removes a project. Owner only.
func (s *Service) Delete(ctx context.Context, userID, projectID string) error {
	ctx, span := tracer.Start(ctx, "project.Service.Delete")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessOwner); err != nil {
		return err
	}
	return s.projects.Delete(ctx, projectID)
}

// SaveVersion snapshots the current form data as a manual save.
func (s *Service) SaveVersion(ctx context.Context, userID, projectID string) (*entity.ProjectVersion, error) {
	ctx, span := tracer.Start(ctx, "project.Service.SaveVersion")
	defer span.End()

	project, err := s.load(ctx, projectID, userID, accessEdit)
	if err != nil {
		return nil, err
	}

	version := &entity.ProjectVersion{
		ProjectID:  project.ID,
		FormData:   project.FormData,
		ChangeType: entity.ChangeTypeManualSave,
		CreatedBy:  userID,
	}
	if err := s.versions.Create(ctx, version); err != nil {
		return nil, err
	}

	s.logActivity(ctx, project.ID, userID, "version_saved", map[string]any{"version_id": version.ID})
	return version, nil
}

// ListVersions returns snapshot metadata for a project.
func (s *Service) ListVersions(ctx context.Context, userID, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.ProjectVersion], error) {
	ctx, span := tracer.Start(ctx, "project.Service.ListVersions")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return nil, err
	}
	return s.versions.ListByProject(ctx, projectID, page)
}

// Restore rolls a project back to a snapshot. Inside one transaction:
// the current state is snapshotted as pre_restore, the project form data
// is overwritten from the version, and a restore marker row is written.
func (s *Service) Restore(ctx context.Context, userID, projectID, versionID string) (*entity.Project, error) {
	ctx, span := tracer.Start(ctx, "project.Service.Restore")
	defer span.End()

	project, err := s.load(ctx, projectID, userID, accessEdit)
	if err != nil {
		return nil, err
	}

	version, err := s.versions.GetByID(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if version == nil || version.ProjectID != projectID {
		return nil, apperrors.ErrVersionNotFound
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context) error {
		preRestore := &entity.ProjectVersion{
			ProjectID:  project.ID,
			FormData:   project.FormData,
			ChangeType: entity.ChangeTypePreRestore,
			CreatedBy:  userID,
		}
		if err := s.versions.Create(ctx, preRestore); err != nil {
			return err
		}

		project.FormData = version.FormData
		if err := s.projects.Update(ctx, project); err != nil {
			return err
		}

		marker := &entity.ProjectVersion{
			ProjectID:  project.ID,
			FormData:   version.FormData,
			ChangeType: entity.ChangeTypeRestore,
			CreatedBy:  userID,
		}
		return s.versions.Create(ctx, marker)
	})
	if err != nil {
		return nil, err
	}

	s.logActivity(ctx, project.ID, userID, "version_restored", map[string]any{"version_id": versionID})
	return project, nil
}

// AddCollaboratorByEmail grants a user access by their profile email.
// Owner only.
func (s *Service) AddCollaboratorByEmail(ctx context.Context, userID, projectID, email string, role entity.CollaboratorRole) (*entity.Collaborator, error) {
	ctx, span := tracer.Start(ctx, "project.Service.AddCollaboratorByEmail")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessOwner); err != nil {
		return nil, err
	}

	if role != entity.CollaboratorRoleViewer && role != entity.CollaboratorRoleEditor {
		return nil, apperrors.New(apperrors.CodeInvalidParam, fmt.Sprintf("invalid role %q", role))
	}

	profile, err := s.profiles.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.New(apperrors.CodeProfileNotFound,
			fmt.Sprintf("no user with email %s", email))
	}

	collab := &entity.Collaborator{
		ProjectID: projectID,
		UserID:    profile.ID,
		Role:      role,
	}
	if err := s.collaborators.Create(ctx, collab); err != nil {
		return nil, err
	}
	collab.Profile = profile

	s.logActivity(ctx, projectID, userID, "collaborator_added",
		map[string]any{"email": email, "role": string(role)})
	return collab, nil
}

// ListCollaborators returns project members with profiles.
func (s *Service) ListCollaborators(ctx context.Context, userID, projectID string) ([]*entity.Collaborator, error) {
	ctx, span := tracer.Start(ctx, "project.Service.ListCollaborators")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return nil, err
	}
	return s.collaborators.ListByProject(ctx, projectID)
}

// RemoveCollaborator revokes access. Owner only.
func (s *Service) RemoveCollaborator(ctx context.Context, userID, projectID, collaboratorID string) error {
	ctx, span := tracer.Start(ctx, "project.Service.RemoveCollaborator")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessOwner); err != nil {
		return err
	}
	return s.collaborators.Delete(ctx, collaboratorID)
}

// AddComment creates a comment, optionally anchored to a field and
// threaded under a parent.
func (s *Service) AddComment(ctx context.Context, userID, projectID, fieldPath, content, parentID string) (*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "project.Service.AddComment")
	defer span.End()

	if content == "" {
		return nil, apperrors.New(apperrors.CodeInvalidParam, "comment content is required")
	}
	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		ProjectID:       projectID,
		FieldPath:       fieldPath,
		Content:         content,
		AuthorID:        userID,
		ParentCommentID: parentID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.logActivity(ctx, projectID, userID, "comment_added",
		map[string]any{"field_path": fieldPath})
	return comment, nil
}

// ListComments returns comments, filtered to one field when fieldPath
// is non-empty.
func (s *Service) ListComments(ctx context.Context, userID, projectID, fieldPath string) ([]*entity.Comment, error) {
	ctx, span := tracer.Start(ctx, "project.Service.ListComments")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return nil, err
	}
	return s.comments.ListByProject(ctx, projectID, fieldPath)
}

// UpdateComment patches a comment. Anyone with access may resolve or
// unresolve; only the author may rewrite the content.
func (s *Service) UpdateComment(ctx context.Context, userID, projectID, commentID string, content *string, resolved *bool) error {
	ctx, span := tracer.Start(ctx, "project.Service.UpdateComment")
	defer span.End()

	if content == nil && resolved == nil {
		return apperrors.New(apperrors.CodeInvalidParam, "nothing to update")
	}
	if content != nil && *content == "" {
		return apperrors.New(apperrors.CodeInvalidParam, "comment content is required")
	}

	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.ProjectID != projectID {
		return apperrors.New(apperrors.CodeCommentNotFound, "comment not found")
	}

	if content != nil && userID != "" && comment.AuthorID != userID {
		return apperrors.ErrForbidden
	}

	return s.comments.Update(ctx, commentID, content, resolved)
}

// DeleteComment removes a comment. Author or project owner only.
func (s *Service) DeleteComment(ctx context.Context, userID, projectID, commentID string) error {
	ctx, span := tracer.Start(ctx, "project.Service.DeleteComment")
	defer span.End()

	project, err := s.load(ctx, projectID, userID, accessView)
	if err != nil {
		return err
	}

	comment, err := s.comments.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil || comment.ProjectID != projectID {
		return apperrors.New(apperrors.CodeCommentNotFound, "comment not found")
	}

	if userID != "" && comment.AuthorID != userID && project.OwnerID != userID {
		return apperrors.ErrForbidden
	}
	return s.comments.Delete(ctx, commentID)
}

// LogActivity records an audit entry on behalf of a request. It is best
// effort: a persistence failure yields logged=false and a reason instead
// of an error, and the parent request proceeds.
func (s *Service) LogActivity(ctx context.Context, userID, projectID, action string, details map[string]any) (bool, string) {
	ctx, span := tracer.Start(ctx, "project.Service.LogActivity")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return false, err.Error()
	}
	if err := s.writeActivity(ctx, projectID, userID, action, details); err != nil {
		return false, "activity write failed"
	}
	return true, ""
}

// ListActivity returns the audit trail newest first.
func (s *Service) ListActivity(ctx context.Context, userID, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.Activity], error) {
	ctx, span := tracer.Start(ctx, "project.Service.ListActivity")
	defer span.End()

	if _, err := s.load(ctx, projectID, userID, accessView); err != nil {
		return nil, err
	}
	return s.activity.ListByProject(ctx, projectID, page)
}

// MergeGeneration patches a parsed generation result into the project's
// form data through the template binding table and persists the result.
func (s *Service) MergeGeneration(ctx context.Context, userID, projectID, templateID string, result map[string]any) (*entity.Project, int, error) {
	ctx, span := tracer.Start(ctx, "project.Service.MergeGeneration")
	defer span.End()

	project, err := s.load(ctx, projectID, userID, accessEdit)
	if err != nil {
		return nil, 0, err
	}

	tmpl, err := s.registry.Get(templateID)
	if err != nil {
		return nil, 0, err
	}

	merged, count := generation.MergeResult(project.FormData, tmpl, result)
	if count == 0 {
		return project, 0, nil
	}

	project.FormData = merged
	if err := s.projects.Update(ctx, project); err != nil {
		return nil, 0, err
	}

	s.logActivity(ctx, projectID, userID, "sections_generated",
		map[string]any{"template": templateID, "merged_keys": count})
	return project, count, nil
}

// Autosave validates access for a debounced save. The actual write goes
// through the debouncer, not here.
func (s *Service) Autosave(ctx context.Context, userID, projectID string) error {
	ctx, span := tracer.Start(ctx, "project.Service.Autosave")
	defer span.End()

	_, err := s.load(ctx, projectID, userID, accessEdit)
	return err
}

// logActivity is the internal fire-and-forget variant used by mutating
// operations.
func (s *Service) logActivity(ctx context.Context, projectID, userID, action string, details map[string]any) {
	if err := s.writeActivity(ctx, projectID, userID, action, details); err != nil {
		logger.Warn(ctx, "activity log write failed",
			"project_id", projectID, "action", action, "error", err)
	}
}

func (s *Service) writeActivity(ctx context.Context, projectID, userID, action string, details map[string]any) error {
	return s.activity.Create(ctx, &entity.Activity{
		ProjectID: projectID,
		UserID:    userID,
		Action:    action,
		Details:   details,
	})
}
