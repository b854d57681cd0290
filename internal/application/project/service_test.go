package project

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
	"prd-builder-api/internal/workflow/prompt"
	apperrors "prd-builder-api/pkg/errors"
)

// In-memory fakes. Only the behavior the service depends on is
// modelled: lookup by id, (nil, nil) on missing rows, conflict on a
// stale revision.

type fakeTx struct{}

func (fakeTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type memProjects struct {
	rows map[string]*entity.Project
	seq  int
}

func newMemProjects() *memProjects { return &memProjects{rows: map[string]*entity.Project{}} }

func (m *memProjects) Create(_ context.Context, p *entity.Project) error {
	m.seq++
	p.ID = fmt.Sprintf("proj-%d", m.seq)
	cp := *p
	cp.FormData = p.FormData.Clone()
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProjects) GetByID(_ context.Context, id string) (*entity.Project, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	cp.FormData = p.FormData.Clone()
	return &cp, nil
}

func (m *memProjects) ListAccessible(_ context.Context, _ string, page repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	items := make([]*entity.Project, 0, len(m.rows))
	for _, p := range m.rows {
		items = append(items, p)
	}
	return repository.NewPagedResult(items, int64(len(items)), page), nil
}

func (m *memProjects) Update(_ context.Context, p *entity.Project) error {
	stored, ok := m.rows[p.ID]
	if !ok || stored.Revision != p.Revision {
		return apperrors.New(apperrors.CodeConflict, "project was modified concurrently")
	}
	p.Revision++
	cp := *p
	cp.FormData = p.FormData.Clone()
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProjects) UpdateFormData(_ context.Context, id string, formData entity.FormData) error {
	stored, ok := m.rows[id]
	if !ok {
		return apperrors.ErrProjectNotFound
	}
	stored.FormData = formData.Clone()
	stored.Revision++
	return nil
}

func (m *memProjects) Delete(_ context.Context, id string) error {
	delete(m.rows, id)
	return nil
}

type memVersions struct {
	rows []*entity.ProjectVersion
	seq  int
}

func (m *memVersions) Create(_ context.Context, v *entity.ProjectVersion) error {
	m.seq++
	v.ID = fmt.Sprintf("ver-%d", m.seq)
	cp := *v
	cp.FormData = v.FormData.Clone()
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memVersions) GetByID(_ context.Context, id string) (*entity.ProjectVersion, error) {
	for _, v := range m.rows {
		if v.ID == id {
			cp := *v
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memVersions) ListByProject(_ context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.ProjectVersion], error) {
	var items []*entity.ProjectVersion
	for _, v := range m.rows {
		if v.ProjectID == projectID {
			items = append(items, v)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), page), nil
}

type memCollabs struct {
	rows []*entity.Collaborator
	seq  int
}

func (m *memCollabs) Create(_ context.Context, c *entity.Collaborator) error {
	for _, existing := range m.rows {
		if existing.ProjectID == c.ProjectID && existing.UserID == c.UserID {
			return apperrors.New(apperrors.CodeConflict, "user is already a collaborator")
		}
	}
	m.seq++
	c.ID = fmt.Sprintf("collab-%d", m.seq)
	cp := *c
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memCollabs) ListByProject(_ context.Context, projectID string) ([]*entity.Collaborator, error) {
	var out []*entity.Collaborator
	for _, c := range m.rows {
		if c.ProjectID == projectID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memCollabs) GetByProjectAndUser(_ context.Context, projectID, userID string) (*entity.Collaborator, error) {
	for _, c := range m.rows {
		if c.ProjectID == projectID && c.UserID == userID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memCollabs) Delete(_ context.Context, id string) error {
	for i, c := range m.rows {
		if c.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type memComments struct {
	rows []*entity.Comment
	seq  int
}

func (m *memComments) Create(_ context.Context, c *entity.Comment) error {
	m.seq++
	c.ID = fmt.Sprintf("comment-%d", m.seq)
	cp := *c
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memComments) GetByID(_ context.Context, id string) (*entity.Comment, error) {
	for _, c := range m.rows {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *memComments) ListByProject(_ context.Context, projectID, fieldPath string) ([]*entity.Comment, error) {
	var out []*entity.Comment
	for _, c := range m.rows {
		if c.ProjectID == projectID && (fieldPath == "" || c.FieldPath == fieldPath) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) Update(_ context.Context, id string, content *string, resolved *bool) error {
	for _, c := range m.rows {
		if c.ID == id {
			if content != nil {
				c.Content = *content
			}
			if resolved != nil {
				c.Resolved = *resolved
			}
		}
	}
	return nil
}

func (m *memComments) Delete(_ context.Context, id string) error {
	for i, c := range m.rows {
		if c.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type memActivity struct {
	rows []*entity.Activity
	fail bool
}

func (m *memActivity) Create(_ context.Context, a *entity.Activity) error {
	if m.fail {
		return errors.New("connection refused")
	}
	cp := *a
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memActivity) ListByProject(_ context.Context, projectID string, page repository.Pagination) (*repository.PagedResult[*entity.Activity], error) {
	var items []*entity.Activity
	for _, a := range m.rows {
		if a.ProjectID == projectID {
			items = append(items, a)
		}
	}
	return repository.NewPagedResult(items, int64(len(items)), page), nil
}

type memProfiles struct {
	rows map[string]*entity.Profile // by id
}

func (m *memProfiles) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	if p, ok := m.rows[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *memProfiles) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	for _, p := range m.rows {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

type fixture struct {
	svc      *Service
	projects *memProjects
	versions *memVersions
	activity *memActivity
}

func newFixture() *fixture {
	projects := newMemProjects()
	versions := &memVersions{}
	activity := &memActivity{}
	profiles := &memProfiles{rows: map[string]*entity.Profile{
		"u2": {ID: "u2", Email: "editor@example.com", FullName: "Eddie Editor"},
	}}
	svc := NewService(fakeTx{}, projects, versions, &memCollabs{}, &memComments{},
		activity, profiles, prompt.NewRegistry())
	return &fixture{svc: svc, projects: projects, versions: versions, activity: activity}
}

func TestCreateAndGet(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "My PRD")
	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusDraft, created.Status)
	assert.EqualValues(t, 1, created.Revision)

	got, err := f.svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	assert.Equal(t, "My PRD", got.Title)
}

func TestGetHidesProjectFromStrangers(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Private")
	require.NoError(t, err)

	_, err = f.svc.Get(ctx, "stranger", created.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProjectNotFound, apperrors.AsAppError(err).Code)
}

func TestUpdateStaleRevisionConflicts(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	// First writer wins.
	_, err = f.svc.Update(ctx, "u1", created.ID, UpdateInput{
		FormData: entity.FormData{"appName": "A"},
		Revision: created.Revision,
	})
	require.NoError(t, err)

	// Second writer still holds the old revision.
	_, err = f.svc.Update(ctx, "u1", created.ID, UpdateInput{
		FormData: entity.FormData{"appName": "B"},
		Revision: created.Revision,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestRestoreSnapshotsAndOverwrites(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	// v1 holds the original content.
	_, err = f.svc.Update(ctx, "u1", created.ID, UpdateInput{
		FormData: entity.FormData{"appName": "original"},
		Revision: created.Revision,
	})
	require.NoError(t, err)
	v1, err := f.svc.SaveVersion(ctx, "u1", created.ID)
	require.NoError(t, err)

	// Drift past it.
	current, err := f.svc.Get(ctx, "u1", created.ID)
	require.NoError(t, err)
	_, err = f.svc.Update(ctx, "u1", created.ID, UpdateInput{
		FormData: entity.FormData{"appName": "drifted"},
		Revision: current.Revision,
	})
	require.NoError(t, err)

	restored, err := f.svc.Restore(ctx, "u1", created.ID, v1.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", restored.FormData["appName"])

	// manual_save + pre_restore + restore.
	types := map[entity.ChangeType]int{}
	for _, v := range f.versions.rows {
		types[v.ChangeType]++
	}
	assert.Equal(t, 1, types[entity.ChangeTypeManualSave])
	assert.Equal(t, 1, types[entity.ChangeTypePreRestore])
	assert.Equal(t, 1, types[entity.ChangeTypeRestore])

	// The pre_restore snapshot preserves the drifted content.
	for _, v := range f.versions.rows {
		if v.ChangeType == entity.ChangeTypePreRestore {
			assert.Equal(t, "drifted", v.FormData["appName"])
		}
	}
}

func TestRestoreRejectsForeignVersion(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p1, err := f.svc.Create(ctx, "u1", "One")
	require.NoError(t, err)
	p2, err := f.svc.Create(ctx, "u1", "Two")
	require.NoError(t, err)

	v, err := f.svc.SaveVersion(ctx, "u1", p1.ID)
	require.NoError(t, err)

	_, err = f.svc.Restore(ctx, "u1", p2.ID, v.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeVersionNotFound, apperrors.AsAppError(err).Code)
}

func TestCollaboratorRoles(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	collab, err := f.svc.AddCollaboratorByEmail(ctx, "u1", created.ID, "editor@example.com", entity.CollaboratorRoleViewer)
	require.NoError(t, err)
	assert.Equal(t, "u2", collab.UserID)
	require.NotNil(t, collab.Profile)

	// Viewer can read but not write.
	_, err = f.svc.Get(ctx, "u2", created.ID)
	require.NoError(t, err)

	_, err = f.svc.Update(ctx, "u2", created.ID, UpdateInput{
		FormData: entity.FormData{"appName": "nope"},
		Revision: 1,
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.AsAppError(err).Code)

	// Duplicate add conflicts.
	_, err = f.svc.AddCollaboratorByEmail(ctx, "u1", created.ID, "editor@example.com", entity.CollaboratorRoleEditor)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsAppError(err).Code)
}

func TestAddCollaboratorUnknownEmail(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	_, err = f.svc.AddCollaboratorByEmail(ctx, "u1", created.ID, "ghost@example.com", entity.CollaboratorRoleViewer)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeProfileNotFound, apperrors.AsAppError(err).Code)
}

func TestActivityFailureDoesNotFailRequest(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	f.activity.fail = true

	// Mutations still succeed while activity writes fail.
	_, err = f.svc.Update(ctx, "u1", created.ID, UpdateInput{
		FormData: entity.FormData{"appName": "still works"},
		Revision: created.Revision,
	})
	require.NoError(t, err)

	// The explicit log endpoint reports the soft failure.
	logged, reason := f.svc.LogActivity(ctx, "u1", created.ID, "viewed", nil)
	assert.False(t, logged)
	assert.NotEmpty(t, reason)
}

func TestMergeGenerationPersistsBoundKeys(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	result := map[string]any{
		"mustHave": []any{"login"},
		"ignored":  "unbound",
	}
	updated, count, err := f.svc.MergeGeneration(ctx, "u1", created.ID, "generate-mvp-features", result)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	fp := updated.FormData["featurePriority"].(map[string]any)
	assert.Equal(t, []any{"login"}, fp["mustHave"])
	assert.NotContains(t, updated.FormData, "ignored")

	// Empty result does not touch the store.
	before := updated.Revision
	after, count, err := f.svc.MergeGeneration(ctx, "u1", created.ID, "generate-mvp-features", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
	assert.Equal(t, before, after.Revision)
}

func TestCommentLifecycle(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)
	_, err = f.svc.AddCollaboratorByEmail(ctx, "u1", created.ID, "editor@example.com", entity.CollaboratorRoleEditor)
	require.NoError(t, err)

	comment, err := f.svc.AddComment(ctx, "u2", created.ID, "appName", "is this final?", "")
	require.NoError(t, err)

	// Anyone with access may resolve.
	resolved := true
	require.NoError(t, f.svc.UpdateComment(ctx, "u1", created.ID, comment.ID, nil, &resolved))

	// Only the author may rewrite the content.
	text := "edited"
	err = f.svc.UpdateComment(ctx, "u1", created.ID, comment.ID, &text, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeForbidden, apperrors.AsAppError(err).Code)
	require.NoError(t, f.svc.UpdateComment(ctx, "u2", created.ID, comment.ID, &text, nil))

	comments, err := f.svc.ListComments(ctx, "u1", created.ID, "appName")
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "edited", comments[0].Content)
	assert.True(t, comments[0].Resolved)

	// The owner may delete someone else's comment.
	require.NoError(t, f.svc.DeleteComment(ctx, "u1", created.ID, comment.ID))
	comments, err = f.svc.ListComments(ctx, "u1", created.ID, "")
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestUpdateCommentUnknownID(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	created, err := f.svc.Create(ctx, "u1", "Doc")
	require.NoError(t, err)

	resolved := true
	err = f.svc.UpdateComment(ctx, "u1", created.ID, "comment-404", nil, &resolved)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCommentNotFound, apperrors.AsAppError(err).Code)
}
