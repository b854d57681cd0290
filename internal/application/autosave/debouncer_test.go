package autosave

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
)

// recordingRepo captures UpdateFormData calls; the other methods are
// not used by the debouncer.
type recordingRepo struct {
	mu     sync.Mutex
	writes []entity.FormData
}

func (r *recordingRepo) UpdateFormData(_ context.Context, _ string, formData entity.FormData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes = append(r.writes, formData.Clone())
	return nil
}

func (r *recordingRepo) snapshot() []entity.FormData {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]entity.FormData, len(r.writes))
	copy(out, r.writes)
	return out
}

func (r *recordingRepo) Create(context.Context, *entity.Project) error { return nil }
func (r *recordingRepo) GetByID(context.Context, string) (*entity.Project, error) {
	return nil, nil
}
func (r *recordingRepo) ListAccessible(context.Context, string, repository.Pagination) (*repository.PagedResult[*entity.Project], error) {
	return nil, nil
}
func (r *recordingRepo) Update(context.Context, *entity.Project) error { return nil }
func (r *recordingRepo) Delete(context.Context, string) error          { return nil }

func TestDebouncerCoalescesBurst(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDebouncer(repo, 50*time.Millisecond)

	for i := 0; i < 5; i++ {
		d.Schedule("p1", "u1", entity.FormData{"appName": string(rune('a' + i))})
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, time.Second, 10*time.Millisecond)

	writes := repo.snapshot()
	assert.Equal(t, "e", writes[0]["appName"], "only the last payload is written")
	assert.Equal(t, 0, d.PendingCount())
}

func TestDebouncerSeparateWindows(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDebouncer(repo, 30*time.Millisecond)

	d.Schedule("p1", "u1", entity.FormData{"appName": "first"})
	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	d.Schedule("p1", "u1", entity.FormData{"appName": "second"})
	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 2
	}, time.Second, 5*time.Millisecond)

	writes := repo.snapshot()
	assert.Equal(t, "first", writes[0]["appName"])
	assert.Equal(t, "second", writes[1]["appName"])
}

func TestDebouncerPerProjectIsolation(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDebouncer(repo, 40*time.Millisecond)

	d.Schedule("p1", "u1", entity.FormData{"appName": "one"})
	d.Schedule("p2", "u1", entity.FormData{"appName": "two"})
	assert.Equal(t, 2, d.PendingCount())

	require.Eventually(t, func() bool {
		return len(repo.snapshot()) == 2
	}, time.Second, 10*time.Millisecond)
}

func TestDebouncerFlushWritesPending(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDebouncer(repo, time.Hour)

	d.Schedule("p1", "u1", entity.FormData{"appName": "pending"})
	d.Flush()

	writes := repo.snapshot()
	require.Len(t, writes, 1)
	assert.Equal(t, "pending", writes[0]["appName"])

	// Closed debouncer drops further schedules.
	d.Schedule("p1", "u1", entity.FormData{"appName": "late"})
	assert.Equal(t, 0, d.PendingCount())
}

func TestDebouncerStaleTimerDoesNotWriteEarly(t *testing.T) {
	repo := &recordingRepo{}
	d := NewDebouncer(repo, time.Hour)

	d.Schedule("p1", "u1", entity.FormData{"appName": "first"})
	d.Schedule("p1", "u1", entity.FormData{"appName": "second"})

	// A timer armed by the first schedule that fires after the reset
	// carries a stale generation and must not write the new payload
	// before its window.
	d.fire("p1", 1)
	assert.Empty(t, repo.snapshot())
	assert.Equal(t, 1, d.PendingCount())

	// The live generation still writes the latest payload.
	d.fire("p1", 2)
	writes := repo.snapshot()
	require.Len(t, writes, 1)
	assert.Equal(t, "second", writes[0]["appName"])
	assert.Equal(t, 0, d.PendingCount())
}
