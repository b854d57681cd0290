// Package autosave coalesces rapid form updates into debounced
// persistence writes.
package autosave

import (
	"context"
	"sync"
	"time"

	"prd-builder-api/internal/domain/entity"
	"prd-builder-api/internal/domain/repository"
	"prd-builder-api/pkg/logger"
	"prd-builder-api/pkg/metrics"
)

// Debouncer holds at most one pending write per project. Each Schedule
// replaces the pending payload and restarts that project's timer; when
// the timer fires the latest payload is written once. Writes are
// last-write-wins against the store: explicit saves keep the revision
// check, auto-saves do not.
type Debouncer struct {
	projects repository.ProjectRepository
	window   time.Duration

	mu      sync.Mutex
	pending map[string]*pendingSave
	closed  bool
}

type pendingSave struct {
	timer    *time.Timer
	formData entity.FormData
	userID   string
	// gen identifies the schedule that armed the current timer; a fire
	// from an earlier timer that lost the race against a reset carries a
	// stale gen and must not write.
	gen uint64
}

// NewDebouncer creates a debouncer with the given coalescing window.
func NewDebouncer(projects repository.ProjectRepository, window time.Duration) *Debouncer {
	if window <= 0 {
		window = 5 * time.Second
	}
	return &Debouncer{
		projects: projects,
		window:   window,
		pending:  make(map[string]*pendingSave),
	}
}

// Schedule queues formData for projectID. A pending save for the same
// project is replaced and its timer reset, so only the last payload
// inside a window is written.
func (d *Debouncer) Schedule(projectID, userID string, formData entity.FormData) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	if p, ok := d.pending[projectID]; ok {
		p.formData = formData
		p.userID = userID
		p.gen++
		gen := p.gen
		// Stop rather than Reset: a timer that already fired and is
		// waiting on the mutex would otherwise write the new payload
		// before its window. The stale fire bails on the gen check.
		p.timer.Stop()
		p.timer = time.AfterFunc(d.window, func() {
			d.fire(projectID, gen)
		})
		return
	}

	p := &pendingSave{formData: formData, userID: userID, gen: 1}
	p.timer = time.AfterFunc(d.window, func() {
		d.fire(projectID, 1)
	})
	d.pending[projectID] = p
	metrics.AutosavePending.Set(float64(len(d.pending)))
}

// fire writes the payload for projectID if gen still identifies the
// live timer, and clears the entry.
func (d *Debouncer) fire(projectID string, gen uint64) {
	d.mu.Lock()
	p, ok := d.pending[projectID]
	if !ok || p.gen != gen {
		d.mu.Unlock()
		return
	}
	delete(d.pending, projectID)
	metrics.AutosavePending.Set(float64(len(d.pending)))
	d.mu.Unlock()

	d.write(projectID, p)
}

func (d *Debouncer) write(projectID string, p *pendingSave) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	ctx = logger.WithContext(ctx, logger.ProjectIDKey, projectID)
	if p.userID != "" {
		ctx = logger.WithContext(ctx, logger.UserIDKey, p.userID)
	}

	if err := d.projects.UpdateFormData(ctx, projectID, p.formData); err != nil {
		metrics.AutosaveWritesTotal.WithLabelValues("error").Inc()
		logger.Error(ctx, "auto-save write failed", err)
		return
	}

	metrics.AutosaveWritesTotal.WithLabelValues("ok").Inc()
	logger.Debug(ctx, "auto-save written")
}

// Flush stops all timers and writes every pending payload synchronously.
// Called on shutdown; the debouncer accepts no new work afterwards.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.closed = true
	remaining := d.pending
	d.pending = make(map[string]*pendingSave)
	metrics.AutosavePending.Set(0)
	d.mu.Unlock()

	for projectID, p := range remaining {
		p.timer.Stop()
		d.write(projectID, p)
	}
}

// PendingCount reports how many projects have a queued save.
func (d *Debouncer) PendingCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}
