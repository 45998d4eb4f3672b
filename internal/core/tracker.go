package core

import "sync"

// StepStatus is the lifecycle state of one tracked step.
type StepStatus string

const (
	StatusPending StepStatus = "pending"
	StatusRunning StepStatus = "running"
	StatusDone    StepStatus = "done"
	StatusError   StepStatus = "error"
	StatusSkipped StepStatus = "skipped"
)

// Reporter receives status updates from the pipeline at defined points.
// The pipeline never depends on a report succeeding; implementations must
// not return errors or panic into the caller.
type Reporter interface {
	Add(key, label string)
	Start(key, detail string)
	Complete(key, detail string)
	Skip(key, detail string)
	Error(key, detail string)
}

// NopReporter discards all updates. Used when no presentation is attached.
type NopReporter struct{}

func (NopReporter) Add(key, label string)       {}
func (NopReporter) Start(key, detail string)    {}
func (NopReporter) Complete(key, detail string) {}
func (NopReporter) Skip(key, detail string)     {}
func (NopReporter) Error(key, detail string)    {}

// Step is one entry in a StepTracker.
type Step struct {
	Key    string
	Label  string
	Status StepStatus
	Detail string
}

// StepTracker is a hierarchical status model the pipeline reports into and
// presentation renders from. Safe for use from multiple goroutines: the TUI
// reads snapshots while the pipeline updates.
type StepTracker struct {
	title string

	mu      sync.Mutex
	steps   []*Step
	refresh func() // optional; invoked after every change
}

// NewStepTracker creates a tracker with the given title.
func NewStepTracker(title string) *StepTracker {
	return &StepTracker{title: title}
}

// Title returns the tracker's display title.
func (t *StepTracker) Title() string { return t.title }

// AttachRefresh registers a callback invoked after every state change.
// Panics from the callback are swallowed; presentation failures must never
// reach pipeline logic.
func (t *StepTracker) AttachRefresh(cb func()) {
	t.mu.Lock()
	t.refresh = cb
	t.mu.Unlock()
}

// Add registers a step in pending state. Adding an existing key is a no-op.
func (t *StepTracker) Add(key, label string) {
	t.mu.Lock()
	defer t.unlockAndRefresh()
	for _, s := range t.steps {
		if s.Key == key {
			return
		}
	}
	t.steps = append(t.steps, &Step{Key: key, Label: label, Status: StatusPending})
}

// Start marks a step as running.
func (t *StepTracker) Start(key, detail string) { t.update(key, StatusRunning, detail) }

// Complete marks a step as done.
func (t *StepTracker) Complete(key, detail string) { t.update(key, StatusDone, detail) }

// Skip marks a step as skipped.
func (t *StepTracker) Skip(key, detail string) { t.update(key, StatusSkipped, detail) }

// Error marks a step as failed.
func (t *StepTracker) Error(key, detail string) { t.update(key, StatusError, detail) }

// update transitions a step, appending it first if it was never added.
func (t *StepTracker) update(key string, status StepStatus, detail string) {
	t.mu.Lock()
	defer t.unlockAndRefresh()
	for _, s := range t.steps {
		if s.Key == key {
			s.Status = status
			if detail != "" {
				s.Detail = detail
			}
			return
		}
	}
	t.steps = append(t.steps, &Step{Key: key, Label: key, Status: status, Detail: detail})
}

// Snapshot returns a copy of the current steps in display order.
func (t *StepTracker) Snapshot() []Step {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Step, len(t.steps))
	for i, s := range t.steps {
		out[i] = *s
	}
	return out
}

// unlockAndRefresh releases the lock, then fires the refresh callback
// outside of it so renderers can call Snapshot without deadlocking.
func (t *StepTracker) unlockAndRefresh() {
	cb := t.refresh
	t.mu.Unlock()
	if cb == nil {
		return
	}
	defer func() { _ = recover() }()
	cb()
}
