package core

import (
	"testing"
)

func TestStepTracker_Lifecycle(t *testing.T) {
	tr := NewStepTracker("Test Run")
	tr.Add("fetch", "Fetch latest release")
	tr.Add("extract", "Extract template")

	tr.Start("fetch", "contacting API")
	tr.Complete("fetch", "done in 1s")
	tr.Skip("extract", "local template")

	steps := tr.Snapshot()
	if len(steps) != 2 {
		t.Fatalf("snapshot has %d steps, want 2", len(steps))
	}
	if steps[0].Status != StatusDone || steps[0].Detail != "done in 1s" {
		t.Errorf("steps[0] = %+v", steps[0])
	}
	if steps[1].Status != StatusSkipped {
		t.Errorf("steps[1] = %+v", steps[1])
	}
}

func TestStepTracker_AddDuplicateIsNoop(t *testing.T) {
	tr := NewStepTracker("Test Run")
	tr.Add("fetch", "first label")
	tr.Add("fetch", "second label")

	steps := tr.Snapshot()
	if len(steps) != 1 {
		t.Fatalf("snapshot has %d steps, want 1", len(steps))
	}
	if steps[0].Label != "first label" {
		t.Errorf("Label = %q, want the first registration kept", steps[0].Label)
	}
}

func TestStepTracker_UpdateUnknownKeyAppends(t *testing.T) {
	tr := NewStepTracker("Test Run")
	tr.Complete("surprise", "came from nowhere")

	steps := tr.Snapshot()
	if len(steps) != 1 || steps[0].Key != "surprise" || steps[0].Status != StatusDone {
		t.Errorf("snapshot = %+v", steps)
	}
}

func TestStepTracker_EmptyDetailKeepsPrevious(t *testing.T) {
	tr := NewStepTracker("Test Run")
	tr.Add("git", "Initialize git repository")
	tr.Start("git", "running init")
	tr.Complete("git", "")

	steps := tr.Snapshot()
	if steps[0].Detail != "running init" {
		t.Errorf("Detail = %q, want previous detail retained", steps[0].Detail)
	}
}

func TestStepTracker_RefreshFires(t *testing.T) {
	tr := NewStepTracker("Test Run")
	fired := 0
	tr.AttachRefresh(func() { fired++ })

	tr.Add("fetch", "Fetch")
	tr.Start("fetch", "")
	tr.Complete("fetch", "")

	if fired != 3 {
		t.Errorf("refresh fired %d times, want 3", fired)
	}
}

func TestStepTracker_RefreshPanicSwallowed(t *testing.T) {
	tr := NewStepTracker("Test Run")
	tr.AttachRefresh(func() { panic("renderer crashed") })

	// Must not panic into the pipeline.
	tr.Add("fetch", "Fetch")
	tr.Complete("fetch", "ok")

	if got := tr.Snapshot()[0].Status; got != StatusDone {
		t.Errorf("Status = %v, want done despite renderer panics", got)
	}
}

func TestStepTracker_RefreshCanSnapshot(t *testing.T) {
	tr := NewStepTracker("Test Run")
	tr.AttachRefresh(func() {
		// A renderer reads state from inside the callback; this must not
		// deadlock against the tracker's own lock.
		_ = tr.Snapshot()
	})
	tr.Add("fetch", "Fetch")
	tr.Complete("fetch", "ok")
}
