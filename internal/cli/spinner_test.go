package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStop(t *testing.T) {
	s := newSpinner("Rendering 3 charts")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()
	s.Stop()

	if s.Cancelled() {
		t.Error("a stopped spinner is not cancelled")
	}
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := newSpinner("idle")
	s.Stop()
}

func TestSpinnerCancelledByContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Watching")
	s.Start()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("spinner should be cancelled after the context times out")
	}
	s.Stop()
}

func TestSpinnerSetMessage(t *testing.T) {
	s := newSpinner("Rendering 1/10")
	s.SetMessage("Done")
	if len(s.message) != len("Rendering 1/10") {
		t.Errorf("message %q should be padded to clear the previous text", s.message)
	}
	s.StopWithSuccess("Rendered 10 charts")
}
