package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/archexport/pkg/export"
)

// captureUI redirects status output for the duration of a test.
func captureUI(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := uiOut
	uiOut = &buf
	t.Cleanup(func() { uiOut = old })
	return &buf
}

func TestSpinnerBasic(t *testing.T) {
	buf := captureUI(t)

	s := newSpinner("Testing...")
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if !strings.Contains(buf.String(), "Testing...") {
		t.Errorf("spinner never drew its message: %q", buf.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinnerWithContext(ctx, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerWithTimeout(t *testing.T) {
	captureUI(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinnerWithContext(ctx, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context timeout")
	}
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	captureUI(t)
	s := newSpinner("Testing idempotent stop...")
	s.Start()

	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerStopWithMessages(t *testing.T) {
	buf := captureUI(t)

	s := newSpinner("Testing success...")
	s.Start()
	s.StopWithSuccess("Done!")

	s = newSpinner("Testing error...")
	s.Start()
	s.StopWithError("Failed!")

	out := buf.String()
	if !strings.Contains(out, iconSuccess+" Done!") || !strings.Contains(out, iconError+" Failed!") {
		t.Errorf("output = %q", out)
	}
}

func TestSpinnerProgress(t *testing.T) {
	captureUI(t)
	s := newSpinner("Exporting")

	report := s.Progress()
	report(export.Progress{Stage: export.StageProcessing, Percent: 25, Message: "Generating markdown"})
	if s.message != "Generating markdown (25%)" {
		t.Errorf("message = %q", s.message)
	}

	report(export.Progress{Stage: export.StageFinalizing, Percent: 90})
	if s.message != "finalizing (90%)" {
		t.Errorf("message = %q", s.message)
	}
	if s.width < len("Generating markdown (25%)") {
		t.Errorf("width = %d did not track the longest message", s.width)
	}
}
