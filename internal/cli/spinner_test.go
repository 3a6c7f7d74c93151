package cli

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerBasic(t *testing.T) {
	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Testing...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	if s.Cancelled() {
		t.Error("Stop should not count as cancellation")
	}
	if !bytes.Contains([]byte(out.String()), []byte("Testing...")) {
		t.Errorf("spinner output %q should contain the message", out.String())
	}
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, &syncBuffer{}, "Testing with context...")
	s.Start()

	cancel()
	time.Sleep(100 * time.Millisecond)

	if !s.Cancelled() {
		t.Error("Spinner should be cancelled after context cancellation")
	}
	s.Stop()
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &syncBuffer{}, "Testing idempotent stop...")
	s.Start()
	s.Stop()
	s.Stop()
	s.Stop()
}

func TestSpinnerHooks(t *testing.T) {
	ctx := context.Background()
	s := newSpinner(ctx, &syncBuffer{}, "Starting")

	s.OnStageStart(ctx, pipeline.StageEnrich, 12)
	if got := s.Message(); got != "Enriching 12 candidates" {
		t.Errorf("Message() = %q", got)
	}
	s.OnStageStart(ctx, "unknown", 1)
	if got := s.Message(); got != "Enriching 12 candidates" {
		t.Errorf("unknown stage should keep message, got %q", got)
	}

	s.OnItemFailure(ctx, pipeline.StageAggregate, "a/x", "rate_limited")
	s.OnItemFailure(ctx, pipeline.StageEnrich, "u/profile", "rate_limited")
	s.OnItemFailure(ctx, pipeline.StageEnrich, "v/profile", "not_found")
	f := s.Failures()
	if f["rate_limited"] != 2 || f["not_found"] != 1 {
		t.Errorf("Failures() = %v", f)
	}
}
