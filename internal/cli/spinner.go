package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/matzehuels/ecoscout/pkg/observability"
	"github.com/matzehuels/ecoscout/pkg/pipeline"
)

// Spinner is a progress indicator that follows pipeline stages. It
// implements observability.PipelineHooks so that the runner can update its
// message as stages start and finish.
type Spinner struct {
	observability.NoopPipelineHooks

	w       io.Writer
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stopped chan struct{}
	once    sync.Once
	frames  []string

	mu       sync.Mutex
	message  string
	width    int
	failures map[string]int // outcome -> count
}

// newSpinner creates a spinner that writes to w and stops when ctx is done.
func newSpinner(ctx context.Context, w io.Writer, message string) *Spinner {
	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:        w,
		message:  message,
		ctx:      spinnerCtx,
		cancel:   cancel,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
		frames:   []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		failures: make(map[string]int),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.done:
				return
			case <-ticker.C:
				s.mu.Lock()
				line := fmt.Sprintf("\r%s %s", styleIconSpinner.Render(s.frames[i%len(s.frames)]), StyleDim.Render(s.message))
				s.width = max(s.width, len(s.message)+4)
				fmt.Fprint(s.w, line)
				s.mu.Unlock()
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = msg
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Stop halts the animation and clears the line. It is idempotent.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.stopped
		s.cancel()
		s.clearLine()
	})
}

// Cancelled reports whether the spinner's context ended before Stop.
func (s *Spinner) Cancelled() bool {
	select {
	case <-s.done:
		return false
	default:
		return s.ctx.Err() != nil
	}
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", max(s.width, len(s.message)+4)))
}

// Failures returns absorbed per-item failures grouped by outcome.
func (s *Spinner) Failures() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.failures))
	for k, v := range s.failures {
		out[k] = v
	}
	return out
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

var stageMessages = map[string]string{
	pipeline.StageSelect:    "Selecting up to %d repositories",
	pipeline.StageAggregate: "Collecting contributors of %d repositories",
	pipeline.StageFilter:    "Checking languages of %d candidates",
	pipeline.StageEnrich:    "Enriching %d candidates",
}

func (s *Spinner) OnStageStart(_ context.Context, stage string, in int) {
	if format, ok := stageMessages[stage]; ok {
		s.SetMessage(fmt.Sprintf(format, in))
	}
}

func (s *Spinner) OnItemFailure(_ context.Context, _, _, outcome string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[outcome]++
}
