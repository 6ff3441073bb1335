package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle drawn while packing runs.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner renders an animated status line on stderr while a long stage
// runs. It stops on Stop or as soon as the parent context is cancelled,
// clearing its line either way so command output stays clean.
type Spinner struct {
	message string
	parent  context.Context
	cancel  context.CancelFunc
	done    chan struct{}
	stop    sync.Once
}

// newSpinnerWithContext creates a spinner bound to ctx. Start begins the
// animation; cancelling ctx stops it without a Stop call.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	ctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		parent:  ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
}

// Start begins the animation in a background goroutine.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.done)
	defer s.clearLine()

	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-s.parent.Done():
			return
		case <-ticker.C:
			frame := spinnerFrames[i%len(spinnerFrames)]
			fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
		}
	}
}

// Stop halts the animation and waits for the status line to be cleared.
// Stop is idempotent and safe after context cancellation.
func (s *Spinner) Stop() {
	s.stop.Do(s.cancel)
	<-s.done
}

// clearLine only runs from the spinner goroutine, after the ticker loop
// exits, so it never races a frame write.
func (s *Spinner) clearLine() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
