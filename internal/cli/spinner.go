package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames is the braille animation cycle.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinnerInterval is the redraw period. Slower than a terminal refresh so
// the animation reads as motion, not flicker.
const spinnerInterval = 100 * time.Millisecond

// Spinner is a stderr activity indicator for operations with no measurable
// progress, like waiting for the simulation to settle. It runs until Stop
// or until its parent context is cancelled, whichever comes first.
type Spinner struct {
	parent context.Context
	run    context.Context
	cancel context.CancelFunc

	finished chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex // guards message and stderr writes
	message string
}

// newSpinner creates a spinner that only stops on Stop.
func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner tied to ctx; cancelling ctx
// erases the spinner line and ends the animation.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	runCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		parent:   ctx,
		run:      runCtx,
		cancel:   cancel,
		finished: make(chan struct{}),
		message:  message,
	}
}

// Start launches the animation goroutine.
func (s *Spinner) Start() {
	go func() {
		defer close(s.finished)
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		frame := 0
		for {
			select {
			case <-s.run.Done():
				s.eraseLine()
				return
			case <-ticker.C:
				s.drawFrame(spinnerFrames[frame%len(spinnerFrames)])
				frame++
			}
		}
	}()
}

// Stop ends the animation and waits for the line to be erased. Safe to
// call more than once, and safe after context cancellation.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		s.cancel()
		<-s.finished
	})
}

// StopWithSuccess stops the animation and prints a success line in its
// place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the animation and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// SetMessage swaps the text shown next to the animation.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// Cancelled reports whether the parent context ended the spinner, as
// opposed to a plain Stop.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) drawFrame(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
}

func (s *Spinner) eraseLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
