package terminal

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// SpinnerFrames are the animation frames of the busy indicator.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is the loading indicator shown while a fetch is in flight.
type Spinner struct {
	out     io.Writer
	message string
	style   lipgloss.Style
	animate bool

	mu      sync.Mutex
	current int
	done    chan struct{}
	stopped chan struct{}
}

// NewSpinner creates a spinner. When animate is false it prints the message
// once instead of redrawing a frame.
func NewSpinner(out io.Writer, message string, animate bool) *Spinner {
	return &Spinner{
		out:     out,
		message: message,
		animate: animate,
		style:   spinnerStyle,
	}
}

// Start shows the indicator.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done != nil {
		return
	}
	s.done = make(chan struct{})
	s.stopped = make(chan struct{})

	if !s.animate {
		fmt.Fprintf(s.out, "%s\n", s.style.Render(s.message))
		close(s.stopped)
		return
	}
	go s.run(s.done, s.stopped)
}

func (s *Spinner) run(done, stopped chan struct{}) {
	defer close(stopped)
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		s.draw()
		select {
		case <-done:
			return
		case <-ticker.C:
		}
	}
}

func (s *Spinner) draw() {
	s.mu.Lock()
	frame := SpinnerFrames[s.current%len(SpinnerFrames)]
	s.current++
	s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s %s", s.style.Render(frame), s.message)
}

// Stop hides the indicator and waits for the animation to end.
func (s *Spinner) Stop() {
	s.mu.Lock()
	done, stopped := s.done, s.stopped
	s.done, s.stopped = nil, nil
	s.mu.Unlock()
	if done == nil {
		return
	}

	close(done)
	<-stopped
	if s.animate {
		// Clear the line
		fmt.Fprint(s.out, "\r\033[K")
	}
}
