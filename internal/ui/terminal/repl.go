// Package terminal is the interactive line-oriented surface of the app.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/i474232898/weather-app/internal/display"
)

// Controller is the subset of display.Controller the REPL drives.
type Controller interface {
	Fetch(ctx context.Context, city string) (<-chan display.Outcome, error)
	Toggle() (display.View, error)
	View() display.View
}

// REPL reads commands from in and renders the display state to out.
type REPL struct {
	in      io.Reader
	out     io.Writer
	ctrl    Controller
	animate bool

	mu sync.Mutex // guards out
}

// New creates a REPL. animate enables the spinner animation and should only
// be set when out is a terminal.
func New(in io.Reader, out io.Writer, ctrl Controller, animate bool) *REPL {
	return &REPL{in: in, out: out, ctrl: ctrl, animate: animate}
}

// Run processes input until EOF, a quit command, or ctx is done.
func (r *REPL) Run(ctx context.Context) error {
	r.printf("%s\n%s\n\n", titleStyle.Render("Weather"), hintStyle.Render("Type a city name, /unit to switch units, /help for commands."))

	scanner := bufio.NewScanner(r.in)
	for {
		r.printf("%s ", r.prompt())
		if !scanner.Scan() {
			r.printf("\n")
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		// An empty line is an empty city, not a skipped prompt.
		line := strings.TrimSpace(scanner.Text())
		if done := r.handle(ctx, line); done {
			return nil
		}
	}
}

// handle dispatches a single line. Returns true when the user wants to quit.
func (r *REPL) handle(ctx context.Context, line string) bool {
	if !strings.HasPrefix(line, "/") {
		r.fetch(ctx, line)
		return false
	}

	parts := strings.SplitN(line, " ", 2)
	arg := ""
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch strings.ToLower(parts[0]) {
	case "/quit", "/exit", "/q":
		r.printf("Bye!\n")
		return true
	case "/help", "/h", "/?":
		r.printHelp()
	case "/unit", "/u":
		v, err := r.ctrl.Toggle()
		if err != nil {
			r.printf("%s\n", errorStyle.Render(err.Error()))
			return false
		}
		r.Render(v)
	case "/weather", "/w":
		r.fetch(ctx, arg)
	case "/show":
		r.Render(r.ctrl.View())
	default:
		r.printf("%s\n", hintStyle.Render("Unknown command "+parts[0]+"; try /help."))
	}
	return false
}

// fetch triggers a fetch and blocks with the spinner shown until it completes.
func (r *REPL) fetch(ctx context.Context, city string) {
	ch, err := r.ctrl.Fetch(ctx, city)
	if errors.Is(err, display.ErrBusy) {
		r.printf("%s\n", hintStyle.Render("Still loading, please wait."))
		return
	}
	if err != nil {
		r.printf("%s\n", errorStyle.Render(err.Error()))
		return
	}

	sp := NewSpinner(r.out, "Loading weather…", r.animate)
	r.mu.Lock()
	sp.Start()
	o := <-ch
	sp.Stop()
	r.mu.Unlock()

	r.Render(o.View)
}

// Notify renders an outcome that arrived outside of user input, such as an
// auto-refresh.
func (r *REPL) Notify(o display.Outcome) {
	r.printf("\n%s\n", hintStyle.Render("Refreshed "+o.City+":"))
	r.Render(o.View)
	r.printf("%s ", r.prompt())
}

// Render draws v.
func (r *REPL) Render(v display.View) {
	r.printf("%s\n", RenderView(v))
}

// RenderView formats the three output regions and the unit control label.
func RenderView(v display.View) string {
	if v.Temperature == "" {
		return panelStyle.Render(hintStyle.Render("No weather yet") + "\n" + hintStyle.Render("["+v.SwitchLabel+"]"))
	}

	var lines []string
	if v.IsError {
		lines = append(lines, errorStyle.Render(v.Temperature))
	} else {
		lines = append(lines, temperatureStyle.Render(v.Temperature))
		if v.Emoji != "" {
			lines = append(lines, v.Emoji)
		}
		if v.Description != "" {
			lines = append(lines, descriptionStyle.Render(v.Description))
		}
	}
	lines = append(lines, hintStyle.Render("["+v.SwitchLabel+"]"))
	return panelStyle.Render(strings.Join(lines, "\n"))
}

func (r *REPL) prompt() string {
	return titleStyle.Render("city>")
}

func (r *REPL) printHelp() {
	r.printf(`Commands:
  <city>            fetch current weather for city
  /weather <city>   same as typing the city
  /unit             switch between °C and °F
  /show             show the current display
  /help             this help
  /quit             exit
`)
}

func (r *REPL) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}
