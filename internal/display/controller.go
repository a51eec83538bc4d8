package display

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/i474232898/weather-app/internal/weather"
)

// ErrBusy is returned when an action arrives while a fetch is in flight.
var ErrBusy = errors.New("a weather fetch is already in progress")

// Fetcher runs the weather fetch workflow.
type Fetcher interface {
	Fetch(ctx context.Context, city string) (weather.Result, error)
}

// Outcome is delivered once per accepted fetch, after it has been applied
// to the display state.
type Outcome struct {
	City   string
	Result weather.Result
	Err    *weather.ErrorReport
	View   View
}

// Controller serializes user actions against the display state and keeps at
// most one fetch in flight.
type Controller struct {
	fetcher Fetcher
	busy    atomic.Bool

	mu    sync.RWMutex
	state *State
}

// NewController creates a Controller with a fresh State.
func NewController(fetcher Fetcher) *Controller {
	return &Controller{
		fetcher: fetcher,
		state:   NewState(),
	}
}

// Fetch starts a fetch for city on a worker goroutine. It fails with ErrBusy
// if another fetch has not finished yet. The returned channel yields exactly
// one Outcome and is then closed.
func (c *Controller) Fetch(ctx context.Context, city string) (<-chan Outcome, error) {
	if !c.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	c.mu.Lock()
	c.state.Busy = true
	c.mu.Unlock()

	city = strings.TrimSpace(city)
	out := make(chan Outcome, 1)

	go func() {
		o := Outcome{City: city}
		defer func() {
			if r := recover(); r != nil {
				log.Printf("ERROR: fetch for %q panicked: %v", city, r)
				o.Result = weather.Result{}
				o.Err = weather.NewErrorReport(weather.KindTransport, fmt.Sprintf("Request Error: %v", r), nil)
			}
			o.View = c.finish(o)
			out <- o
			close(out)
		}()

		res, err := c.fetcher.Fetch(ctx, city)
		o.Result = res
		o.Err = weather.AsReport(err)
	}()

	return out, nil
}

// FetchWait runs Fetch and blocks until its outcome is available.
func (c *Controller) FetchWait(ctx context.Context, city string) (Outcome, error) {
	ch, err := c.Fetch(ctx, city)
	if err != nil {
		return Outcome{}, err
	}
	return <-ch, nil
}

// finish applies o to the state and releases the busy flag.
func (c *Controller) finish(o Outcome) View {
	c.mu.Lock()
	if o.Err != nil {
		c.state.ApplyError(o.Err)
	} else {
		c.state.ApplyResult(o.City, o.Result)
	}
	c.state.Busy = false
	v := c.state.View()
	c.mu.Unlock()

	c.busy.Store(false)
	return v
}

// Toggle switches the display unit, converting the shown temperature without
// a new fetch. Like the fetch trigger, it is disabled while a fetch is in flight.
func (c *Controller) Toggle() (View, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Busy {
		return c.state.View(), ErrBusy
	}
	c.state.ToggleUnit()
	return c.state.View(), nil
}

// View returns the current display snapshot.
func (c *Controller) View() View {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.View()
}

// Busy reports whether a fetch is in flight.
func (c *Controller) Busy() bool {
	return c.busy.Load()
}

// LastCity returns the last city rendered successfully, or "".
func (c *Controller) LastCity() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.City
}
