package scheduler

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/weather-app/internal/display"
)

// Refresher is the part of display.Controller the scheduler drives.
type Refresher interface {
	LastCity() string
	FetchWait(ctx context.Context, city string) (display.Outcome, error)
}

// Scheduler periodically re-fetches the city currently on display.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Refresher
	interval  time.Duration
	timeout   time.Duration

	// OnRefresh is called with every completed refresh; may be nil.
	OnRefresh func(display.Outcome)
}

// New creates a new Scheduler. timeout bounds each refresh.
func New(interval, timeout time.Duration, target Refresher) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		target:    target,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start schedules the refresh job and starts the underlying scheduler.
// A non-positive interval leaves auto-refresh disabled.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		log.Println("scheduler: refresh interval not set; auto-refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).WaitForSchedule().SingletonMode().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce refreshes the displayed city if there is one and no fetch is in flight.
func (s *Scheduler) RunOnce() {
	city := s.target.LastCity()
	if city == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	o, err := s.target.FetchWait(ctx, city)
	if errors.Is(err, display.ErrBusy) {
		log.Printf("scheduler: skipping refresh of %q; fetch in progress", city)
		return
	}
	if err != nil {
		log.Printf("scheduler: refresh of %q failed: %v", city, err)
		return
	}
	if o.Err != nil {
		log.Printf("scheduler: refresh of %q reported: %s", city, o.Err.Message)
	}
	if s.OnRefresh != nil {
		s.OnRefresh(o)
	}
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
