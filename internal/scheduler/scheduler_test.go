package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-app/internal/display"
)

type fakeRefresher struct {
	city   string
	err    error
	called []string
}

func (f *fakeRefresher) LastCity() string { return f.city }

func (f *fakeRefresher) FetchWait(ctx context.Context, city string) (display.Outcome, error) {
	f.called = append(f.called, city)
	if f.err != nil {
		return display.Outcome{}, f.err
	}
	return display.Outcome{City: city}, nil
}

func TestRunOnceWithoutCityDoesNothing(t *testing.T) {
	f := &fakeRefresher{}
	s := New(time.Minute, time.Second, f)
	s.RunOnce()
	assert.Empty(t, f.called)
}

func TestRunOnceRefreshesDisplayedCity(t *testing.T) {
	f := &fakeRefresher{city: "Oslo"}
	s := New(time.Minute, time.Second, f)

	var got []display.Outcome
	s.OnRefresh = func(o display.Outcome) { got = append(got, o) }
	s.RunOnce()

	assert.Equal(t, []string{"Oslo"}, f.called)
	require.Len(t, got, 1)
	assert.Equal(t, "Oslo", got[0].City)
}

func TestRunOnceSkipsWhenBusy(t *testing.T) {
	f := &fakeRefresher{city: "Oslo", err: display.ErrBusy}
	s := New(time.Minute, time.Second, f)

	called := false
	s.OnRefresh = func(display.Outcome) { called = true }
	s.RunOnce()
	assert.False(t, called)
}

func TestStartDisabled(t *testing.T) {
	s := New(0, time.Second, &fakeRefresher{})
	require.NoError(t, s.Start())
	s.Stop()
}
