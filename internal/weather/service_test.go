package weather

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	calls int
	city  string
	res   Result
	err   error
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) Current(ctx context.Context, q Query, apiKey string) (Result, error) {
	p.calls++
	p.city = q.City
	return p.res, p.err
}

type stubRecorder struct {
	kinds []ErrorKind
}

func (r *stubRecorder) ObserveFetch(provider string, kind ErrorKind, seconds float64) {
	r.kinds = append(r.kinds, kind)
}

func TestFetchMissingAPIKeyNeverCallsProvider(t *testing.T) {
	p := &stubProvider{}
	svc := NewService(p, "", nil)

	for _, city := range []string{"London", "", "   "} {
		_, err := svc.Fetch(context.Background(), city)
		require.Error(t, err)
		assert.Equal(t, MsgMissingAPIKey, err.Error())
		assert.True(t, IsKind(err, KindValidation))
	}
	assert.Zero(t, p.calls)
}

func TestFetchBlankCityNeverCallsProvider(t *testing.T) {
	p := &stubProvider{}
	svc := NewService(p, "key", nil)

	for _, city := range []string{"", " ", "\t\n "} {
		_, err := svc.Fetch(context.Background(), city)
		require.Error(t, err)
		assert.Equal(t, MsgEmptyCity, err.Error())
	}
	assert.Zero(t, p.calls)
}

func TestFetchTrimsCityAndRecords(t *testing.T) {
	p := &stubProvider{res: Result{TemperatureKelvin: 293.15, Description: "Clear sky", ConditionCode: 800}}
	rec := &stubRecorder{}
	svc := NewService(p, "key", rec)

	res, err := svc.Fetch(context.Background(), "  London  ")
	require.NoError(t, err)
	assert.Equal(t, "London", p.city)
	assert.Equal(t, 800, res.ConditionCode)
	assert.Equal(t, []ErrorKind{""}, rec.kinds)
}

func TestFetchWrapsForeignErrors(t *testing.T) {
	cause := errors.New("boom")
	p := &stubProvider{err: cause}
	rec := &stubRecorder{}
	svc := NewService(p, "key", rec)

	_, err := svc.Fetch(context.Background(), "London")
	var rep *ErrorReport
	require.ErrorAs(t, err, &rep)
	assert.Equal(t, "Request Error: boom", rep.Message)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []ErrorKind{KindTransport}, rec.kinds)
}

func TestFetchPassesReportsThrough(t *testing.T) {
	p := &stubProvider{err: StatusReport(404, MsgCityNotFound)}
	svc := NewService(p, "key", nil)

	_, err := svc.Fetch(context.Background(), "Atlantis")
	require.Error(t, err)
	assert.Equal(t, MsgCityNotFound, err.Error())
	assert.True(t, IsKind(err, KindHTTPStatus))
}
