package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-app/internal/display"
	"github.com/i474232898/weather-app/internal/weather"
)

type stubFetcher struct {
	res weather.Result
	err error
}

func (s stubFetcher) Fetch(ctx context.Context, city string) (weather.Result, error) {
	if strings.TrimSpace(city) == "" {
		return weather.Result{}, weather.NewErrorReport(weather.KindValidation, weather.MsgEmptyCity, nil)
	}
	return s.res, s.err
}

type busyController struct{}

func (busyController) FetchWait(ctx context.Context, city string) (display.Outcome, error) {
	return display.Outcome{}, display.ErrBusy
}
func (busyController) Toggle() (display.View, error) { return display.View{}, display.ErrBusy }
func (busyController) View() display.View { return display.View{Busy: true} }

type weatherBody struct {
	View  display.View         `json:"view"`
	Error *weather.ErrorReport `json:"error"`
}

func doJSON(t *testing.T, ctrl Controller, method, target string, out any) int {
	t.Helper()
	app := NewApp(ctrl, time.Second, prometheus.NewRegistry())
	resp, err := app.Test(httptest.NewRequest(method, target, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func TestGetWeatherSuccess(t *testing.T) {
	ctrl := display.NewController(stubFetcher{res: weather.Result{TemperatureKelvin: 293.15, Description: "Clear sky", ConditionCode: 800}})

	var body weatherBody
	code := doJSON(t, ctrl, http.MethodGet, "/api/v1/weather?city=London", &body)
	assert.Equal(t, http.StatusOK, code)
	assert.Nil(t, body.Error)
	assert.Equal(t, "20.0°C", body.View.Temperature)
	assert.Equal(t, weather.EmojiClear, body.View.Emoji)
	assert.Equal(t, "Clear sky", body.View.Description)
	assert.Equal(t, "London", body.View.City)
}

func TestGetWeatherBlankCity(t *testing.T) {
	ctrl := display.NewController(stubFetcher{})

	var body weatherBody
	code := doJSON(t, ctrl, http.MethodGet, "/api/v1/weather?city=%20%20", &body)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, body.Error)
	assert.Equal(t, weather.MsgEmptyCity, body.Error.Message)
	assert.Equal(t, weather.MsgEmptyCity, body.View.Temperature)
}

func TestGetWeatherCityNotFound(t *testing.T) {
	ctrl := display.NewController(stubFetcher{err: weather.StatusReport(404, weather.MsgCityNotFound)})

	var body weatherBody
	code := doJSON(t, ctrl, http.MethodGet, "/api/v1/weather?city=Atlantis", &body)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "City not found.", body.View.Temperature)
}

func TestGetWeatherUpstreamError(t *testing.T) {
	ctrl := display.NewController(stubFetcher{err: weather.StatusReport(401, weather.MsgUnauthorized)})

	var body weatherBody
	code := doJSON(t, ctrl, http.MethodGet, "/api/v1/weather?city=London", &body)
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Unauthorized: Invalid API Key.", body.View.Temperature)
}

func TestBusyReturnsConflict(t *testing.T) {
	var body map[string]any
	code := doJSON(t, busyController{}, http.MethodGet, "/api/v1/weather?city=London", &body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, true, body["error"])

	code = doJSON(t, busyController{}, http.MethodPost, "/api/v1/unit/toggle", nil)
	assert.Equal(t, http.StatusConflict, code)
}

func TestToggleAndView(t *testing.T) {
	ctrl := display.NewController(stubFetcher{res: weather.Result{TemperatureKelvin: 293.15, ConditionCode: 800}})
	app := NewApp(ctrl, time.Second, nil)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/weather?city=London", nil))
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/api/v1/unit/toggle", nil))
	require.NoError(t, err)
	var v display.View
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, "68.0°F", v.Temperature)
	assert.Equal(t, "Switch to °C", v.SwitchLabel)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/view", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	resp.Body.Close()
	assert.Equal(t, "68.0°F", v.Temperature)
	assert.Equal(t, "°F", v.Unit)
}

func TestHealthAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "probe"}))
	app := NewApp(display.NewController(stubFetcher{}), time.Second, reg)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(b), "probe_total")
}
