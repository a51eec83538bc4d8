package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-app/internal/common"
	"github.com/i474232898/weather-app/internal/weather"
)

// DefaultOpenWeatherBaseURL is the production host of the OpenWeatherMap API.
const DefaultOpenWeatherBaseURL = "https://api.openweathermap.org"

const currentWeatherPath = "/data/2.5/weather"

// OpenWeatherProvider implements the weather.Provider interface for OpenWeatherMap.
type OpenWeatherProvider struct {
	name    string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider builds a provider against baseURL (scheme and host,
// no path). An empty baseURL selects the production host.
func NewOpenWeatherProvider(client *http.Client, baseURL string, breaker BreakerConfig) *OpenWeatherProvider {
	if baseURL == "" {
		baseURL = DefaultOpenWeatherBaseURL
	}
	return &OpenWeatherProvider{
		name:    "openweathermap",
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newBreaker("openweather", breaker),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// statusCode decodes the "cod" envelope field, which the API sends either as
// a number or as a numeric string. Values that are not a whole number decode
// to invalidCod so that the envelope's message is still surfaced.
type statusCode int

const invalidCod statusCode = -1

func (c *statusCode) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*c = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) || math.IsInf(f, 0) {
		*c = invalidCod
		return nil
	}
	*c = statusCode(f)
	return nil
}

type currentPayload struct {
	Cod     statusCode `json:"cod"`
	Message string     `json:"message"`
	Main    struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
	Weather []struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	} `json:"weather"`
}

func (p *OpenWeatherProvider) Current(ctx context.Context, q weather.Query, apiKey string) (weather.Result, error) {
	values := url.Values{}
	values.Set("q", q.City)
	values.Set("appid", apiKey)

	u := fmt.Sprintf("%s%s?%s", p.baseURL, currentWeatherPath, values.Encode())
	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return weather.Result{}, weather.NewErrorReport(weather.KindTransport, "Request Error: invalid request URL", err)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, req)
	if err != nil {
		return weather.Result{}, weather.AsReport(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return weather.Result{}, classifyStatus(resp.StatusCode)
	}

	var payload currentPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Result{}, weather.NewErrorReport(weather.KindParse, "Request Error: invalid response from weather service", err)
	}

	if payload.Cod != http.StatusOK {
		msg := payload.Message
		if msg == "" {
			msg = weather.MsgFetchFailed
		}
		return weather.Result{}, &weather.ErrorReport{
			Kind:    weather.KindAPILogical,
			Message: common.Capitalize(msg),
			Status:  int(payload.Cod),
		}
	}

	if len(payload.Weather) == 0 {
		return weather.Result{}, weather.NewErrorReport(weather.KindParse, "Request Error: response has no weather conditions", nil)
	}

	return weather.Result{
		TemperatureKelvin: payload.Main.Temp,
		Description:       common.Capitalize(payload.Weather[0].Description),
		ConditionCode:     payload.Weather[0].ID,
	}, nil
}
