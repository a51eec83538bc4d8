package providers

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-app/internal/common"
	"github.com/i474232898/weather-app/internal/weather"
)

// maxRedirects matches the redirect ceiling of the desktop client's HTTP library.
const maxRedirects = 30

// BreakerConfig controls when the provider stops sending requests after
// repeated failures. It never retries a request.
type BreakerConfig struct {
	// ConsecutiveFailures trips the breaker; 0 disables it.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before a probe is allowed.
	OpenTimeout time.Duration
}

// DefaultBreaker is used when the caller does not configure one.
var DefaultBreaker = BreakerConfig{
	ConsecutiveFailures: 5,
	OpenTimeout:         1 * time.Minute,
}

var (
	errNoHTTPClient     = errors.New("http client not configured")
	errTooManyRedirects = errors.New("stopped after too many redirects")
)

// serverError carries a 5xx status out of the breaker so that it counts as a failure.
type serverError struct {
	code int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: %d", e.code)
}

// NewHTTPClient returns a client with the given timeout and a bounded redirect chain.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return errTooManyRedirects
			}
			return nil
		},
	}
}

func newBreaker(name string, cfg BreakerConfig) *gobreaker.CircuitBreaker {
	if cfg.ConsecutiveFailures == 0 {
		return nil
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
	})
}

// doRequest executes one GET through the circuit breaker. Transport failures
// and 5xx responses are returned as *weather.ErrorReport and count against the
// breaker. Any other response is handed back with its body open.
func doRequest(ctx context.Context, client *http.Client, cb *gobreaker.CircuitBreaker, req *http.Request) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}
	req = req.WithContext(ctx)

	do := func() (interface{}, error) {
		resp, err := client.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= 500 && resp.StatusCode < 600 {
			resp.Body.Close()
			return nil, &serverError{code: resp.StatusCode}
		}
		return resp, nil
	}

	var (
		result interface{}
		err    error
	)
	if cb != nil {
		result, err = cb.Execute(do)
	} else {
		result, err = do()
	}

	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, weather.NewErrorReport(weather.KindTransport, weather.MsgCircuitOpen, err)
		}
		var se *serverError
		if errors.As(err, &se) {
			return nil, classifyStatus(se.code)
		}
		return nil, classifyTransport(err)
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// classifyTransport maps a client.Do failure onto a fixed user-facing report.
func classifyTransport(err error) *weather.ErrorReport {
	// url.Error embeds the request URL, which carries the API key.
	cause := err
	var ue *url.Error
	if errors.As(err, &ue) {
		cause = ue.Err
	}

	var netErr net.Error
	var dnsErr *net.DNSError
	var opErr *net.OpError

	switch {
	case errors.Is(err, errTooManyRedirects):
		return weather.NewErrorReport(weather.KindTransport, weather.MsgTooManyRedirect, err)
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return weather.NewErrorReport(weather.KindTransport, weather.MsgTimeout, err)
	case errors.As(err, &dnsErr),
		errors.As(err, &opErr),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		common.HasAny(err.Error(), "connection refused", "no such host", "network is unreachable", "connection reset"):
		return weather.NewErrorReport(weather.KindTransport, weather.MsgConnection, err)
	default:
		return weather.NewErrorReport(weather.KindTransport, fmt.Sprintf("Request Error: %v", cause), err)
	}
}

// classifyStatus maps a non-2xx status onto a user-facing report.
func classifyStatus(code int) *weather.ErrorReport {
	text := http.StatusText(code)
	switch {
	case code == http.StatusUnauthorized:
		return weather.StatusReport(code, weather.MsgUnauthorized)
	case code == http.StatusNotFound:
		return weather.StatusReport(code, weather.MsgCityNotFound)
	case code >= 400 && code < 500:
		return weather.StatusReport(code, fmt.Sprintf("Client Error %d: %s", code, text))
	case code >= 500 && code < 600:
		return weather.StatusReport(code, fmt.Sprintf("Server Error %d: Please try again later.", code))
	default:
		return weather.StatusReport(code, fmt.Sprintf("HTTP error occurred: %d %s", code, text))
	}
}
