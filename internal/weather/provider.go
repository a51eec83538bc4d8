package weather

import (
	"context"
)

// Provider abstracts the current-conditions endpoint of a weather data source.
// Implementations must return *ErrorReport values for every failure.
type Provider interface {
	Name() string
	Current(ctx context.Context, q Query, apiKey string) (Result, error)
}

// Recorder observes fetch outcomes (metrics).
type Recorder interface {
	ObserveFetch(provider string, kind ErrorKind, seconds float64)
}
