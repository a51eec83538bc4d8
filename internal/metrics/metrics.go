package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/i474232898/weather-app/internal/weather"
)

// Fetch records weather fetch outcomes. It satisfies weather.Recorder.
type Fetch struct {
	total    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewFetch registers the fetch collectors on reg.
func NewFetch(reg prometheus.Registerer) *Fetch {
	f := &Fetch{
		total: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "weather_app",
			Name:      "fetches_total",
			Help:      "Weather fetch attempts that reached the provider, by outcome.",
		}, []string{"provider", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "weather_app",
			Name:      "fetch_duration_seconds",
			Help:      "Latency of weather provider calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider"}),
	}
	reg.MustRegister(f.total, f.duration)
	return f
}

func (f *Fetch) ObserveFetch(provider string, kind weather.ErrorKind, seconds float64) {
	outcome := "ok"
	if kind != "" {
		outcome = string(kind)
	}
	f.total.WithLabelValues(provider, outcome).Inc()
	f.duration.WithLabelValues(provider).Observe(seconds)
}
