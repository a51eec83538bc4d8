package weather

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// Service runs the fetch workflow: validate input, query the provider once,
// and hand back either a Result or an *ErrorReport.
type Service struct {
	provider Provider
	apiKey   string
	recorder Recorder
}

// NewService creates a new Service. recorder may be nil.
func NewService(provider Provider, apiKey string, recorder Recorder) *Service {
	return &Service{
		provider: provider,
		apiKey:   apiKey,
		recorder: recorder,
	}
}

// Fetch returns current weather for city. Validation failures never reach
// the network. The returned error, if any, is always an *ErrorReport.
func (s *Service) Fetch(ctx context.Context, city string) (Result, error) {
	if strings.TrimSpace(s.apiKey) == "" {
		return Result{}, NewErrorReport(KindValidation, MsgMissingAPIKey, nil)
	}

	q := Query{City: strings.TrimSpace(city)}
	if err := validate.Struct(q); err != nil {
		return Result{}, NewErrorReport(KindValidation, MsgEmptyCity, err)
	}

	id := uuid.NewString()
	start := time.Now()
	log.Printf("DEBUG: fetch %s: querying %s for %q", id, s.provider.Name(), q.City)

	res, err := s.provider.Current(ctx, q, s.apiKey)
	elapsed := time.Since(start)

	var kind ErrorKind
	if err != nil {
		rep := AsReport(err)
		kind = rep.Kind
		log.Printf("ERROR: fetch %s: %s failed after %s: %s (%v)", id, s.provider.Name(), elapsed.Round(time.Millisecond), rep.Message, rep.Unwrap())
		err = rep
	} else {
		log.Printf("INFO: fetch %s: %q -> %.2fK code=%d in %s", id, q.City, res.TemperatureKelvin, res.ConditionCode, elapsed.Round(time.Millisecond))
	}

	if s.recorder != nil {
		s.recorder.ObserveFetch(s.provider.Name(), kind, elapsed.Seconds())
	}
	return res, err
}
