package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// fetcher is the shared outbound transport for both providers: one HTTP
// client, a self-imposed inter-request delay, and a circuit breaker per
// provider host. Calls are single-shot; a failure is reported, never retried.
type fetcher struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker
	logger     *logrus.Logger
}

func newFetcher(name string, requestDelay time.Duration, timeout time.Duration, logger *logrus.Logger) *fetcher {
	settings := gobreaker.Settings{
		Name:    name,
		Timeout: 60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"provider":  name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	if requestDelay <= 0 {
		requestDelay = 250 * time.Millisecond
	}

	return &fetcher{
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Every(requestDelay), 1),
		breaker:    gobreaker.NewCircuitBreaker(settings),
		logger:     logger,
	}
}

// getJSON performs a single GET and decodes the JSON body into dest.
func (f *fetcher) getJSON(ctx context.Context, provider, url, unit string, dest interface{}) *FetchError {
	if err := f.limiter.Wait(ctx); err != nil {
		return &FetchError{Provider: provider, Endpoint: url, Unit: unit, Err: err}
	}

	_, err := f.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, err
		}

		resp, err := f.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, &FetchError{Provider: provider, Endpoint: url, Unit: unit, Status: resp.StatusCode}
		}

		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return nil, fmt.Errorf("decode response: %w", err)
		}
		return nil, nil
	})
	if err != nil {
		if fe, ok := err.(*FetchError); ok {
			return fe
		}
		return &FetchError{Provider: provider, Endpoint: url, Unit: unit, Err: err}
	}
	return nil
}
