package services

import (
	"sync"
	"time"

	"github.com/propedge/propedge/internal/models"
)

// LeagueResult is one league's output from the most recent run.
type LeagueResult struct {
	Picks       []models.Pick         `json:"picks"`
	Diagnostics models.RunDiagnostics `json:"diagnostics"`
}

// ResultStore holds the latest rendered page and pick lists for the HTTP
// surface. Writers are the pipeline loop; readers are request handlers.
type ResultStore struct {
	mu        sync.RWMutex
	page      []byte
	results   map[models.League]LeagueResult
	updatedAt time.Time
}

// NewResultStore creates an empty result store.
func NewResultStore() *ResultStore {
	return &ResultStore{
		results: make(map[models.League]LeagueResult),
	}
}

// Publish replaces the stored page and per-league results.
func (s *ResultStore) Publish(page []byte, results map[models.League]LeagueResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page = page
	s.results = results
	s.updatedAt = time.Now()
}

// Page returns the latest rendered document, or false if no run has
// completed yet.
func (s *ResultStore) Page() ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.page) == 0 {
		return nil, false
	}
	return s.page, true
}

// Results returns the latest per-league results and publish time.
func (s *ResultStore) Results() (map[models.League]LeagueResult, time.Time) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[models.League]LeagueResult, len(s.results))
	for league, result := range s.results {
		out[league] = result
	}
	return out, s.updatedAt
}

// Result returns one league's latest result.
func (s *ResultStore) Result(league models.League) (LeagueResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[league]
	return result, ok
}
