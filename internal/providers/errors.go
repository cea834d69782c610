package providers

import "fmt"

// FetchError describes a failed outbound call. Callers treat a non-nil
// FetchError as "this unit produced no data" and continue the run; nothing
// in this package retries. Expected absence of data (an empty roster, a
// game with no props) is not a FetchError.
type FetchError struct {
	Provider string // "espn" or "oddsapi"
	Endpoint string
	Unit     string // the team/event the failure is scoped to, if any
	Status   int    // HTTP status, 0 for transport errors
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s %s: status %d", e.Provider, e.Endpoint, e.Status)
	}
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Endpoint, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
