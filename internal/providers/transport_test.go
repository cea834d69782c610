package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetJSONDecodesBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": 42}`))
	}))
	defer server.Close()

	f := newFetcher("test", time.Millisecond, 2*time.Second, logrus.New())

	var dest struct {
		Value int `json:"value"`
	}
	ferr := f.getJSON(context.Background(), "test", server.URL, "", &dest)
	require.Nil(t, ferr)
	assert.Equal(t, 42, dest.Value)
}

func TestGetJSONMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"value": `))
	}))
	defer server.Close()

	f := newFetcher("test", time.Millisecond, 2*time.Second, logrus.New())

	var dest map[string]int
	ferr := f.getJSON(context.Background(), "test", server.URL, "", &dest)
	require.NotNil(t, ferr)
	assert.Zero(t, ferr.Status)
	assert.Error(t, ferr.Err)
}

func TestBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	f := newFetcher("test", time.Millisecond, 2*time.Second, logrus.New())

	var dest map[string]int
	for i := 0; i < 5; i++ {
		ferr := f.getJSON(context.Background(), "test", server.URL, "", &dest)
		require.NotNil(t, ferr)
	}

	// The breaker trips on the third straight failure; the last two calls
	// never reach the server.
	assert.Equal(t, int64(3), hits.Load())
}
