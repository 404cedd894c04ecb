package config

import (
	"net/http"
	"testing"
	"time"
)

type mockRoundTripper struct {
	calls   int
	handler func(req *http.Request) (*http.Response, error)
}

func (m *mockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.calls++
	return m.handler(req)
}

// shortenRetryDelay makes DoWithBackoff pause for milliseconds instead of seconds.
func shortenRetryDelay(t *testing.T) {
	t.Helper()
	previous := retryBaseDelay
	retryBaseDelay = 5 * time.Millisecond
	t.Cleanup(func() { retryBaseDelay = previous })
}

const validDocument = `{
	"tariff": {"rate_per_km": 0.2, "base_price": 8},
	"sources": [
		{"id": "italy", "name": "Italian stations", "kind": "file", "path": "stations.json"},
		{"id": "seattle", "kind": "oba", "oba_base_url": "https://api.example.com", "oba_api_key": "test-key", "stop_ids": ["1_75403"]}
	]
}`
