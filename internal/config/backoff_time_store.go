package config

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"
)

const (
	BASE_BACKOFF   = 1 * time.Second
	MAX_BACKOFF    = 2 * time.Minute
	BACKOFF_FACTOR = 2.0
	JITTER_FACTOR  = 0.5
)

// retryBaseDelay is the first pause of DoWithBackoff; tests shorten it.
var retryBaseDelay = BASE_BACKOFF

type backoffData struct {
	BackoffDelay time.Duration
	NextRetryAt  time.Time
}

// BackoffStore tracks, per station source, when the next load attempt is allowed.
type BackoffStore struct {
	mu       sync.RWMutex
	backoffs map[string]backoffData
}

func NewBackoffStore() *BackoffStore {
	return &BackoffStore{
		backoffs: make(map[string]backoffData),
	}
}

func (s *BackoffStore) NextRetryAt(sourceID string) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if backoff, exists := s.backoffs[sourceID]; exists {
		return backoff.NextRetryAt.UTC(), true
	}
	return time.Time{}, false
}

// ShouldSkip reports whether sourceID is still backing off at now.
func (s *BackoffStore) ShouldSkip(sourceID string, now time.Time) bool {
	next, ok := s.NextRetryAt(sourceID)
	return ok && now.Before(next)
}

// UpdateBackoff records a failure and pushes the next retry further out.
func (s *BackoffStore) UpdateBackoff(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if backoff, exists := s.backoffs[sourceID]; exists {
		backoff.BackoffDelay = calculateNewBackoffDelay(backoff.BackoffDelay)
		backoff.NextRetryAt = calculateNextRetryAt(backoff.BackoffDelay)
		s.backoffs[sourceID] = backoff
		return
	}
	s.backoffs[sourceID] = backoffData{
		BackoffDelay: BASE_BACKOFF,
		NextRetryAt:  calculateNextRetryAt(BASE_BACKOFF),
	}
}

func (s *BackoffStore) ResetBackoff(sourceID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.backoffs, sourceID)
}

func calculateNextRetryAt(backoff time.Duration) time.Time {
	return time.Now().Add(withJitter(backoff)).UTC()
}

func withJitter(backoff time.Duration) time.Duration {
	backoff += time.Duration(rand.Float64() * float64(backoff) * JITTER_FACTOR)
	if backoff > MAX_BACKOFF {
		backoff = MAX_BACKOFF
	}
	return backoff
}

func calculateNewBackoffDelay(backoffDelay time.Duration) time.Duration {
	backoffDelay *= BACKOFF_FACTOR
	if backoffDelay >= MAX_BACKOFF {
		backoffDelay = MAX_BACKOFF
	}
	return backoffDelay
}

// DoWithBackoff sends req, retrying transport errors and 5xx responses with
// exponential backoff. maxRetries <= 0 retries until ctx is done.
func DoWithBackoff(ctx context.Context, client *http.Client, req *http.Request, maxRetries int) (*http.Response, error) {
	delay := retryBaseDelay
	var lastErr error

	for attempt := 0; maxRetries <= 0 || attempt <= maxRetries; attempt++ {
		resp, err := client.Do(req.Clone(ctx))
		switch {
		case err != nil:
			lastErr = err
		case resp.StatusCode >= http.StatusInternalServerError:
			resp.Body.Close()
			lastErr = fmt.Errorf("server returned status %d", resp.StatusCode)
		default:
			return resp, nil
		}

		if maxRetries > 0 && attempt == maxRetries {
			break
		}

		timer := time.NewTimer(withJitter(delay))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("request to %s cancelled: %w (last error: %v)", req.URL, ctx.Err(), lastErr)
		case <-timer.C:
		}
		delay = calculateNewBackoffDelay(delay)
	}

	return nil, fmt.Errorf("max retries exceeded for %s: %w", req.URL, lastErr)
}
