package middleware

import (
	"bytes"
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// CachedPromHandler serves a Prometheus text exposition that is gathered at
// most once per ttl, so frequent scrapes do not each pay for a full gather.
type CachedPromHandler struct {
	mu       sync.RWMutex
	cache    []byte
	gatherer prometheus.Gatherer
	ttl      time.Duration
}

// NewCachedPromHandler fills the cache once and keeps refreshing it in the
// background until ctx is done.
func NewCachedPromHandler(ctx context.Context, gatherer prometheus.Gatherer, ttl time.Duration) *CachedPromHandler {
	c := &CachedPromHandler{
		gatherer: gatherer,
		ttl:      ttl,
	}
	c.refresh()

	go c.refreshLoop(ctx)
	return c
}

func (c *CachedPromHandler) refreshLoop(ctx context.Context) {
	ticker := time.NewTicker(c.ttl)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.refresh()
		}
	}
}

// refresh gathers and encodes all metrics. A failed gather keeps the
// previous exposition.
func (c *CachedPromHandler) refresh() {
	body, err := c.encode()
	if err != nil {
		return
	}
	c.mu.Lock()
	c.cache = body
	c.mu.Unlock()
}

func (c *CachedPromHandler) encode() ([]byte, error) {
	families, err := c.gatherer.Gather()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	enc := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// ServeHTTP writes the cached exposition. While the cache is still empty it
// gathers on the spot.
func (c *CachedPromHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	c.mu.RLock()
	body := c.cache
	c.mu.RUnlock()

	if len(body) == 0 {
		var err error
		body, err = c.encode()
		if err != nil {
			http.Error(w, "failed to gather metrics", http.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", string(expfmt.NewFormat(expfmt.TypeTextPlain)))
	_, _ = w.Write(body)
}
