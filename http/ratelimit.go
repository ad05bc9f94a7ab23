package http

import (
	"context"
	"net"
	"strings"
	"sync"

	"golang.org/x/time/rate"
)

// HostLimiter spaces out requests to each storefront host with a token
// bucket of burst 1. Hosts are keyed without port and case, so
// "Shop.example.com:443" and "shop.example.com" share a bucket.
type HostLimiter struct {
	rps rate.Limit

	mu      sync.Mutex
	buckets map[string]*rate.Limiter
}

// NewHostLimiter creates a HostLimiter allowing rps requests per second to
// each host.
func NewHostLimiter(rps float64) *HostLimiter {
	return &HostLimiter{
		rps:     rate.Limit(rps),
		buckets: make(map[string]*rate.Limiter),
	}
}

// Wait blocks until a request to host is allowed or ctx is done.
func (h *HostLimiter) Wait(ctx context.Context, host string) error {
	return h.bucket(host).Wait(ctx)
}

func (h *HostLimiter) bucket(host string) *rate.Limiter {
	key := strings.ToLower(host)
	if name, _, err := net.SplitHostPort(key); err == nil {
		key = name
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.buckets[key]
	if !ok {
		b = rate.NewLimiter(h.rps, 1)
		h.buckets[key] = b
	}
	return b
}
