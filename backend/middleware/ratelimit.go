// ABOUTME: Per-client request budgets for the sizing API using fixed one-window counters
// ABOUTME: Sweeps spend more of a client's budget than single sizing calls

package middleware

import (
	"encoding/json"
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"
)

// pruneEvery is how many new windows open between scans for expired ones
const pruneEvery = 100

// budget is one client's spend inside the current window
type budget struct {
	spent   int
	resetAt time.Time
}

// RateLimiter grants each client limit budget units per window.
type RateLimiter struct {
	mu      sync.Mutex
	budgets map[string]*budget
	limit   int
	window  time.Duration
	opened  int
}

// NewRateLimiter creates a limiter granting limit units per window to each key.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		budgets: make(map[string]*budget),
		limit:   limit,
		window:  window,
	}
}

// Allow spends one unit of key's budget.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	return rl.AllowN(key, 1)
}

// AllowN spends cost units of key's budget, returning the wait until reset when it cannot.
// Costs are clamped to [1, limit] so a sweep always fits an untouched window.
func (rl *RateLimiter) AllowN(key string, cost int) (bool, time.Duration) {
	cost = min(max(cost, 1), rl.limit)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	b, ok := rl.budgets[key]

	// The reset instant itself opens a fresh window
	if !ok || !now.Before(b.resetAt) {
		rl.budgets[key] = &budget{spent: cost, resetAt: now.Add(rl.window)}

		rl.opened++
		if rl.opened >= pruneEvery {
			rl.prune(now)
			rl.opened = 0
		}
		return true, 0
	}

	if b.spent+cost > rl.limit {
		return false, b.resetAt.Sub(now)
	}
	b.spent += cost
	return true, 0
}

// prune drops expired budgets. Caller holds rl.mu.
func (rl *RateLimiter) prune(now time.Time) {
	for k, b := range rl.budgets {
		if !now.Before(b.resetAt) {
			delete(rl.budgets, k)
		}
	}
}

// ClientIP keys requests by the first valid X-Forwarded-For address, else the peer address.
// The header is trusted, so the API must sit behind a proxy that overwrites it.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); net.ParseIP(ip) != nil {
			return "ip:" + ip
		}
	}

	host := r.RemoteAddr
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return "ip:" + host
}

// RateLimit charges cost units per request to the key keyFunc derives.
// A nil limiter or keyFunc disables limiting, and requests with an empty key are not charged.
func RateLimit(limiter *RateLimiter, keyFunc func(*http.Request) string, cost int) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || keyFunc == nil {
				next(w, r)
				return
			}
			key := keyFunc(r)
			if key == "" {
				next(w, r)
				return
			}

			ok, wait := limiter.AllowN(key, cost)
			if ok {
				next(w, r)
				return
			}

			retrySeconds := int(math.Ceil(wait.Seconds()))
			slog.Warn("Sizing request over budget", "key", key, "path", r.URL.Path, "cost", cost, "retry_after", retrySeconds)

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("Retry-After", strconv.Itoa(retrySeconds))
			w.WriteHeader(http.StatusTooManyRequests)
			json.NewEncoder(w).Encode(map[string]any{
				"error":       "Rate limit exceeded",
				"code":        http.StatusTooManyRequests,
				"retry_after": retrySeconds,
			})
		}
	}
}
