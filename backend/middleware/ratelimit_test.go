// ABOUTME: Tests for per-client sizing budgets and the rate limit middleware
// ABOUTME: Covers weighted sweep cost, window reset, pruning, client keys, and 429 responses

package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

func TestRateLimiter_Spend(t *testing.T) {
	tests := []struct {
		name  string
		limit int
		costs []int
		want  []bool
	}{
		{"single calls up to the limit", 3, []int{1, 1, 1, 1}, []bool{true, true, true, false}},
		{"sweep then compare", 10, []int{8, 8, 2}, []bool{true, false, true}},
		{"oversized sweep clamps to the limit", 4, []int{100, 1}, []bool{true, false}},
		{"zero cost still spends one unit", 1, []int{0, 0}, []bool{true, false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := NewRateLimiter(tt.limit, time.Minute)
			for i, cost := range tt.costs {
				ok, wait := rl.AllowN("ip:203.0.113.7", cost)
				if ok != tt.want[i] {
					t.Fatalf("call %d (cost %d): allowed = %v, want %v", i, cost, ok, tt.want[i])
				}
				if !ok && (wait <= 0 || wait > time.Minute) {
					t.Errorf("call %d: wait %v outside (0, 1m]", i, wait)
				}
			}
		})
	}
}

func TestRateLimiter_ClientsHaveSeparateBudgets(t *testing.T) {
	rl := NewRateLimiter(1, time.Minute)

	if ok, _ := rl.Allow("ip:10.1.0.1"); !ok {
		t.Fatal("Expected first client to be allowed")
	}
	if ok, _ := rl.Allow("ip:10.1.0.2"); !ok {
		t.Fatal("Expected second client to have its own budget")
	}
	if ok, _ := rl.Allow("ip:10.1.0.1"); ok {
		t.Fatal("Expected first client to be over budget")
	}
}

func TestRateLimiter_BudgetResetsAfterWindow(t *testing.T) {
	rl := NewRateLimiter(2, 40*time.Millisecond)

	rl.AllowN("ip:10.1.0.3", 2)
	if ok, _ := rl.Allow("ip:10.1.0.3"); ok {
		t.Fatal("Expected spent budget to reject")
	}

	time.Sleep(50 * time.Millisecond)

	if ok, _ := rl.AllowN("ip:10.1.0.3", 2); !ok {
		t.Fatal("Expected a fresh window after reset")
	}
}

func TestRateLimiter_ConcurrentClients(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	clients := []string{"ip:10.2.0.1", "ip:10.2.0.2", "ip:10.2.0.3", "ip:10.2.0.4"}

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted = make(map[string]int)
	)
	for _, key := range clients {
		for i := 0; i < 12; i++ {
			wg.Add(1)
			go func(k string) {
				defer wg.Done()
				if ok, _ := rl.Allow(k); ok {
					mu.Lock()
					granted[k]++
					mu.Unlock()
				}
			}(key)
		}
	}
	wg.Wait()

	for _, key := range clients {
		if granted[key] != 5 {
			t.Errorf("%s: expected 5 granted, got %d", key, granted[key])
		}
	}
}

func TestRateLimiter_PrunesExpiredBudgets(t *testing.T) {
	rl := NewRateLimiter(1, 10*time.Millisecond)

	for i := 0; i < pruneEvery-1; i++ {
		rl.Allow(fmt.Sprintf("ip:10.3.0.%d", i))
	}
	time.Sleep(20 * time.Millisecond)

	rl.Allow("ip:10.4.0.1")

	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.budgets) != 1 {
		t.Errorf("Expected only the live budget after pruning, got %d", len(rl.budgets))
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		xff    string
		remote string
		want   string
	}{
		{"forwarded address", "203.0.113.1", "", "ip:203.0.113.1"},
		{"first hop of a proxy chain", "203.0.113.1, 198.51.100.1, 10.0.0.1", "", "ip:203.0.113.1"},
		{"padded forwarded address", "  203.0.113.1 , 10.0.0.1 ", "", "ip:203.0.113.1"},
		{"garbage header uses peer", "not-an-ip", "192.0.2.10:5000", "ip:192.0.2.10"},
		{"peer with port", "", "192.168.1.1:12345", "ip:192.168.1.1"},
		{"peer without port", "", "192.168.1.1", "ip:192.168.1.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/v1/fabric/compare", nil)
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.remote != "" {
				r.RemoteAddr = tt.remote
			}
			if got := ClientIP(r); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRateLimit_PassThrough(t *testing.T) {
	tests := []struct {
		name    string
		limiter *RateLimiter
		keyFunc func(*http.Request) string
	}{
		{"limiting disabled", nil, ClientIP},
		{"no key function", NewRateLimiter(1, time.Minute), nil},
		{"unidentified client", NewRateLimiter(1, time.Minute), func(*http.Request) string { return "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			h := RateLimit(tt.limiter, tt.keyFunc, 1)(func(w http.ResponseWriter, r *http.Request) {
				calls++
			})
			for i := 0; i < 3; i++ {
				h(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/fabric/clos", nil))
			}
			if calls != 3 {
				t.Errorf("Expected every request to reach the handler, got %d of 3", calls)
			}
		})
	}
}

func TestRateLimit_SweepCostRejectsSecondSweep(t *testing.T) {
	rl := NewRateLimiter(10, time.Minute)
	sweep := RateLimit(rl, ClientIP, 6)(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	send := func() *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPost, "/api/v1/fabric/sweep", nil)
		r.RemoteAddr = "10.0.0.9:1234"
		w := httptest.NewRecorder()
		sweep(w, r)
		return w
	}

	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("Expected first sweep to pass, got %d", w.Code)
	}
	w := send()
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected second sweep to be rejected, got %d", w.Code)
	}

	if got := w.Header().Get("Content-Type"); got != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", got)
	}
	retry, err := strconv.Atoi(w.Header().Get("Retry-After"))
	if err != nil || retry < 1 || retry > 60 {
		t.Errorf("Expected Retry-After in [1, 60], got %q", w.Header().Get("Retry-After"))
	}

	var body struct {
		Error      string `json:"error"`
		Code       int    `json:"code"`
		RetryAfter int    `json:"retry_after"`
	}
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response body: %v", err)
	}
	if body.Error != "Rate limit exceeded" || body.Code != http.StatusTooManyRequests || body.RetryAfter != retry {
		t.Errorf("Unexpected body %+v for Retry-After %d", body, retry)
	}
}
