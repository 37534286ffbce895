package httpx

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jahangeer-44/Job-Nest/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig sizes a per-client token bucket: RequestsPerWindow
// tokens refill over Window, and Burst tokens may be spent at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

var (
	// StrictLimit guards the credential endpoints against brute force
	// and bulk account creation.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit suits authenticated mutation endpoints.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}
)

// IPKeyExtractor attributes a request to a client IP, trusting proxy
// headers when present. The first X-Forwarded-For hop is the original
// client.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}

	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// buckets tracks one token bucket per client key and sheds fully-refilled
// ones periodically so one-off clients do not accumulate forever.
type buckets struct {
	mu      sync.Mutex
	byKey   map[string]*rate.Limiter
	refill  rate.Limit
	burst   int
	swept   time.Time
	sweepAt time.Duration
}

func newBuckets(cfg RateLimitConfig) *buckets {
	return &buckets{
		byKey:   make(map[string]*rate.Limiter),
		refill:  rate.Limit(float64(cfg.RequestsPerWindow) / cfg.Window.Seconds()),
		burst:   cfg.Burst,
		swept:   time.Now(),
		sweepAt: 5 * time.Minute,
	}
}

func (b *buckets) allow(key string) (bool, time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if time.Since(b.swept) >= b.sweepAt {
		b.swept = time.Now()
		for k, lim := range b.byKey {
			if lim.Tokens() >= float64(b.burst) {
				delete(b.byKey, k)
			}
		}
	}

	lim, ok := b.byKey[key]
	if !ok {
		lim = rate.NewLimiter(b.refill, b.burst)
		b.byKey[key] = lim
	}

	if lim.Allow() {
		return true, 0
	}

	res := lim.Reserve()
	delay := res.Delay()
	res.Cancel()
	return false, delay
}

// RateLimitByIP enforces cfg per client IP. Exhausted clients get a 429
// with Retry-After; requests with no attributable client are allowed
// through rather than collapsing every anonymous caller onto one bucket.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	b := newBuckets(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := IPKeyExtractor(r)
			if key == "" {
				log.Warn("rate limit: no client key, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			ok, delay := b.allow(key)
			if !ok {
				retryAfter := max(int(delay.Seconds()), 1)
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
				w.Header().Set("X-RateLimit-Window", cfg.Window.String())

				log.Warn("rate limit exceeded",
					"key", key,
					"endpoint", r.URL.Path,
					"retry_after", retryAfter,
				)

				WriteJSON(w, http.StatusTooManyRequests, map[string]any{
					"success": false,
					"message": "Too many requests. Please try again later.",
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
