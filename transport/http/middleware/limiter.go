package middleware

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"houserental/shared"
	"houserental/shared/constant"
	"houserental/transport/http/response"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	cacheKeyRateLimit = "limiter"

	routeGuestBooking = "POST /v1/bookings/guest"
	routeGuestIntent  = "POST /v1/payments/guest-intents"
)

type limit struct {
	maxReqs    int
	windowSecs int
}

// localLimiter holds one token bucket per key. It takes over while redis is unreachable.
type localLimiter struct {
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

func newLocalLimiter() *localLimiter {
	return &localLimiter{
		limiters: make(map[string]*rate.Limiter),
	}
}

func (s *localLimiter) allow(key string, l limit) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	limiter, exists := s.limiters[key]
	if !exists {
		window := time.Duration(l.windowSecs) * time.Second
		limiter = rate.NewLimiter(rate.Every(window/time.Duration(l.maxReqs)), l.maxReqs)
		s.limiters[key] = limiter
	}

	return limiter.Allow()
}

// RateLimit counts requests per client IP and route. Guest booking and guest payment routes
// carry their own, tighter limits.
func (a *appMiddleware) RateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.config.App.RateLimiter.Enable {
			next.ServeHTTP(w, r)

			return
		}

		action := r.Method + " " + routePattern(r)
		l := a.limitFor(action)
		if l.maxReqs <= 0 || l.windowSecs <= 0 {
			next.ServeHTTP(w, r)

			return
		}

		cacheKey := shared.BuildCacheKey(cacheKeyRateLimit, action, a.getClientIP(r))

		count, err := a.cache.Increment(r.Context(), cacheKey, l.windowSecs)
		if err != nil {
			a.fallback(w, r, next, cacheKey, l)

			return
		}

		if count > int64(l.maxReqs) {
			response.WithRequestLimitExceeded(w)

			return
		}

		w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(l.maxReqs))
		w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(max(0, int64(l.maxReqs)-count), 10))
		w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(l.windowSecs))

		next.ServeHTTP(w, r)
	})
}

func (a *appMiddleware) fallback(w http.ResponseWriter, r *http.Request, next http.Handler, key string, l limit) {
	log.Warn().Str("key", key).Msg("rate limit cache unavailable, using local limiter")

	if !a.limiter.allow(key, l) {
		response.WithRequestLimitExceeded(w)

		return
	}

	next.ServeHTTP(w, r)
}

func (a *appMiddleware) limitFor(action string) limit {
	cfg := a.config.App.RateLimiter

	switch action {
	case routeGuestBooking:
		return limit{maxReqs: cfg.Guest.BookingMaxRequests, windowSecs: cfg.Guest.WindowSeconds}
	case routeGuestIntent:
		return limit{maxReqs: cfg.Guest.IntentMaxRequests, windowSecs: cfg.Guest.WindowSeconds}
	default:
		return limit{maxReqs: cfg.MaxRequests, windowSecs: cfg.WindowSeconds}
	}
}

func (a *appMiddleware) getUA(r *http.Request) string {
	ua := r.Header.Get(constant.RequestHeaderUserAgent)
	if ua == "" {
		ua = "unknown"
	}

	return ua
}

func (a *appMiddleware) getClientIP(r *http.Request) string {
	// X-Forwarded-For can contain multiple IPs, take the first one
	if xff := r.Header.Get(constant.RequestHeaderForwardedFor); xff != "" {
		if commaIdx := strings.Index(xff, ","); commaIdx > 0 {
			return strings.TrimSpace(xff[:commaIdx])
		}

		return strings.TrimSpace(xff)
	}

	if xri := r.Header.Get(constant.RequestHeaderRealIP); xri != "" {
		return strings.TrimSpace(xri)
	}

	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}

	return r.RemoteAddr
}
