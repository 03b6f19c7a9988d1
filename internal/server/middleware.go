package server

import (
	"net"
	"net/http"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// rateLimiter keeps one token bucket per client address. Idle buckets expire
// from the cache.
type rateLimiter struct {
	logger  *zap.Logger
	limit   rate.Limit
	burst   int
	clients *cache.Cache
}

func newRateLimiter(logger *zap.Logger, cfg config.RateLimitConfig) *rateLimiter {
	if cfg.RequestsPerSecond <= 0 {
		return nil
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}
	return &rateLimiter{
		logger:  logger,
		limit:   rate.Limit(cfg.RequestsPerSecond),
		burst:   burst,
		clients: cache.New(10*time.Minute, 20*time.Minute),
	}
}

func (l *rateLimiter) limiterFor(client string) *rate.Limiter {
	if v, ok := l.clients.Get(client); ok {
		return v.(*rate.Limiter)
	}
	limiter := rate.NewLimiter(l.limit, l.burst)
	if err := l.clients.Add(client, limiter, cache.DefaultExpiration); err != nil {
		// Another request registered this client first.
		if v, ok := l.clients.Get(client); ok {
			return v.(*rate.Limiter)
		}
	}
	return limiter
}

func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	if l == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client := clientAddress(r)
		if !l.limiterFor(client).Allow() {
			l.logger.Warn("rate limit exceeded",
				zap.String("op", "server.rateLimit"),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("client", client),
			)
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func clientAddress(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func requestLogger(logger *zap.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Debug("request served",
			zap.String("op", "server.request"),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
