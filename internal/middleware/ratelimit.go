package middleware

import (
	"fmt"
	"log"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rchand7/rozgar/backend/internal/api"
)

// RateLimit returns a fixed-window per-IP limiter backed by Redis, applied
// to the public auth endpoints. A nil client disables limiting, and Redis
// errors fail open so an unavailable Redis never blocks logins.
func RateLimit(rdb *redis.Client, limit int, window time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rdb == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := r.RemoteAddr
			if host, _, err := net.SplitHostPort(ip); err == nil {
				ip = host
			}
			key := fmt.Sprintf("ratelimit:%s:%s", ip, r.URL.Path)

			ctx := r.Context()
			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Printf("ratelimit: redis incr: %v", err)
				next.ServeHTTP(w, r)
				return
			}
			if n == 1 {
				rdb.Expire(ctx, key, window)
			}
			if n > int64(limit) {
				w.Header().Set("Retry-After", strconv.Itoa(int(window/time.Second)))
				api.Error(w, http.StatusTooManyRequests, "Too many requests. Try again later.")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
