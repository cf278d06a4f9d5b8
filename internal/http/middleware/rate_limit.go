package middleware

import (
	"context"
	"net"
	"net/http"

	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
)

// Limiter hands out request tokens per client key.
type Limiter interface {
	Allow(key string) bool
}

// StrikeTracker records rejected requests and reports bans.
type StrikeTracker interface {
	IsBanned(ctx context.Context, target string) (bool, error)
	Strike(ctx context.Context, target, route string) (bool, error)
}

// RateLimit rejects clients over their token bucket with 429. When strikes is
// non-nil each rejection counts as a strike and banned clients are refused
// outright.
func RateLimit(limiter Limiter, strikes StrikeTracker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			client := clientKey(r)

			if strikes != nil {
				banned, err := strikes.IsBanned(ctx, client)
				if err != nil && logg != nil {
					logg.Error(ctx, "ban lookup failed", err)
				}
				if banned {
					WriteError(w, http.StatusTooManyRequests, "too many requests, try again later")
					return
				}
			}

			if !limiter.Allow(client) {
				if strikes != nil {
					if _, err := strikes.Strike(ctx, client, r.URL.Path); err != nil && logg != nil {
						logg.Error(ctx, "strike tracking failed", err)
					}
				}
				if logg != nil {
					logg.Warn(logg.WithField(ctx, "client", client), "rate limit exceeded")
				}
				WriteError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
