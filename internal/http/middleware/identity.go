package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rogerio-castellano/inventory-sheets/internal/auth"
	"github.com/rogerio-castellano/inventory-sheets/internal/logger"
)

const userEmailHeader = "X-User-Email"

type contextKey string

const actorKey = contextKey("actor")

// Identity resolves the caller of each request. A bearer token wins when a
// signer is configured, then the X-User-Email header, then defaultUser.
func Identity(signer *auth.Signer, defaultUser string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actor := defaultUser
			if header := strings.TrimSpace(r.Header.Get(userEmailHeader)); header != "" {
				actor = header
			}

			if signer.Enabled() {
				if token, ok := auth.BearerToken(r.Header.Get("Authorization")); ok {
					email, err := signer.ParseEmail(token)
					if err != nil {
						if logg != nil {
							logg.Warn(logg.WithField(r.Context(), "reason", err.Error()), "identity.rejected")
						}
						WriteError(w, http.StatusOK, auth.ErrInvalidToken.Error())
						return
					}
					actor = email
				}
			}

			ctx := WithActor(r.Context(), actor)
			if logg != nil {
				ctx = logg.WithActor(ctx, actor)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey, actor)
}

// Actor returns the caller resolved by Identity, or "" outside of it.
func Actor(ctx context.Context) string {
	if val, ok := ctx.Value(actorKey).(string); ok {
		return val
	}
	return ""
}
