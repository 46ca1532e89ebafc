package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/rchand7/rozgar/backend/internal/api"
	"github.com/rchand7/rozgar/backend/internal/token"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "token"

type contextKey string

const userIDKey contextKey = "user_id"

// Reason codes returned alongside 401 responses.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInvalidToken    = "INVALID_TOKEN"
	CodeExpiredToken    = "EXPIRED_TOKEN"
)

// RequireAuth validates the token cookie and injects the resolved user ID
// into the request context. Rejections are always structured 401 JSON with a
// reason code; the middleware never redirects.
func RequireAuth(issuer *token.Issuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(CookieName)
			if err != nil || cookie.Value == "" {
				reject(w, CodeUnauthenticated, "User not authenticated.")
				return
			}

			userID, err := issuer.Verify(cookie.Value)
			switch {
			case err == nil:
			case errors.Is(err, token.ErrExpired):
				reject(w, CodeExpiredToken, "Token expired.")
				return
			case errors.Is(err, token.ErrInvalidSignature), errors.Is(err, token.ErrMalformed):
				reject(w, CodeInvalidToken, "Invalid token.")
				return
			default:
				log.Printf("token verify: %v", err)
				api.Error(w, http.StatusInternalServerError, "An error occurred.")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func reject(w http.ResponseWriter, code, message string) {
	api.JSON(w, http.StatusUnauthorized, api.Envelope{
		"message": message,
		"success": false,
		"code":    code,
	})
}

// UserID returns the authenticated user ID injected by RequireAuth.
func UserID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok
}

// WithUserID returns a context carrying the given user ID. Used by handler
// tests that bypass the middleware.
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}
