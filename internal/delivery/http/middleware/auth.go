package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a context carrying the verified caller.
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the verified caller, if any.
func IdentityFromContext(ctx context.Context) (*domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*domain.Identity)
	return id, ok && id != nil
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, string) {
	auth := r.Header.Get("Authorization")
	if auth == "" {
		return "", "missing authorization header"
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return "", "invalid authorization format"
	}
	token := strings.TrimSpace(auth[len(prefix):])
	if token == "" {
		return "", "missing token"
	}
	return token, ""
}

// Authenticate attaches the caller's identity when a valid Bearer token is
// present. Requests without one pass through anonymously.
func Authenticate(verifier domain.TokenVerifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, _ := bearerToken(r); token != "" {
			if id, err := verifier.Verify(token); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns a wrapper that only calls next for admin callers. A missing
// or invalid token answers 401; a valid token without the admin role answers 403.
func RequireAdmin(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			id, ok := IdentityFromContext(r.Context())
			if !ok {
				token, problem := bearerToken(r)
				if problem != "" {
					helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, problem)
					return
				}
				verified, err := verifier.Verify(token)
				if err != nil {
					logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
					helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid or expired token")
					return
				}
				id = verified
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			if !id.IsAdmin() {
				helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "admin access required")
				return
			}
			next(w, r)
		}
	}
}
