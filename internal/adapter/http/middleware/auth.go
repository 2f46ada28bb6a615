package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
)

// --- base auth middleware ---

// Auth validates the bearer token, loads the user and injects it into context.
// If token is invalid, returns 401.
func (h *Middleware) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		header := r.Header.Get("Authorization")
		// if no header, treat as anonymous user
		// anonymous user can access only public endpoints
		// protected endpoints should return 401
		if header == "" {
			r = r.WithContext(models.WithUser(ctx, models.AnonymousUser()))
			next.ServeHTTP(w, r)
			return
		}

		token, err := extractBearerToken(header)
		if err != nil {
			errorResponse(w, http.StatusUnauthorized, err.Error())
			return
		}

		// Validate token & fetch user via domain service
		user, err := h.auth.AuthCheck(ctx, token)
		if err != nil || user == nil {
			h.log.Warn(wrap.ErrorCtx(ctx, err), "failed to authenticate user")
			errorResponse(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx = wrap.WithUserID(ctx, user.ID.String())
		next.ServeHTTP(w, r.WithContext(models.WithUser(ctx, user)))
	})
}

// RequireAuthenticated wraps a handler and allows only authenticated users.
// Usage: mux.Handle("GET /auth/profile", m.RequireAuthenticated(h.Get))
func (h *Middleware) RequireAuthenticated(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.UserFromContext(r.Context())
		if user == nil || user.IsAnonymous() {
			errorResponse(w, http.StatusUnauthorized, "authorization required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// --- header parser ---
func extractBearerToken(header string) (string, error) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", fmt.Errorf("invalid Authorization header format")
	}
	return parts[1], nil
}
