package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	user *models.User
	err  error
}

func (s *stubAuthService) AuthCheck(context.Context, string) (*models.User, error) {
	return s.user, s.err
}

func newTestMiddleware(auth AuthService) *Middleware {
	return NewMiddleware(auth, logger.InitLogger("test", logger.LevelError))
}

func userCapturingHandler(captured **models.User) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = models.UserFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthNoHeader(t *testing.T) {
	m := newTestMiddleware(&stubAuthService{})

	var captured *models.User
	handler := m.Auth(userCapturingHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.True(t, captured.IsAnonymous())
}

func TestAuthValidToken(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}
	m := newTestMiddleware(&stubAuthService{user: user})

	var captured *models.User
	handler := m.Auth(userCapturingHandler(&captured))

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)
	assert.Equal(t, user.ID, captured.ID)
}

func TestAuthInvalidToken(t *testing.T) {
	m := newTestMiddleware(&stubAuthService{err: errors.New("invalid token")})

	handler := m.Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler should not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthMalformedHeader(t *testing.T) {
	m := newTestMiddleware(&stubAuthService{})

	handler := m.Auth(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("handler should not be reached")
	}))

	for _, header := range []string{"Basic abc", "Bearer", "Bearer "} {
		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
	}
}

func TestRequireAuthenticated(t *testing.T) {
	m := newTestMiddleware(&stubAuthService{})

	next := func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

	// Anonymous user is rejected.
	req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req = req.WithContext(models.WithUser(req.Context(), models.AnonymousUser()))
	rec := httptest.NewRecorder()
	m.RequireAuthenticated(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// No user at all is rejected.
	req = httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	rec = httptest.NewRecorder()
	m.RequireAuthenticated(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Authenticated user passes through.
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}
	req = httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
	req = req.WithContext(models.WithUser(req.Context(), user))
	rec = httptest.NewRecorder()
	m.RequireAuthenticated(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
