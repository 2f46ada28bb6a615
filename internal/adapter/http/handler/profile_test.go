package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/internal/domain/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authenticatedRequest(method, target, body string, user *models.User) *http.Request {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	return req.WithContext(models.WithUser(req.Context(), user))
}

func TestProfileGet(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice"}
	h := NewProfile(&stubAccountService{}, testLogger())

	req := authenticatedRequest(http.MethodGet, "/auth/profile", "", user)
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	got, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice@example.com", got["email"])
	assert.NotContains(t, got, "password_hash")
}

func TestProfileGetAnonymous(t *testing.T) {
	h := NewProfile(&stubAccountService{}, testLogger())

	req := authenticatedRequest(http.MethodGet, "/auth/profile", "", models.AnonymousUser())
	rec := httptest.NewRecorder()

	h.Get(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileUpdate(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com", Username: "alice"}

	var gotPatch *models.ProfileUpdate
	svc := &stubAccountService{
		updateProfileFn: func(_ context.Context, userID uuid.UUID, patch *models.ProfileUpdate) (*models.User, error) {
			require.Equal(t, user.ID, userID)
			gotPatch = patch
			updated := *user
			updated.Bio = *patch.Bio
			return &updated, nil
		},
	}
	h := NewProfile(svc, testLogger())

	// email and is_verified are accepted in the body but never forwarded.
	payload := `{"bio": "gopher", "city": "Almaty", "email": "evil@example.com", "is_verified": true}`
	req := authenticatedRequest(http.MethodPatch, "/auth/profile", payload, user)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, gotPatch)
	assert.Equal(t, "gopher", *gotPatch.Bio)
	assert.Equal(t, "Almaty", *gotPatch.City)
	assert.Nil(t, gotPatch.Username)

	body := decodeBody(t, rec)
	got, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "gopher", got["bio"])
	assert.Equal(t, "alice@example.com", got["email"])
}

func TestProfileUpdateInvalidDate(t *testing.T) {
	h := NewProfile(&stubAccountService{}, testLogger())
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}

	payload := `{"date_of_birth": "12/04/1995"}`
	req := authenticatedRequest(http.MethodPatch, "/auth/profile", payload, user)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	fields, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "date_of_birth")
}

func TestProfileUpdateUsernameConflict(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}
	svc := &stubAccountService{
		updateProfileFn: func(context.Context, uuid.UUID, *models.ProfileUpdate) (*models.User, error) {
			return nil, types.ErrUsernameTaken
		},
	}
	h := NewProfile(svc, testLogger())

	payload := `{"username": "bob"}`
	req := authenticatedRequest(http.MethodPatch, "/auth/profile", payload, user)
	rec := httptest.NewRecorder()

	h.Update(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestChangePasswordHandler(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}

	svc := &stubAccountService{
		changePasswordFn: func(_ context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
			require.Equal(t, user.ID, userID)
			assert.Equal(t, "old-password-1", oldPassword)
			assert.Equal(t, "new-secret-phrase-9", newPassword)
			return nil
		},
	}
	h := NewProfile(svc, testLogger())

	payload := `{"old_password": "old-password-1", "new_password": "new-secret-phrase-9", "new_password2": "new-secret-phrase-9"}`
	req := authenticatedRequest(http.MethodPost, "/auth/change-password", payload, user)
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	assert.Equal(t, "password changed successfully", body["message"])
}

func TestChangePasswordHandlerMismatch(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}
	h := NewProfile(&stubAccountService{}, testLogger())

	payload := `{"old_password": "old-password-1", "new_password": "one", "new_password2": "two"}`
	req := authenticatedRequest(http.MethodPost, "/auth/change-password", payload, user)
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	fields, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "new_password")
}

func TestChangePasswordHandlerWrongOld(t *testing.T) {
	user := &models.User{ID: uuid.New(), Email: "alice@example.com"}

	verr := types.NewValidationError()
	verr.Add("old_password", "old password is incorrect")

	svc := &stubAccountService{
		changePasswordFn: func(context.Context, uuid.UUID, string, string) error {
			return verr
		},
	}
	h := NewProfile(svc, testLogger())

	payload := `{"old_password": "wrong", "new_password": "new-secret-phrase-9", "new_password2": "new-secret-phrase-9"}`
	req := authenticatedRequest(http.MethodPost, "/auth/change-password", payload, user)
	rec := httptest.NewRecorder()

	h.ChangePassword(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	body := decodeBody(t, rec)
	fields, ok := body["error"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "old password is incorrect", fields["old_password"])
}
