package auth

import (
	"context"
	"strings"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/internal/domain/types"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/aslanbek-j/accounts-service/pkg/metrics"
	"github.com/aslanbek-j/accounts-service/pkg/passhash"
	pgclient "github.com/aslanbek-j/accounts-service/pkg/postgres"
	"github.com/google/uuid"
)

// Profile returns the account record for the given user id.
func (s *AuthService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "get_profile")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if user == nil {
		return nil, wrap.Error(ctx, types.ErrUserNotFound)
	}

	return user, nil
}

// UpdateProfile applies a partial update of the mutable profile fields.
// Email, verification flag and timestamps cannot be written through this
// path; a username collision surfaces as a conflict error.
func (s *AuthService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *models.ProfileUpdate) (*models.User, error) {
	ctx = wrap.WithAction(ctx, "update_profile")

	user, err := s.userRepo.Update(ctx, userID, patch)
	if err != nil {
		if pgclient.IsUniqueViolation(err) {
			return nil, wrap.Error(ctx, types.ErrUsernameTaken)
		}
		s.log.Error(ctx, "failed to update profile", err)
		return nil, wrap.Error(ctx, err)
	}
	if user == nil {
		return nil, wrap.Error(ctx, types.ErrUserNotFound)
	}

	return user, nil
}

// ChangePassword verifies the old password and persists a new digest.
// Existing tokens are not revoked by a password change.
func (s *AuthService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	ctx = wrap.WithAction(ctx, "change_password")

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return wrap.Error(ctx, err)
	}
	if user == nil {
		return wrap.Error(ctx, types.ErrUserNotFound)
	}

	if ok, err := passhash.VerifyPassword(oldPassword, user.PasswordHash); err != nil || !ok {
		verr := types.NewValidationError()
		verr.Add("old_password", "old password is incorrect")
		return verr
	}

	if violations := s.policy.Validate(newPassword, user.Username, emailLocalPart(user.Email)); len(violations) > 0 {
		verr := types.NewValidationError()
		verr.Add("new_password", strings.Join(violations, "; "))
		return verr
	}

	passwordHash, err := passhash.HashPassword(newPassword)
	if err != nil {
		s.log.Error(ctx, "failed to hash password", err)
		return wrap.Error(ctx, err)
	}

	if err := s.userRepo.SetPassword(ctx, userID, passwordHash); err != nil {
		s.log.Error(ctx, "failed to persist new password", err)
		return wrap.Error(ctx, err)
	}

	metrics.PasswordChangesTotal.Inc()

	if s.events != nil {
		if err := s.events.PublishPasswordChanged(ctx, user); err != nil {
			s.log.Error(ctx, "failed to publish password changed event", err)
		}
	}

	return nil
}
