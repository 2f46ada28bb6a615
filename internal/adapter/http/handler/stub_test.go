package handler

import (
	"context"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/google/uuid"
)

// stubAccountService lets each test plug in just the methods it needs.
type stubAccountService struct {
	registerFn       func(ctx context.Context, req *models.UserCreateRequest) (*models.User, *models.TokenPair, error)
	loginFn          func(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	logoutFn         func(ctx context.Context, refreshToken string) error
	profileFn        func(ctx context.Context, userID uuid.UUID) (*models.User, error)
	updateProfileFn  func(ctx context.Context, userID uuid.UUID, patch *models.ProfileUpdate) (*models.User, error)
	changePasswordFn func(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

func (s *stubAccountService) Register(ctx context.Context, req *models.UserCreateRequest) (*models.User, *models.TokenPair, error) {
	return s.registerFn(ctx, req)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return s.refreshFn(ctx, refreshToken)
}

func (s *stubAccountService) Logout(ctx context.Context, refreshToken string) error {
	return s.logoutFn(ctx, refreshToken)
}

func (s *stubAccountService) Profile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.profileFn(ctx, userID)
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch *models.ProfileUpdate) (*models.User, error) {
	return s.updateProfileFn(ctx, userID, patch)
}

func (s *stubAccountService) ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error {
	return s.changePasswordFn(ctx, userID, oldPassword, newPassword)
}
