package auth

import (
	"context"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/google/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, patch *models.ProfileUpdate) (*models.User, error)
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}

type BlacklistRepo interface {
	Add(ctx context.Context, record *models.BlacklistedToken) error
	Exists(ctx context.Context, tokenID uuid.UUID) (bool, error)
}

type TokenProvider interface {
	Generate(ctx context.Context, user *models.User) (*models.TokenPair, error)
	Validate(ctx context.Context, token string) (*models.CustomClaims, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// EventPublisher announces account lifecycle events to interested services.
// A nil publisher disables events entirely.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, user *models.User) error
	PublishPasswordChanged(ctx context.Context, user *models.User) error
}
