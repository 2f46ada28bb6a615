package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is the persisted account record. PasswordHash never appears in any
// serialized representation.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Phone        string     `json:"phone,omitempty"`
	Bio          string     `json:"bio,omitempty"`
	DateOfBirth  *time.Time `json:"date_of_birth,omitempty"`
	Address      string     `json:"address,omitempty"`
	City         string     `json:"city,omitempty"`
	Country      string     `json:"country,omitempty"`
	IsVerified   bool       `json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at,omitzero"`
}

// UserSummary is the compact identity shape returned next to token pairs.
type UserSummary struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Username   string    `json:"username"`
	IsVerified bool      `json:"is_verified"`
}

func (u *User) Summary() *UserSummary {
	return &UserSummary{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		IsVerified: u.IsVerified,
	}
}

type UserCreateRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// ProfileUpdate is a partial update of the mutable profile fields.
// Nil fields are left untouched. Email, verification flag and timestamps
// are not representable here and therefore cannot be written.
type ProfileUpdate struct {
	Username    *string
	Phone       *string
	Bio         *string
	DateOfBirth *time.Time
	Address     *string
	City        *string
	Country     *string
}

var anonymousUser = &User{}

// AnonymousUser represents a request without valid credentials.
func AnonymousUser() *User {
	return anonymousUser
}

func (u *User) IsAnonymous() bool {
	return u == anonymousUser
}

type userCtxKey struct{}

// WithUser injects the authenticated user into the context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userCtxKey{}, user)
}

// UserFromContext returns the user injected by the auth middleware, or nil.
func UserFromContext(ctx context.Context) *User {
	user, ok := ctx.Value(userCtxKey{}).(*User)
	if !ok {
		return nil
	}
	return user
}
