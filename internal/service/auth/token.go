package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/internal/domain/types"
	"github.com/aslanbek-j/accounts-service/pkg/hasher"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/aslanbek-j/accounts-service/pkg/metrics"
	"github.com/aslanbek-j/accounts-service/pkg/trm"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type TokenService struct {
	userRepo   UserRepo
	blacklist  BlacklistRepo
	txManager  trm.TxManager
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	secret     string
	log        logger.Logger
}

func NewTokenService(secret string, userRepo UserRepo, blacklist BlacklistRepo, txManager trm.TxManager, accessTTL, refreshTTL time.Duration, log logger.Logger) *TokenService {
	return &TokenService{
		userRepo:   userRepo,
		blacklist:  blacklist,
		txManager:  txManager,
		AccessTTL:  accessTTL,
		RefreshTTL: refreshTTL,
		secret:     secret,
		log:        log,
	}
}

func (s *TokenService) getSecret() string {
	return s.secret
}

// Generate creates a new pair of access and refresh tokens for the given
// user. Nothing is persisted at issuance time: a refresh token is valid
// until it expires or its jti lands in the blacklist.
func (s *TokenService) Generate(ctx context.Context, user *models.User) (*models.TokenPair, error) {
	ctx = wrap.WithAction(ctx, "generate_tokens")
	if user == nil {
		return nil, wrap.Error(ctx, errors.New("user is nil"))
	}

	issuedAt := time.Now().UTC()
	accessExp := issuedAt.Add(s.AccessTTL)
	refreshExp := issuedAt.Add(s.RefreshTTL)

	accessToken, err := s.signClaims(newAccessClaims(user, issuedAt, accessExp, uuid.New()))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	refreshToken, err := s.signClaims(newRefreshClaims(user, issuedAt, refreshExp, uuid.New()))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return &models.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// Refresh mints a new access token for the holder of a valid,
// non-blacklisted refresh token. The refresh token itself is returned
// unchanged: revocation is the only way it stops working before expiry.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	ctx = wrap.WithAction(ctx, "refresh_token")

	claims, err := s.Validate(ctx, refreshToken)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if claims.TokenType != models.RefreshToken {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	blacklisted, err := s.blacklist.Exists(ctx, claims.TokenID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to check token blacklist: %w", err))
	}
	if blacklisted {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("failed to load user for refresh token: %w", err))
	}
	if user == nil {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	issuedAt := time.Now().UTC()
	accessExp := issuedAt.Add(s.AccessTTL)

	accessToken, err := s.signClaims(newAccessClaims(user, issuedAt, accessExp, uuid.New()))
	if err != nil {
		return nil, wrap.Error(ctx, types.ErrTokenGenerateFail)
	}

	metrics.TokenRefreshesTotal.Inc()

	return &models.TokenPair{
		AccessToken:      accessToken,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Revoke blacklists a refresh token so it can no longer be exchanged for
// new access tokens. A malformed, expired or already-blacklisted token is
// reported as types.ErrInvalidToken; store failures propagate as-is.
func (s *TokenService) Revoke(ctx context.Context, refreshToken string) error {
	ctx = wrap.WithAction(ctx, "revoke_token")

	claims, err := s.Validate(ctx, refreshToken)
	if err != nil {
		return wrap.Error(ctx, err)
	}

	if claims.TokenType != models.RefreshToken {
		return wrap.Error(ctx, types.ErrInvalidToken)
	}

	// Check-then-insert inside one transaction so concurrent revocations of
	// the same token cannot both succeed.
	txErr := s.txManager.Do(ctx, func(txCtx context.Context) error {
		blacklisted, err := s.blacklist.Exists(txCtx, claims.TokenID)
		if err != nil {
			return fmt.Errorf("failed to check token blacklist: %w", err)
		}
		if blacklisted {
			return types.ErrInvalidToken
		}

		record := &models.BlacklistedToken{
			ID:        claims.TokenID,
			UserID:    claims.UserID,
			TokenHash: hasher.Hash(refreshToken),
			ExpiresAt: claims.ExpiresAt.Time,
		}

		if err := s.blacklist.Add(txCtx, record); err != nil {
			return fmt.Errorf("failed to blacklist refresh token: %w", err)
		}

		return nil
	})
	if txErr != nil {
		return wrap.Error(ctx, txErr)
	}

	metrics.TokenRevocationsTotal.Inc()

	return nil
}

// Validate validates the given JWT token string, returning the custom claims if valid.
func (s *TokenService) Validate(ctx context.Context, token string) (*models.CustomClaims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	parsedToken, err := jwt.ParseWithClaims(token, jwt.MapClaims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, types.ErrInvalidToken
		}
		return []byte(s.getSecret()), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrap.Error(ctx, types.ErrExpiredToken)
		}
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}
	if !parsedToken.Valid {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	mc, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	typ, _ := mc["typ"].(string)
	if !models.IsValidTokenType(typ) {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	userIDStr, _ := mc["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	tokenIDStr, _ := mc["jti"].(string)
	tokenID, err := uuid.Parse(tokenIDStr)
	if err != nil {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	expFloat, ok := mc["exp"].(float64)
	if !ok {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	expTime := time.Unix(int64(expFloat), 0).UTC()
	if time.Now().UTC().After(expTime) {
		return nil, wrap.Error(ctx, types.ErrExpiredToken)
	}

	email, _ := mc["email"].(string)
	username, _ := mc["username"].(string)
	isVerified, _ := mc["is_verified"].(bool)

	claims := &models.CustomClaims{
		UserID:     userID,
		TokenID:    tokenID,
		TokenType:  typ,
		Email:      email,
		Username:   username,
		IsVerified: isVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expTime),
		},
	}

	return claims, nil
}

func (s *TokenService) signClaims(claims jwt.Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.getSecret()))
}

func newAccessClaims(user *models.User, issuedAt, expiresAt time.Time, tokenID uuid.UUID) jwt.Claims {
	return jwt.MapClaims{
		"typ":         models.AccessToken,
		"jti":         tokenID.String(),
		"user_id":     user.ID.String(),
		"email":       user.Email,
		"username":    user.Username,
		"is_verified": user.IsVerified,
		"iat":         issuedAt.Unix(),
		"exp":         expiresAt.Unix(),
	}
}

func newRefreshClaims(user *models.User, issuedAt, expiresAt time.Time, tokenID uuid.UUID) jwt.Claims {
	return jwt.MapClaims{
		"typ":     models.RefreshToken,
		"jti":     tokenID.String(),
		"user_id": user.ID.String(),
		"iat":     issuedAt.Unix(),
		"exp":     expiresAt.Unix(),
	}
}
