package auth

import (
	"context"
	"strings"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/internal/domain/types"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/aslanbek-j/accounts-service/pkg/metrics"
	"github.com/aslanbek-j/accounts-service/pkg/passhash"
	pgclient "github.com/aslanbek-j/accounts-service/pkg/postgres"
)

type AuthService struct {
	userRepo UserRepo
	tokens   TokenProvider
	events   EventPublisher
	policy   PasswordPolicy
	log      logger.Logger
}

func NewAuthService(userRepo UserRepo, tokens TokenProvider, events EventPublisher, log logger.Logger) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
		events:   events,
		policy:   DefaultPasswordPolicy(),
		log:      log,
	}
}

// Register creates a new account and issues its first token pair.
// Uniqueness races on email/username are resolved by the store's
// constraints; the loser gets a conflict error.
func (s *AuthService) Register(ctx context.Context, req *models.UserCreateRequest) (*models.User, *models.TokenPair, error) {
	ctx = wrap.WithAction(ctx, "register_user")

	if violations := s.policy.Validate(req.Password, req.Username, emailLocalPart(req.Email)); len(violations) > 0 {
		verr := types.NewValidationError()
		verr.Add("password", strings.Join(violations, "; "))
		return nil, nil, verr
	}

	passwordHash, err := passhash.HashPassword(req.Password)
	if err != nil {
		s.log.Error(ctx, "failed to hash password", err)
		return nil, nil, wrap.Error(ctx, err)
	}

	user := &models.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: passwordHash,
		Phone:        req.Phone,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if pgclient.IsUniqueViolation(err) {
			if strings.Contains(pgclient.ConstraintName(err), "email") {
				return nil, nil, wrap.Error(ctx, types.ErrEmailTaken)
			}
			return nil, nil, wrap.Error(ctx, types.ErrUsernameTaken)
		}
		s.log.Error(ctx, "failed to save user", err)
		return nil, nil, wrap.Error(ctx, err)
	}

	tokens, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return nil, nil, wrap.Error(ctx, types.ErrTokenGenerateFail)
	}

	metrics.RegistrationsTotal.Inc()

	if s.events != nil {
		if err := s.events.PublishUserRegistered(ctx, user); err != nil {
			s.log.Error(ctx, "failed to publish user registered event", err)
		}
	}

	return user, tokens, nil
}

// Login verifies credentials and issues a token pair. The error never
// reveals which of email or password was wrong.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error) {
	ctx = wrap.WithAction(ctx, "login_user")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, nil, wrap.Error(ctx, err)
	}

	if user == nil {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, nil, wrap.Error(ctx, types.ErrInvalidCredentials)
	}

	if ok, err := passhash.VerifyPassword(password, user.PasswordHash); err != nil || !ok {
		metrics.LoginAttemptsTotal.WithLabelValues("failure").Inc()
		return nil, nil, wrap.Error(ctx, types.ErrInvalidCredentials)
	}

	tokens, err := s.tokens.Generate(ctx, user)
	if err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues("error").Inc()
		return nil, nil, wrap.Error(ctx, types.ErrTokenGenerateFail)
	}

	metrics.LoginAttemptsTotal.WithLabelValues("success").Inc()

	return tokens, user, nil
}

// Refresh exchanges a refresh token for a new access token.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error) {
	return s.tokens.Refresh(ctx, refreshToken)
}

// Logout blacklists the supplied refresh token. Already-issued access
// tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.Revoke(ctx, refreshToken)
}

// AuthCheck validates an access token and loads the user it belongs to.
func (s *AuthService) AuthCheck(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Validate(ctx, token)
	if err != nil {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	if claims.TokenType != models.AccessToken {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if user == nil {
		return nil, wrap.Error(ctx, types.ErrInvalidToken)
	}

	return user, nil
}

// emailLocalPart returns the part of an email address before the '@'.
func emailLocalPart(email string) string {
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}
