package handler

import (
	"context"
	"net/http"

	"github.com/aslanbek-j/accounts-service/internal/adapter/http/handler/dto"
	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/internal/domain/types"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/aslanbek-j/accounts-service/pkg/validator"
	"github.com/google/uuid"
)

type AccountService interface {
	Register(ctx context.Context, req *models.UserCreateRequest) (*models.User, *models.TokenPair, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, *models.User, error)
	Refresh(ctx context.Context, refreshToken string) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch *models.ProfileUpdate) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, oldPassword, newPassword string) error
}

type Auth struct {
	svc AccountService
	l   logger.Logger
}

func NewAuth(service AccountService, l logger.Logger) *Auth {
	return &Auth{
		svc: service,
		l:   l,
	}
}

// Register godoc
// @Summary      Register a new user
// @Description  Create an account and receive the first token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "Registration details"
// @Success      201 {object} map[string]interface{} "Created user and tokens"
// @Failure      409 {object} map[string]interface{} "Email or username taken"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Router       /auth/register [post]
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "register_user")

	req := &dto.RegisterRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateRegister(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	user, tokens, err := h.svc.Register(ctx, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to register a new user", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"user":    user,
		"message": "user registered successfully",
		"tokens": envelope{
			"access":  tokens.AccessToken,
			"refresh": tokens.RefreshToken,
		},
	}
	if err := writeJSON(w, http.StatusCreated, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Login godoc
// @Summary      User login
// @Description  Authenticate with email and password, receive a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} map[string]interface{} "Tokens and user summary"
// @Failure      401 {object} map[string]interface{} "Invalid credentials"
// @Router       /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "login_user")

	req := &dto.LoginRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateLogin(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	tokens, user, err := h.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to login user")
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
		"user":    user.Summary(),
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Refresh godoc
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh token"
// @Success      200 {object} map[string]interface{} "New access token"
// @Failure      400 {object} map[string]interface{} "Invalid refresh token"
// @Router       /auth/refresh [post]
func (h *Auth) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "refresh_token")

	req := &dto.RefreshRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateRefresh(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	tokens, err := h.svc.Refresh(ctx, req.Refresh)
	if err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to refresh access token")
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Logout godoc
// @Summary      Log out
// @Description  Blacklist the supplied refresh token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RefreshRequest true "Refresh token"
// @Success      200 {object} map[string]string "Confirmation message"
// @Failure      400 {object} map[string]string "Invalid token"
// @Security     BearerAuth
// @Router       /auth/logout [post]
func (h *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "logout_user")

	req := &dto.RefreshRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateRefresh(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	if err := h.svc.Logout(ctx, req.Refresh); err != nil {
		// A bad token is a client error with a fixed message; anything else
		// (for example, a store failure) is a server fault and must not be
		// disguised as one.
		if IsOneOf(err, types.ErrInvalidToken, types.ErrExpiredToken) {
			h.l.Warn(wrap.ErrorCtx(ctx, err), "logout with invalid refresh token")
			errorResponse(w, http.StatusBadRequest, "Invalid token")
			return
		}
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to revoke refresh token", err)
		internalErrorResponse(w, "failed to log out")
		return
	}

	response := envelope{"message": "logout successful"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
