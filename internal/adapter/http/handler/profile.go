package handler

import (
	"net/http"

	"github.com/aslanbek-j/accounts-service/internal/adapter/http/handler/dto"
	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
	"github.com/aslanbek-j/accounts-service/pkg/validator"
)

type Profile struct {
	svc AccountService
	l   logger.Logger
}

func NewProfile(service AccountService, l logger.Logger) *Profile {
	return &Profile{
		svc: service,
		l:   l,
	}
}

// Get godoc
// @Summary      Get profile
// @Description  Return the authenticated user's profile
// @Tags         profile
// @Produce      json
// @Success      200 {object} models.User "User profile"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Security     BearerAuth
// @Router       /auth/profile [get]
func (h *Profile) Get(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "get_profile")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	response := envelope{"user": user}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(ctx, "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// Update godoc
// @Summary      Update profile
// @Description  Partially update the profile; email and is_verified are read-only and silently ignored
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body dto.UpdateProfileRequest true "Profile fields"
// @Success      200 {object} models.User "Updated profile"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      409 {object} map[string]string "Username taken"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /auth/profile [patch]
func (h *Profile) Update(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "update_profile")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	req := &dto.UpdateProfileRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateUpdateProfile(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	updated, err := h.svc.UpdateProfile(ctx, user.ID, req.ToModel())
	if err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to update profile", err)
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{"user": updated}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}

// ChangePassword godoc
// @Summary      Change password
// @Description  Verify the old password and set a new one
// @Tags         profile
// @Accept       json
// @Produce      json
// @Param        request body dto.ChangePasswordRequest true "Passwords"
// @Success      200 {object} map[string]string "Confirmation message"
// @Failure      401 {object} map[string]string "Unauthorized"
// @Failure      422 {object} map[string]interface{} "Validation error"
// @Security     BearerAuth
// @Router       /auth/change-password [post]
func (h *Profile) ChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := wrap.WithAction(r.Context(), "change_password")

	user := models.UserFromContext(ctx)
	if user == nil || user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	req := &dto.ChangePasswordRequest{}
	if err := readJSON(w, r, req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	dto.ValidateChangePassword(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	if err := h.svc.ChangePassword(ctx, user.ID, req.OldPassword, req.NewPassword); err != nil {
		h.l.Warn(wrap.ErrorCtx(ctx, err), "failed to change password")
		serviceErrorResponse(w, err)
		return
	}

	response := envelope{"message": "password changed successfully"}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		h.l.Error(wrap.ErrorCtx(ctx, err), "failed to write JSON response", err)
		internalErrorResponse(w, "failed to write JSON response")
	}
}
