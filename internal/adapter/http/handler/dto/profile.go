package dto

import (
	"time"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/pkg/validator"
)

const dateLayout = "2006-01-02"

// UpdateProfileRequest carries a partial profile update. Email and
// IsVerified are accepted so clients may echo the profile back as-is, but
// they never reach the store: both fields are read-only.
type UpdateProfileRequest struct {
	Username    *string `json:"username"`
	Phone       *string `json:"phone"`
	Bio         *string `json:"bio"`
	DateOfBirth *string `json:"date_of_birth"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Country     *string `json:"country"`

	// read-only, silently ignored
	Email      *string `json:"email"`
	IsVerified *bool   `json:"is_verified"`
}

func (r *UpdateProfileRequest) ToModel() *models.ProfileUpdate {
	patch := &models.ProfileUpdate{
		Username: r.Username,
		Phone:    r.Phone,
		Bio:      r.Bio,
		Address:  r.Address,
		City:     r.City,
		Country:  r.Country,
	}

	if r.DateOfBirth != nil {
		if dob, err := time.Parse(dateLayout, *r.DateOfBirth); err == nil {
			patch.DateOfBirth = &dob
		}
	}

	return patch
}

func ValidateUpdateProfile(v *validator.Validator, req *UpdateProfileRequest) {
	if req.Username != nil {
		v.Check(*req.Username != "", "username", "must not be empty")
		v.Check(len(*req.Username) <= 150, "username", "must not be more than 150 bytes long")
	}

	if req.Phone != nil {
		v.Check(len(*req.Phone) <= 32, "phone", "must not be more than 32 bytes long")
	}

	if req.Bio != nil {
		v.Check(len(*req.Bio) <= 1000, "bio", "must not be more than 1000 bytes long")
	}

	if req.DateOfBirth != nil {
		_, err := time.Parse(dateLayout, *req.DateOfBirth)
		v.Check(err == nil, "date_of_birth", "must be a valid date in YYYY-MM-DD format")
	}
}

type ChangePasswordRequest struct {
	OldPassword  string `json:"old_password"`
	NewPassword  string `json:"new_password"`
	NewPassword2 string `json:"new_password2"`
}

func ValidateChangePassword(v *validator.Validator, req *ChangePasswordRequest) {
	v.Check(req.OldPassword != "", "old_password", "must be provided")

	v.Check(req.NewPassword != "", "new_password", "must be provided")
	v.Check(req.NewPassword2 != "", "new_password", "must be confirmed")
	v.Check(req.NewPassword == req.NewPassword2, "new_password", "password fields didn't match")
	v.Check(len(req.NewPassword) <= 128, "new_password", "must not be more than 128 bytes long")
}
