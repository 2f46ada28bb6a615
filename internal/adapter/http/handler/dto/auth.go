package dto

import (
	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/pkg/validator"
)

type RegisterRequest struct {
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	Phone     string `json:"phone"`
}

func (r *RegisterRequest) ToModel() *models.UserCreateRequest {
	return &models.UserCreateRequest{
		Email:    r.Email,
		Username: r.Username,
		Password: r.Password,
		Phone:    r.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh"`
}

func ValidateRegister(v *validator.Validator, req *RegisterRequest) {
	v.Check(req.Email != "", "email", "must be provided")
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(len(req.Email) <= 500, "email", "must not be more than 500 bytes long")

	v.Check(req.Username != "", "username", "must be provided")
	v.Check(len(req.Username) <= 150, "username", "must not be more than 150 bytes long")

	v.Check(req.Password != "", "password", "must be provided")
	v.Check(req.Password2 != "", "password", "must be confirmed")
	v.Check(req.Password == req.Password2, "password", "password fields didn't match")
	v.Check(len(req.Password) <= 128, "password", "must not be more than 128 bytes long")

	v.Check(len(req.Phone) <= 32, "phone", "must not be more than 32 bytes long")
}

func ValidateLogin(v *validator.Validator, req *LoginRequest) {
	v.Check(req.Email != "", "email", "must be provided")
	v.Check(req.Password != "", "password", "must be provided")
}

func ValidateRefresh(v *validator.Validator, req *RefreshRequest) {
	v.Check(req.Refresh != "", "refresh", "must be provided")
}
