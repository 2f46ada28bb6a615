package middleware

import (
	"context"

	"github.com/aslanbek-j/accounts-service/internal/domain/models"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
)

type (
	AuthService interface {
		AuthCheck(ctx context.Context, token string) (*models.User, error)
	}

	Middleware struct {
		auth AuthService
		log  logger.Logger
	}
)

func NewMiddleware(auth AuthService, log logger.Logger) *Middleware {
	return &Middleware{
		auth: auth,
		log:  log,
	}
}
