package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aslanbek-j/accounts-service/config"
	"github.com/aslanbek-j/accounts-service/internal/adapter/http/handler"
	"github.com/aslanbek-j/accounts-service/internal/adapter/http/middleware"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	wrap "github.com/aslanbek-j/accounts-service/pkg/logger/wrapper"
)

const serviceName = "accounts"

type API struct {
	mux    *http.ServeMux
	server *http.Server
	routes *handlers
	m      *middleware.Middleware

	addr string
	cfg  config.Config
	log  logger.Logger
}

type handlers struct {
	auth    *handler.Auth
	profile *handler.Profile
	health  *handler.Health
}

func New(
	cfg config.Config,
	accountService handler.AccountService,
	authChecker middleware.AuthService,
	logger logger.Logger,
) (*API, error) {
	if accountService == nil {
		return nil, errors.New("account service is required")
	}

	routes := &handlers{
		auth:    handler.NewAuth(accountService, logger),
		profile: handler.NewProfile(accountService, logger),
		health:  handler.NewHealth(serviceName, logger),
	}

	mid := middleware.NewMiddleware(authChecker, logger)

	api := &API{
		mux:    http.NewServeMux(),
		routes: routes,
		m:      mid,
		addr:   fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port),
		cfg:    cfg,
		log:    logger,
	}

	api.server = &http.Server{
		Addr:    api.addr,
		Handler: api.withMiddleware(),
	}

	api.setupRoutes()

	return api, nil
}

func (a *API) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	ctx = wrap.WithAction(ctx, "http_server_stop")

	a.log.Debug(ctx, "shutting down HTTP server...", "address", a.addr)
	if err := a.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("error shutting down server: %w", err)
	}
	a.log.Debug(ctx, "shutting down HTTP server completed")

	return nil
}

func (a *API) Run(ctx context.Context, errCh chan<- error) {
	go func() {
		ctx = wrap.WithAction(ctx, "http_server_start")
		a.log.Info(ctx, "started http server", "address", a.addr)
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to start HTTP server: %w", err)
			return
		}
	}()
}

// withMiddleware applies middlewares to the mux
func (a *API) withMiddleware() http.Handler {
	return a.m.Recover(a.m.RequestID(a.m.Logging(a.m.Metrics(serviceName)(a.m.Auth(a.mux)))))
}
