package app

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aslanbek-j/accounts-service/config"
	httpserver "github.com/aslanbek-j/accounts-service/internal/adapter/http/server"
	"github.com/aslanbek-j/accounts-service/internal/adapter/postgres"
	rabbitadapter "github.com/aslanbek-j/accounts-service/internal/adapter/rabbit"
	"github.com/aslanbek-j/accounts-service/internal/migrations"
	"github.com/aslanbek-j/accounts-service/internal/service/auth"
	"github.com/aslanbek-j/accounts-service/pkg/logger"
	postgresclient "github.com/aslanbek-j/accounts-service/pkg/postgres"
	rabbitclient "github.com/aslanbek-j/accounts-service/pkg/rabbit"
	"github.com/aslanbek-j/accounts-service/pkg/trm"
	"github.com/pressly/goose/v3"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// App owns every long-lived resource of the accounts service and wires
// them together.
type App struct {
	postgresDB *postgresclient.PostgresDB
	rabbitMQ   *rabbitclient.RabbitMQ
	httpServer *httpserver.API

	cfg config.Config
	log logger.Logger
}

func New(ctx context.Context, cfg config.Config, log logger.Logger) (*App, error) {
	db, err := postgresclient.New(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if err := runMigrations(ctx, cfg.Database.GetDSN()); err != nil {
		db.Pool.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// repositories
	userRepo := postgres.NewUserRepo(db.Pool)
	blacklistRepo := postgres.NewTokenBlacklistRepo(db.Pool)

	txManager := trm.New(db.Pool)

	// event broker is optional: the service works without RabbitMQ
	var (
		rabbitMQ *rabbitclient.RabbitMQ
		events   auth.EventPublisher
	)
	if cfg.RabbitMQ.Enabled {
		rabbitMQ, err = rabbitclient.New(ctx, cfg.RabbitMQ.GetDSN(), log)
		if err != nil {
			db.Pool.Close()
			return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
		}

		broker, err := rabbitadapter.NewAccountBroker(ctx, rabbitMQ, log)
		if err != nil {
			db.Pool.Close()
			return nil, fmt.Errorf("failed to init account broker: %w", err)
		}
		events = broker
	}

	// services
	tokenSvc := auth.NewTokenService(
		cfg.Auth.JWTSecret,
		userRepo,
		blacklistRepo,
		txManager,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
		log,
	)
	authSvc := auth.NewAuthService(userRepo, tokenSvc, events, log)

	server, err := httpserver.New(cfg, authSvc, authSvc, log)
	if err != nil {
		db.Pool.Close()
		return nil, fmt.Errorf("failed to init http server: %w", err)
	}

	return &App{
		postgresDB: db,
		rabbitMQ:   rabbitMQ,
		httpServer: server,
		cfg:        cfg,
		log:        log,
	}, nil
}

func (a *App) Start(ctx context.Context) error {
	defer func() {
		a.close(ctx)
		a.log.Info(ctx, "accounts service closed")
	}()

	errCh := make(chan error, 1)
	a.httpServer.Run(ctx, errCh)

	// Waiting signal
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	a.log.Info(ctx, "service started")
	select {
	case errRun := <-errCh:
		return errRun
	case sig := <-shutdownCh:
		a.log.Info(ctx, "shutting down application", "signal", sig.String())
		return nil
	}
}

func (a *App) close(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	if err := a.httpServer.Stop(ctx); err != nil {
		a.log.Error(ctx, "failed to shutdown HTTP server", err)
	}

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(ctx); err != nil {
			a.log.Error(ctx, "failed to close rabbitmq connection", err)
		}
	}

	a.postgresDB.Pool.Close()
}

// runMigrations applies the embedded SQL migrations through goose. It uses
// a dedicated database/sql connection because goose does not speak pgxpool.
func runMigrations(ctx context.Context, dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
