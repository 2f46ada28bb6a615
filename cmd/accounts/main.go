package main

import (
	"context"
	"flag"
	"os"

	"github.com/aslanbek-j/accounts-service/config"
	"github.com/aslanbek-j/accounts-service/internal/app"
	"github.com/aslanbek-j/accounts-service/pkg/logger"

	_ "github.com/aslanbek-j/accounts-service/docs"
)

var (
	helpFlag   = flag.Bool("help", false, "Show help message")
	configPath = flag.String("config-path", "config.yaml", "Path to the config yaml file")
)

func main() {
	flag.Parse()
	if *helpFlag {
		config.PrintHelp()
		return
	}

	ctx := context.Background()
	log := logger.InitLogger("accounts", logger.LevelInfo)

	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		log.Error(ctx, "failed to configure application", err)
		config.PrintHelp()
		os.Exit(1)
	}

	if logger.ValidateLogLevel(cfg.LogLevel) {
		log = logger.InitLogger("accounts", cfg.LogLevel)
	}

	// Creating application
	application, err := app.New(ctx, *cfg, log)
	if err != nil {
		log.Error(ctx, "failed to init application", err)
		os.Exit(1)
	}

	// Running the application
	if err := application.Start(ctx); err != nil {
		log.Error(ctx, "application stopped with error", err)
		os.Exit(1)
	}
}
