package main

import (
	"fmt"

	log "github.com/charmbracelet/log"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/infra"
	"github.com/felipecesargomes/banking-api/infra/initializer"
	infrarepo "github.com/felipecesargomes/banking-api/infra/repository"
	"github.com/felipecesargomes/banking-api/pkg/app"
	"github.com/felipecesargomes/banking-api/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	logger := initializer.SetupLogger(cfg.Log)

	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	application := app.New(infrarepo.NewUoW(db), cfg, logger)
	fiberApp := webapi.SetupApp(application)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "env", cfg.Env, "address", addr)
	return fiberApp.Listen(addr)
}
