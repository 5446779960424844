// Package app assembles the service graph from its dependencies.
package app

import (
	"log/slog"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/pkg/repository"
	accountsvc "github.com/felipecesargomes/banking-api/pkg/service/account"
	authsvc "github.com/felipecesargomes/banking-api/pkg/service/auth"
	"github.com/felipecesargomes/banking-api/pkg/service/ledger"
)

// App holds the wired services consumed by the HTTP layer.
type App struct {
	Config *config.App
	Logger *slog.Logger

	AccountService *accountsvc.Service
	LedgerService  *ledger.Service
	AuthService    *authsvc.AuthService
}

// New wires the services on top of the given unit of work.
func New(uow repository.UnitOfWork, cfg *config.App, logger *slog.Logger) *App {
	return &App{
		Config: cfg,
		Logger: logger,
		AccountService: accountsvc.NewService(uow, logger),
		LedgerService: ledger.NewService(uow, logger,
			ledger.WithCommitRetries(cfg.Ledger.CommitRetries)),
		AuthService: authsvc.NewAuthService(cfg.Jwt, logger),
	}
}
