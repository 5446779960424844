// Package infra wires the application to its external resources: the
// Postgres database and the schema it expects.
package infra

import (
	"errors"
	"time"

	"github.com/felipecesargomes/banking-api/config"
	"github.com/felipecesargomes/banking-api/infra/repository"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDBConnection opens a pooled Postgres connection and migrates the schema.
func NewDBConnection(cnf config.DB, appEnv string) (*gorm.DB, error) {
	databaseUrl := cnf.Url
	if databaseUrl == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}

	var logMode logger.LogLevel
	if appEnv == "development" {
		logMode = logger.Info
	} else {
		logMode = logger.Silent
	}

	connection, err := gorm.Open(postgres.Open(databaseUrl), &gorm.Config{
		Logger:                 logger.Default.LogMode(logMode),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := connection.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(1 * time.Hour)

	if err := migrate(connection); err != nil {
		return nil, err
	}
	return connection, nil
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&repository.Account{}, &repository.Operation{}); err != nil {
		return err
	}
	// Partial unique index backing the one-active-account-per-(owner, kind)
	// invariant; the in-transaction duplicate check races without it.
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_accounts_owner_kind_active
		 ON accounts (owner_id, kind) WHERE active`,
	).Error
}
