package mysql

import (
	"database/sql"
	"time"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/taskrepo/internal/database"
	"github.com/koustreak/taskrepo/internal/errs"
)

const (
	defaultMaxOpenConns = 10
	defaultMaxIdleConns = 2
)

// buildPool configures and returns a *sql.DB with pool settings.
// It does not connect; the first Ping does.
func buildPool(cfg *database.Config) (*sql.DB, error) {
	dsn, err := normaliseDSN(cfg.DSN)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindInvalidInput, "invalid mysql DSN", err)
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, errs.Wrap(errs.ErrKindConnectionFailed, "failed to open mysql", err)
	}

	maxOpen := int(cfg.MaxConns)
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := int(cfg.MinConns)
	if maxIdle == 0 {
		maxIdle = defaultMaxIdleConns
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	db.SetConnMaxIdleTime(cfg.MaxConnIdleTime)

	return db, nil
}

// normaliseDSN forces time parsing in UTC regardless of what the DSN says.
func normaliseDSN(dsn string) (string, error) {
	c, err := gomysql.ParseDSN(dsn)
	if err != nil {
		return "", err
	}
	c.ParseTime = true
	c.Loc = time.UTC
	return c.FormatDSN(), nil
}
