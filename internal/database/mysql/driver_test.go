package mysql

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/koustreak/taskrepo/internal/database"
	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind errs.ErrKind
	}{
		{"deadline", context.DeadlineExceeded, errs.ErrKindTimeout},
		{"no rows", sql.ErrNoRows, errs.ErrKindNotFound},
		{"duplicate entry", &gomysql.MySQLError{Number: errDuplicateEntry, Message: "Duplicate entry"}, errs.ErrKindConflict},
		{"foreign key", &gomysql.MySQLError{Number: errRowIsReferenced}, errs.ErrKindConflict},
		{"data too long", &gomysql.MySQLError{Number: errDataTooLong, Message: "Data too long for column 'name' at row 1"}, errs.ErrKindInvalidInput},
		{"access denied", &gomysql.MySQLError{Number: errAccessDenied}, errs.ErrKindPermissionDenied},
		{"unknown database", &gomysql.MySQLError{Number: errUnknownDatabase}, errs.ErrKindConnectionFailed},
		{"syntax", &gomysql.MySQLError{Number: 1064}, errs.ErrKindQueryFailed},
		{"network", errors.New("dial tcp: refused"), errs.ErrKindConnectionFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err, "op")
			assert.Equal(t, tt.kind, got.Kind)
			assert.ErrorIs(t, got, tt.err)
		})
	}
}

func TestNormaliseDSN(t *testing.T) {
	dsn, err := normaliseDSN("repo:secret@tcp(db:3306)/taskrepo")
	require.NoError(t, err)

	cfg, err := gomysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.True(t, cfg.ParseTime)
	assert.Equal(t, "UTC", cfg.Loc.String())
	assert.Equal(t, "taskrepo", cfg.DBName)
	assert.Equal(t, "db:3306", cfg.Addr)

	_, err = normaliseDSN("not a dsn")
	assert.Error(t, err)
}

func TestBuildPool(t *testing.T) {
	_, err := buildPool(&database.Config{DSN: "not a dsn"})
	assert.True(t, errs.IsInvalidInput(err))

	db, err := buildPool(database.DefaultConfig(database.DriverMySQL, "repo:secret@tcp(db:3306)/taskrepo"))
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, 10, db.Stats().MaxOpenConnections)
}
