package database

import (
	"testing"

	"github.com/koustreak/taskrepo/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBuilder(t *testing.T) {
	tests := []struct {
		name    string
		builder *SelectBuilder
		sql     string
		args    []any
	}{
		{
			name:    "select all",
			builder: Select("buckets", DialectPostgres),
			sql:     `SELECT * FROM "buckets"`,
		},
		{
			name: "postgres columns where order limit",
			builder: Select("objects", DialectPostgres).
				Columns("name", "created").
				Where("bucket_name", "=", "shop").
				OrderBy("seq", Asc).
				Limit(1),
			sql:  `SELECT "name", "created" FROM "objects" WHERE "bucket_name" = $1 ORDER BY "seq" ASC LIMIT $2`,
			args: []any{"shop", 1},
		},
		{
			name: "mysql placeholders and backticks",
			builder: Select("objects", DialectMySQL).
				Columns("name").
				Where("name", "=", "a").
				Where("bucket_name", "=", "b").
				OrderBy("seq", Desc),
			sql:  "SELECT `name` FROM `objects` WHERE `name` = ? AND `bucket_name` = ? ORDER BY `seq` DESC",
			args: []any{"a", "b"},
		},
		{
			name:    "count",
			builder: Count("buckets", DialectPostgres).Where("name", "=", "shop"),
			sql:     `SELECT COUNT(*) FROM "buckets" WHERE "name" = $1`,
			args:    []any{"shop"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := tt.builder.Build()
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestSelectBuilder_RejectsOperator(t *testing.T) {
	_, _, err := Select("buckets", DialectPostgres).Where("name", "; DROP", "x").Build()
	assert.True(t, errs.IsInvalidInput(err))
}

func TestSelectBuilder_QuotesIdentifiers(t *testing.T) {
	sql, _, err := Select(`we"ird`, DialectPostgres).Build()
	require.NoError(t, err)
	assert.Equal(t, `SELECT * FROM "we""ird"`, sql)
}

func TestInsertBuilder(t *testing.T) {
	sql, args, err := Insert("buckets", DialectPostgres).
		Set("name", "shop").
		Set("created", 42).
		Build()
	require.NoError(t, err)
	assert.Equal(t, `INSERT INTO "buckets" ("name", "created") VALUES ($1, $2)`, sql)
	assert.Equal(t, []any{"shop", 42}, args)

	sql, _, err = Insert("buckets", DialectMySQL).Set("name", "shop").Build()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO `buckets` (`name`) VALUES (?)", sql)

	_, _, err = Insert("buckets", DialectPostgres).Build()
	assert.True(t, errs.IsInvalidInput(err))
}

func TestDeleteBuilder(t *testing.T) {
	sql, args, err := Delete("objects", DialectPostgres).Where("name", "=", "widget.txt").Build()
	require.NoError(t, err)
	assert.Equal(t, `DELETE FROM "objects" WHERE "name" = $1`, sql)
	assert.Equal(t, []any{"widget.txt"}, args)

	_, _, err = Delete("objects", DialectMySQL).Build()
	assert.True(t, errs.IsInvalidInput(err))
}

func TestDriver_Dialect(t *testing.T) {
	assert.Equal(t, DialectPostgres, DriverPostgres.Dialect())
	assert.Equal(t, DialectMySQL, DriverMySQL.Dialect())
}
