package database

import (
	"fmt"
	"strings"

	"github.com/koustreak/taskrepo/internal/errs"
)

// Dialect controls which SQL placeholder and quoting style the builders emit.
type Dialect int

const (
	// DialectPostgres uses $1, $2, … placeholders and "double-quoted" identifiers.
	DialectPostgres Dialect = iota

	// DialectMySQL uses ? placeholders and `backtick` identifiers.
	DialectMySQL
)

// validOps is the allowlist of comparison operators for WHERE clauses.
// Any operator not in this list is rejected to prevent SQL injection
// through the operator position (which cannot be parameterized).
var validOps = map[string]bool{
	"=":    true,
	"!=":   true,
	"<>":   true,
	"<":    true,
	">":    true,
	"<=":   true,
	">=":   true,
	"LIKE": true,
}

// SortDirection controls the ORDER BY direction.
type SortDirection bool

const (
	Asc  SortDirection = false
	Desc SortDirection = true
)

type whereClause struct {
	column string
	op     string
	value  any
}

type orderClause struct {
	column string
	dir    SortDirection
}

// where is shared by SELECT and DELETE builders.
type where []whereClause

func (w where) build(d Dialect, sb *strings.Builder, args []any) ([]any, error) {
	if len(w) == 0 {
		return args, nil
	}
	parts := make([]string, 0, len(w))
	for _, c := range w {
		op := strings.ToUpper(c.op)
		if !validOps[op] {
			return nil, errs.New(errs.ErrKindInvalidInput,
				fmt.Sprintf("unsupported WHERE operator: %q", c.op))
		}
		args = append(args, c.value)
		parts = append(parts, fmt.Sprintf("%s %s %s", quoteIdent(d, c.column), op, placeholder(d, len(args))))
	}
	sb.WriteString(" WHERE ")
	sb.WriteString(strings.Join(parts, " AND "))
	return args, nil
}

// SelectBuilder constructs a parameterized SELECT query using a fluent API.
// Values are never interpolated into the SQL string; they are always passed as args.
//
// Usage (Postgres):
//
//	sql, args, err := Select("objects", DialectPostgres).
//	    Columns("name", "content", "created").
//	    Where("bucket_name", "=", "shop").
//	    OrderBy("seq", Asc).
//	    Build()
type SelectBuilder struct {
	table   string
	dialect Dialect
	columns []string
	count   bool
	where   where
	orderBy []orderClause
	limit   *int
}

// Select starts a new SelectBuilder for the given table and dialect.
func Select(table string, d Dialect) *SelectBuilder {
	return &SelectBuilder{table: table, dialect: d}
}

// Count starts a SELECT COUNT(*) builder for the given table and dialect.
func Count(table string, d Dialect) *SelectBuilder {
	return &SelectBuilder{table: table, dialect: d, count: true}
}

// Columns restricts the SELECT to the specified columns.
// If not called, SELECT * is used.
func (b *SelectBuilder) Columns(cols ...string) *SelectBuilder {
	b.columns = cols
	return b
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (b *SelectBuilder) Where(column, op string, value any) *SelectBuilder {
	b.where = append(b.where, whereClause{column, op, value})
	return b
}

// OrderBy appends an ORDER BY clause for the given column and direction.
func (b *SelectBuilder) OrderBy(column string, dir SortDirection) *SelectBuilder {
	b.orderBy = append(b.orderBy, orderClause{column, dir})
	return b
}

// Limit sets the maximum number of rows to return.
func (b *SelectBuilder) Limit(n int) *SelectBuilder {
	b.limit = &n
	return b
}

// Build produces the final SQL string and argument slice.
// Returns an error if any WHERE operator is not in the allowlist.
func (b *SelectBuilder) Build() (string, []any, error) {
	cols := "*"
	switch {
	case b.count:
		cols = "COUNT(*)"
	case len(b.columns) > 0:
		quoted := make([]string, len(b.columns))
		for i, c := range b.columns {
			quoted[i] = quoteIdent(b.dialect, c)
		}
		cols = strings.Join(quoted, ", ")
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(cols)
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(b.dialect, b.table))

	args, err := b.where.build(b.dialect, &sb, nil)
	if err != nil {
		return "", nil, err
	}

	if len(b.orderBy) > 0 {
		parts := make([]string, len(b.orderBy))
		for i, o := range b.orderBy {
			dir := "ASC"
			if o.dir == Desc {
				dir = "DESC"
			}
			parts[i] = fmt.Sprintf("%s %s", quoteIdent(b.dialect, o.column), dir)
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(parts, ", "))
	}

	if b.limit != nil {
		args = append(args, *b.limit)
		sb.WriteString(" LIMIT ")
		sb.WriteString(placeholder(b.dialect, len(args)))
	}

	return sb.String(), args, nil
}

// InsertBuilder constructs a single-row parameterized INSERT.
type InsertBuilder struct {
	table   string
	dialect Dialect
	columns []string
	values  []any
}

// Insert starts a new InsertBuilder for the given table and dialect.
func Insert(table string, d Dialect) *InsertBuilder {
	return &InsertBuilder{table: table, dialect: d}
}

// Set adds a column and its value. Columns are emitted in call order.
func (b *InsertBuilder) Set(column string, value any) *InsertBuilder {
	b.columns = append(b.columns, column)
	b.values = append(b.values, value)
	return b
}

// Build produces the final SQL string and argument slice.
func (b *InsertBuilder) Build() (string, []any, error) {
	if len(b.columns) == 0 {
		return "", nil, errs.New(errs.ErrKindInvalidInput, "insert without columns")
	}
	cols := make([]string, len(b.columns))
	marks := make([]string, len(b.columns))
	for i, c := range b.columns {
		cols[i] = quoteIdent(b.dialect, c)
		marks[i] = placeholder(b.dialect, i+1)
	}
	sql := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(b.dialect, b.table), strings.Join(cols, ", "), strings.Join(marks, ", "))
	return sql, b.values, nil
}

// DeleteBuilder constructs a parameterized DELETE.
type DeleteBuilder struct {
	table   string
	dialect Dialect
	where   where
}

// Delete starts a new DeleteBuilder for the given table and dialect.
func Delete(table string, d Dialect) *DeleteBuilder {
	return &DeleteBuilder{table: table, dialect: d}
}

// Where adds a WHERE condition. Multiple calls are combined with AND.
func (b *DeleteBuilder) Where(column, op string, value any) *DeleteBuilder {
	b.where = append(b.where, whereClause{column, op, value})
	return b
}

// Build produces the final SQL string and argument slice.
// A DELETE without a WHERE clause is refused.
func (b *DeleteBuilder) Build() (string, []any, error) {
	if len(b.where) == 0 {
		return "", nil, errs.New(errs.ErrKindInvalidInput, "delete without where clause")
	}
	var sb strings.Builder
	sb.WriteString("DELETE FROM ")
	sb.WriteString(quoteIdent(b.dialect, b.table))
	args, err := b.where.build(b.dialect, &sb, nil)
	if err != nil {
		return "", nil, err
	}
	return sb.String(), args, nil
}

// placeholder returns the correct parameter placeholder for the dialect.
// Postgres: $1, $2, …   MySQL: ? (index is ignored)
func placeholder(d Dialect, idx int) string {
	if d == DialectMySQL {
		return "?"
	}
	return fmt.Sprintf("$%d", idx)
}

// quoteIdent quotes a SQL identifier for the dialect, which safely handles
// reserved words and mixed-case names.
func quoteIdent(d Dialect, name string) string {
	if d == DialectMySQL {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
