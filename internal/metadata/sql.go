package metadata

import (
	"context"
	"time"

	"github.com/koustreak/taskrepo/internal/database"
	"github.com/koustreak/taskrepo/internal/errs"
)

const (
	bucketsTable = "buckets"
	objectsTable = "objects"
)

var (
	bucketColumns = []string{"name", "created"}
	objectColumns = []string{"name", "bucket_name", "content_type", "content", "created"}
)

// Names are primary keys so a racing duplicate insert fails with
// errs.ErrKindConflict instead of creating a second record.
var schemaDDL = map[database.Dialect][]string{
	database.DialectPostgres: {
		`CREATE TABLE IF NOT EXISTS "buckets" (
			"name"    TEXT        PRIMARY KEY,
			"created" TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS "objects" (
			"name"         TEXT        PRIMARY KEY,
			"bucket_name"  TEXT        NOT NULL,
			"content_type" TEXT        NOT NULL,
			"content"      TEXT        NOT NULL,
			"created"      TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS "objects_bucket_name_idx" ON "objects" ("bucket_name")`,
	},
	database.DialectMySQL: {
		"CREATE TABLE IF NOT EXISTS `buckets` (" +
			"`name` VARCHAR(768) NOT NULL PRIMARY KEY, " +
			"`created` DATETIME(6) NOT NULL" +
			") CHARACTER SET utf8mb4 COLLATE utf8mb4_bin",
		"CREATE TABLE IF NOT EXISTS `objects` (" +
			"`name` VARCHAR(768) NOT NULL PRIMARY KEY, " +
			"`bucket_name` VARCHAR(768) NOT NULL, " +
			"`content_type` VARCHAR(255) NOT NULL, " +
			"`content` VARCHAR(255) NOT NULL, " +
			"`created` DATETIME(6) NOT NULL, " +
			"INDEX `objects_bucket_name_idx` (`bucket_name`)" +
			") CHARACTER SET utf8mb4 COLLATE utf8mb4_bin",
	},
}

// SQLStore is a Store backed by any database.DB (Postgres or MySQL).
// It is safe for concurrent use; consistency beyond single statements is
// left to the database.
type SQLStore struct {
	db      database.DB
	dialect database.Dialect
}

// NewSQLStore wraps db. Call Migrate once before serving requests.
func NewSQLStore(db database.DB, dialect database.Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// Migrate creates the buckets and objects tables when they are missing.
func (s *SQLStore) Migrate(ctx context.Context) error {
	for _, stmt := range schemaDDL[s.dialect] {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLStore) Ping(ctx context.Context) error { return s.db.Ping(ctx) }
func (s *SQLStore) Close()                         { s.db.Close() }

func (s *SQLStore) FindBuckets(ctx context.Context) ([]Bucket, error) {
	q, args, err := database.Select(bucketsTable, s.dialect).
		Columns(bucketColumns...).
		OrderBy("created", database.Asc).
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	out := make([]Bucket, 0)
	err = database.ScanRows(rows, func(row database.Row) error {
		var b Bucket
		if err := row.Scan(&b.Name, &b.Created); err != nil {
			return err
		}
		b.Created = b.Created.UTC()
		out = append(out, b)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) FindBucket(ctx context.Context, name string) (*Bucket, error) {
	q, args, err := database.Select(bucketsTable, s.dialect).
		Columns(bucketColumns...).
		Where("name", "=", name).
		Limit(1).
		Build()
	if err != nil {
		return nil, err
	}

	var b Bucket
	if err := s.db.QueryRow(ctx, q, args...).Scan(&b.Name, &b.Created); err != nil {
		return nil, err
	}
	b.Created = b.Created.UTC()
	return &b, nil
}

func (s *SQLStore) CountBuckets(ctx context.Context, name string) (int, error) {
	return s.count(ctx, bucketsTable, name)
}

func (s *SQLStore) InsertBucket(ctx context.Context, b Bucket) error {
	q, args, err := database.Insert(bucketsTable, s.dialect).
		Set("name", b.Name).
		Set("created", b.Created.UTC()).
		Build()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, q, args...)
	return err
}

func (s *SQLStore) RemoveBucket(ctx context.Context, name string) error {
	return s.remove(ctx, bucketsTable, name, "bucket not found")
}

func (s *SQLStore) FindObjects(ctx context.Context, bucket string) ([]Object, error) {
	q, args, err := database.Select(objectsTable, s.dialect).
		Columns(objectColumns...).
		Where("bucket_name", "=", bucket).
		OrderBy("created", database.Asc).
		Build()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}

	out := make([]Object, 0)
	err = database.ScanRows(rows, func(row database.Row) error {
		o, err := scanObject(row)
		if err != nil {
			return err
		}
		out = append(out, *o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLStore) FindObject(ctx context.Context, name string) (*Object, error) {
	q, args, err := database.Select(objectsTable, s.dialect).
		Columns(objectColumns...).
		Where("name", "=", name).
		Limit(1).
		Build()
	if err != nil {
		return nil, err
	}
	return scanObject(s.db.QueryRow(ctx, q, args...))
}

func (s *SQLStore) CountObjects(ctx context.Context, name string) (int, error) {
	return s.count(ctx, objectsTable, name)
}

func (s *SQLStore) InsertObject(ctx context.Context, o Object) error {
	q, args, err := database.Insert(objectsTable, s.dialect).
		Set("name", o.Name).
		Set("bucket_name", o.BucketName).
		Set("content_type", o.ContentType).
		Set("content", o.Content).
		Set("created", o.Created.UTC()).
		Build()
	if err != nil {
		return err
	}
	_, err = s.db.Exec(ctx, q, args...)
	return err
}

func (s *SQLStore) RemoveObject(ctx context.Context, name string) error {
	return s.remove(ctx, objectsTable, name, "object not found")
}

// --- helpers ---

func (s *SQLStore) count(ctx context.Context, table, name string) (int, error) {
	q, args, err := database.Count(table, s.dialect).Where("name", "=", name).Build()
	if err != nil {
		return 0, err
	}
	var n int64
	if err := s.db.QueryRow(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *SQLStore) remove(ctx context.Context, table, name, missing string) error {
	q, args, err := database.Delete(table, s.dialect).Where("name", "=", name).Build()
	if err != nil {
		return err
	}
	n, err := s.db.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.New(errs.ErrKindNotFound, missing)
	}
	return nil
}

func scanObject(row database.Row) (*Object, error) {
	var (
		o       Object
		created time.Time
	)
	if err := row.Scan(&o.Name, &o.BucketName, &o.ContentType, &o.Content, &created); err != nil {
		return nil, err
	}
	o.Created = created.UTC()
	return &o, nil
}
