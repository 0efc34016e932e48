package main

import (
	"context"
	"fmt"

	"github.com/koustreak/taskrepo/internal/config"
	"github.com/koustreak/taskrepo/internal/database"
	"github.com/koustreak/taskrepo/internal/database/mysql"
	"github.com/koustreak/taskrepo/internal/database/postgres"
	"github.com/koustreak/taskrepo/internal/filestore"
	"github.com/koustreak/taskrepo/internal/filestore/memory"
	"github.com/koustreak/taskrepo/internal/filestore/minio"
	"github.com/koustreak/taskrepo/internal/logger"
	"github.com/koustreak/taskrepo/internal/metadata"
)

// openMetadata connects the configured metadata store. SQL drivers ping on
// connect; their tables are created when missing.
func openMetadata(ctx context.Context, cfg *config.Config, log *logger.Logger) (metadata.Store, error) {
	driver := cfg.Metadata.Driver
	log = log.With().Str("metadata_driver", driver).Logger()

	if driver == config.DriverMemory {
		log.Warn("Metadata kept in memory; it is lost on restart")
		return metadata.NewMemoryStore(), nil
	}

	dbCfg := cfg.DatabaseConfig()
	var (
		db  database.DB
		err error
	)
	switch dbCfg.Driver {
	case database.DriverPostgres:
		db, err = postgres.New(ctx, dbCfg)
	case database.DriverMySQL:
		db, err = mysql.New(ctx, dbCfg)
	default:
		return nil, fmt.Errorf("unknown metadata driver %q", driver)
	}
	if err != nil {
		return nil, err
	}

	store := metadata.NewSQLStore(db, dbCfg.Driver.Dialect())

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	log.Info("Metadata store ready")
	return store, nil
}

// openBlobs connects the configured blob store.
func openBlobs(ctx context.Context, cfg *config.Config, log *logger.Logger) (filestore.Store, error) {
	fsCfg := cfg.FilestoreConfig()
	log = log.With().Str("blob_driver", string(fsCfg.Provider)).Logger()

	switch fsCfg.Provider {
	case filestore.ProviderMemory:
		log.Warn("Blobs kept in memory; they are lost on restart")
		return memory.New(), nil
	case filestore.ProviderMinIO:
		store, err := minio.New(ctx, fsCfg)
		if err != nil {
			return nil, err
		}
		log.With().Str("bucket", fsCfg.Bucket).Logger().Info("Blob store ready")
		return store, nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", fsCfg.Provider)
	}
}
