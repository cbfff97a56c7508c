package db

import (
	"embed"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/tokenledger/tokend/internal/core/domain"
	"github.com/tokenledger/tokend/internal/core/ports"
	badgerdb "github.com/tokenledger/tokend/internal/infrastructure/db/badger"
	sqlitedb "github.com/tokenledger/tokend/internal/infrastructure/db/sqlite"
)

//go:embed sqlite/migration/*
var migrations embed.FS

var (
	assetStoreTypes = map[string]func(...interface{}) (domain.AssetRepository, error){
		"badger": badgerdb.NewAssetRepository,
		"sqlite": sqlitedb.NewAssetRepository,
	}
	uniqueAssetStoreTypes = map[string]func(...interface{}) (domain.UniqueAssetRepository, error){
		"badger": badgerdb.NewUniqueAssetRepository,
		"sqlite": sqlitedb.NewUniqueAssetRepository,
	}
)

const (
	sqliteDbFile = "sqlite.db"
)

type ServiceConfig struct {
	DataStoreType   string
	DataStoreConfig []interface{}
}

type service struct {
	assetStore       domain.AssetRepository
	uniqueAssetStore domain.UniqueAssetRepository
}

func NewService(config ServiceConfig) (ports.RepoManager, error) {
	assetStoreFactory, ok := assetStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}
	uniqueAssetStoreFactory, ok := uniqueAssetStoreTypes[config.DataStoreType]
	if !ok {
		return nil, fmt.Errorf("invalid data store type: %s", config.DataStoreType)
	}

	var assetStore domain.AssetRepository
	var uniqueAssetStore domain.UniqueAssetRepository
	var err error

	switch config.DataStoreType {
	case "badger":
		assetStore, err = assetStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open asset store: %s", err)
		}
		uniqueAssetStore, err = uniqueAssetStoreFactory(config.DataStoreConfig...)
		if err != nil {
			return nil, fmt.Errorf("failed to open unique asset store: %s", err)
		}

	case "sqlite":
		if len(config.DataStoreConfig) != 1 {
			return nil, fmt.Errorf("invalid data store config")
		}

		baseDir, ok := config.DataStoreConfig[0].(string)
		if !ok {
			return nil, fmt.Errorf("invalid base directory")
		}

		dbFile := ":memory:"
		if baseDir != "" {
			dbFile = filepath.Join(baseDir, sqliteDbFile)
		}
		db, err := sqlitedb.OpenDb(dbFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %s", err)
		}

		driver, err := sqlitemigrate.WithInstance(db, &sqlitemigrate.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to init driver: %s", err)
		}

		source, err := iofs.New(migrations, "sqlite/migration")
		if err != nil {
			return nil, fmt.Errorf("failed to embed migrations: %s", err)
		}

		m, err := migrate.NewWithInstance("iofs", source, "tokendb", driver)
		if err != nil {
			return nil, fmt.Errorf("failed to create migration instance: %s", err)
		}

		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return nil, fmt.Errorf("failed to run migrations: %s", err)
		}

		assetStore, err = assetStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open asset store: %s", err)
		}
		uniqueAssetStore, err = uniqueAssetStoreFactory(db)
		if err != nil {
			return nil, fmt.Errorf("failed to open unique asset store: %s", err)
		}

	default:
		return nil, fmt.Errorf("unknown data store db type")
	}

	return &service{
		assetStore:       assetStore,
		uniqueAssetStore: uniqueAssetStore,
	}, nil
}

func (s *service) Assets() domain.AssetRepository {
	return s.assetStore
}

func (s *service) UniqueAssets() domain.UniqueAssetRepository {
	return s.uniqueAssetStore
}

func (s *service) Close() {
	s.assetStore.Close()
	s.uniqueAssetStore.Close()
}
