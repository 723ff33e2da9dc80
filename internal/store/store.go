// Package store is the data access layer: typed CRUD, dependency counts,
// bulk generators and the analytical queries, all over one PostgreSQL
// database. Query shaping lives here; callers only see typed rows and
// classified errors.
package store

import (
	"context"
	"fmt"
	"log/slog"

	"bookadmin/internal/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// searchLimit caps attribute-search result sets used by interactive
// selection. Big enough to disambiguate, small enough to read.
const searchLimit = 50

type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// Open connects to PostgreSQL and verifies the connection. The schema is
// assumed to exist already (see database/schema.sql); nothing is migrated.
func Open(cfg *config.Config, logger *slog.Logger) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		// stdout belongs to the menu; keep gorm quiet
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("connected to the database")
	return &Store{db: db, log: logger}, nil
}

// Ping verifies the backing store is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
