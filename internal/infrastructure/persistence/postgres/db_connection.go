// Package postgres implements the analytics repositories on PostgreSQL.
// Connections are pooled with pgx and surfaced to the repositories through
// gorm over the pgx stdlib bridge.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/seclearn/analytics/internal/config"
	"github.com/seclearn/analytics/pkg/logger"
)

// DBConnection manages the PostgreSQL connection pool and the gorm handle
// built on top of it.
type DBConnection struct {
	pool *pgxpool.Pool
	gorm *gorm.DB
	log  logger.Logger
}

// NewDBConnection initializes the pgx pool, verifies connectivity, and wraps
// the pool in a gorm handle for the repositories.
func NewDBConnection(ctx context.Context, cfg *config.DatabaseConfig, log logger.Logger) (*DBConnection, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MinConns = int32(cfg.MinConns)
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = time.Duration(cfg.MaxConnLifetime) * time.Minute
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = time.Duration(cfg.MaxConnIdleTime) * time.Minute
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(connectCtx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(connectCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: sqlDB}), &gorm.Config{})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to open gorm handle: %w", err)
	}

	log.Info(ctx, "postgres connection pool initialized", logger.Fields{
		"host":      cfg.Host,
		"database":  cfg.Database,
		"max_conns": cfg.MaxConns,
	})

	return &DBConnection{pool: pool, gorm: gormDB, log: log}, nil
}

// Gorm returns the gorm handle backing the repositories.
func (db *DBConnection) Gorm() *gorm.DB {
	return db.gorm
}

// Pool returns the underlying pgx pool.
func (db *DBConnection) Pool() *pgxpool.Pool {
	return db.pool
}

// Ping verifies database connectivity.
func (db *DBConnection) Ping(ctx context.Context) error {
	return db.pool.Ping(ctx)
}

// Migrate creates or updates the analytics tables.
func (db *DBConnection) Migrate() error {
	return db.gorm.AutoMigrate(
		&riskScoreDBM{},
		&behavioralEventDBM{},
		&reportScheduleDBM{},
		&phishingSimulationDBM{},
		&enrollmentDBM{},
		&quizAttemptDBM{},
	)
}

// Close drains the pool. The gorm handle shares the same connections.
func (db *DBConnection) Close() {
	if sqlDB, err := db.gorm.DB(); err == nil {
		_ = sqlDB.Close()
	}
	db.pool.Close()
}
