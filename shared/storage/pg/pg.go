// Package pg provides core PostgreSQL database primitives for storage layers.
//
// Core Components:
//   - Querier: Interface for transaction-agnostic database operations
//   - WithTx: Helper for managing database transactions
//   - Connect: Configurable database connection establishment
//   - IsUniqueViolation: pq error classification
package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/itchan-dev/shopkeeper/shared/config"
	"github.com/lib/pq"
)

// uniqueViolation is the SQLSTATE reported for a duplicate key.
const uniqueViolation = "23505"

// =========================================================================
// Core Interfaces
// =========================================================================

// Querier is an interface that abstracts database operations.
// It is satisfied by both *sql.DB (single operations on the pool) and
// *sql.Tx (operations within a transaction).
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// =========================================================================
// Connection Management
// =========================================================================

// ConnectionConfig holds database connection pool settings.
type ConnectionConfig struct {
	MaxOpenConns    int           // Maximum number of open connections to the database
	MaxIdleConns    int           // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration // Maximum amount of time a connection may be reused
	ConnMaxIdleTime time.Duration // Maximum amount of time a connection may be idle
}

// DefaultConnectionConfig returns pool settings suitable for the API server.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    25,
		MaxIdleConns:    10,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// LightweightConnectionConfig returns conservative pool settings for tools
// and tests.
func LightweightConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		MaxOpenConns:    5,
		MaxIdleConns:    2,
		ConnMaxLifetime: 5 * time.Minute,
		ConnMaxIdleTime: 1 * time.Minute,
	}
}

// Connect establishes and verifies a connection to the PostgreSQL database.
//
// Example:
//
//	cfg := config.MustLoad("config")
//	db, err := pg.Connect(ctx, cfg, pg.DefaultConnectionConfig())
//	if err != nil {
//	    log.Fatalf("Failed to connect: %v", err)
//	}
//	defer db.Close()
func Connect(ctx context.Context, cfg *config.Config, connCfg ConnectionConfig) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Private.Pg.Host, cfg.Private.Pg.Port,
		cfg.Private.Pg.User, cfg.Private.Pg.Password,
		cfg.Private.Pg.Dbname)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(connCfg.MaxOpenConns)
	db.SetMaxIdleConns(connCfg.MaxIdleConns)
	db.SetConnMaxLifetime(connCfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(connCfg.ConnMaxIdleTime)

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// =========================================================================
// Transaction Helpers
// =========================================================================

// WithTx executes fn within a database transaction. The transaction is
// rolled back if fn returns an error and committed otherwise.
//
// Usage:
//
//	err := pg.WithTx(ctx, db, func(tx *sql.Tx) error {
//	    if err := someOperation(ctx, tx, data); err != nil {
//	        return err // Triggers rollback
//	    }
//	    return nil // Triggers commit
//	})
func WithTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // No-op if transaction is already committed

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// =========================================================================
// Error Classification
// =========================================================================

// IsUniqueViolation reports whether err was raised by a UNIQUE constraint.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
