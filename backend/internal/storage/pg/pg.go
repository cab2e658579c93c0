package pg

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"github.com/itchan-dev/shopkeeper/shared/config"
	"github.com/itchan-dev/shopkeeper/shared/logger"
	sharedpg "github.com/itchan-dev/shopkeeper/shared/storage/pg"
)

//go:embed migrations/init.sql
var schema string

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier = sharedpg.Querier

type Storage struct {
	db  *sql.DB
	cfg *config.Config
}

func New(ctx context.Context, cfg *config.Config) (*Storage, error) {
	return NewWithConnectionConfig(ctx, cfg, sharedpg.DefaultConnectionConfig())
}

func NewWithConnectionConfig(ctx context.Context, cfg *config.Config, connCfg sharedpg.ConnectionConfig) (*Storage, error) {
	logger.Log.Info("connecting to db", "host", cfg.Private.Pg.Host, "dbname", cfg.Private.Pg.Dbname)
	db, err := sharedpg.Connect(ctx, cfg, connCfg)
	if err != nil {
		return nil, err
	}
	logger.Log.Info("successfully connected to db")
	return &Storage{db: db, cfg: cfg}, nil
}

// Migrate applies the embedded schema. Every statement is idempotent.
func (s *Storage) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *Storage) Cleanup() error {
	return s.db.Close()
}

func (s *Storage) withTx(ctx context.Context, fn func(*sql.Tx) error) error {
	return sharedpg.WithTx(ctx, s.db, fn)
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}
