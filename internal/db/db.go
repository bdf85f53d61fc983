// Package db owns the database connection: opening it, syncing the schema and
// handing out scoped sessions.
package db

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/go-usuarios/internal/config"
	"github.com/diewo77/go-usuarios/internal/logging"
	"github.com/diewo77/go-usuarios/internal/models"
)

const (
	connectAttempts = 5
	connectBackoff  = 2 * time.Second
)

// Open connects to the database described by cfg. PostgreSQL connections are
// retried a few times to give the server a chance to come up.
func Open(cfg config.DatabaseConfig, log zerolog.Logger) (*gorm.DB, error) {
	gcfg := &gorm.Config{
		TranslateError: true,
		Logger:         logging.NewGormLogger(log, logging.ParseGormLevel(log.GetLevel())),
	}

	if cfg.Driver() == config.DriverSQLite {
		path := SQLiteDSN(cfg.DSN())
		log.Info().Str("driver", config.DriverSQLite).Str("path", path).Msg("opening database")
		return OpenSQLite(path, gcfg)
	}

	dsn := NormalizeDSN(cfg.DSN())
	log.Info().Str("driver", config.DriverPostgres).Str("dsn", RedactDSN(dsn)).Msg("opening database")

	var (
		conn *gorm.DB
		err  error
	)
	for i := 1; i <= connectAttempts; i++ {
		conn, err = gorm.Open(postgres.Open(dsn), gcfg)
		if err == nil {
			return conn, nil
		}
		log.Warn().Err(err).Int("attempt", i).Int("of", connectAttempts).Msg("database connection failed")
		if i < connectAttempts {
			time.Sleep(connectBackoff)
		}
	}
	return nil, fmt.Errorf("connect postgres: %w", err)
}

// OpenSQLite opens a SQLite database limited to a single connection,
// which serializes writers instead of failing with SQLITE_BUSY.
func OpenSQLite(dsn string, gcfg *gorm.Config) (*gorm.DB, error) {
	conn, err := gorm.Open(sqlite.Open(dsn), gcfg)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("sqlite handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return conn, nil
}

// Provider hands out scoped sessions over a shared connection pool.
type Provider struct {
	db  *gorm.DB
	log zerolog.Logger

	initOnce sync.Once
	initErr  error
}

// NewProvider wraps an open connection.
func NewProvider(conn *gorm.DB, log zerolog.Logger) *Provider {
	return &Provider{db: conn, log: log}
}

// Init creates or updates the schema. Only the first call does any work;
// later calls return its result.
func (p *Provider) Init(ctx context.Context) error {
	p.initOnce.Do(func() {
		if err := p.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Task{}); err != nil {
			p.initErr = fmt.Errorf("auto migrate: %w", err)
			return
		}
		p.log.Info().Str("dialect", p.db.Dialector.Name()).Msg("schema ready")
	})
	return p.initErr
}

// Session runs fn as one unit of work. The transaction commits when fn returns nil
// and rolls back when it returns an error or panics.
func (p *Provider) Session(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return p.db.WithContext(ctx).Transaction(fn)
}

// DB returns the pool for statements that must run outside a transaction.
func (p *Provider) DB(ctx context.Context) *gorm.DB {
	return p.db.WithContext(ctx)
}

// Ping checks that the database answers.
func (p *Provider) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the pool.
func (p *Provider) Close() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return err
	}
	p.log.Info().Msg("database closed")
	return nil
}
