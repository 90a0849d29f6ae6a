package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"vidhub/internal/config"

	"github.com/cenkalti/backoff/v4"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Manager wraps the SQL connection pool with logging and migration support.
type Manager struct {
	db     *sql.DB
	logger *zap.Logger
	config *config.DatabaseConfig
}

// NewManager opens the PostgreSQL pool and verifies connectivity, retrying
// the initial ping with exponential backoff.
func NewManager(cfg *config.DatabaseConfig, logger *zap.Logger) (*Manager, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("database URL is required")
	}

	db, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ConnectTimeout)
	defer cancel()

	ping := func() error { return db.PingContext(ctx) }
	policy := backoff.WithContext(backoff.NewExponentialBackOff(), ctx)
	notify := func(err error, d time.Duration) {
		logger.Warn("Database ping failed, retrying",
			zap.Error(err),
			zap.Duration("backoff", d),
		)
	}
	if err := backoff.RetryNotify(ping, policy, notify); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established",
		zap.Int("max_open_conns", cfg.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.MaxIdleConns),
		zap.Duration("conn_max_lifetime", cfg.ConnMaxLifetime),
	)

	return &Manager{db: db, logger: logger, config: cfg}, nil
}

// DB returns the underlying connection pool.
func (m *Manager) DB() *sql.DB { return m.db }

// Migrate applies pending migrations from the configured path.
func (m *Manager) Migrate(migrationsPath string) error {
	driver, err := postgres.WithInstance(m.db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	migrator, err := migrate.NewWithDatabaseInstance(
		"file://"+migrationsPath, "postgres", driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, _ := migrator.Version()
	m.logger.Info("Migrations applied",
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

// ExecContext executes a statement, logging failures and slow statements.
func (m *Manager) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := m.db.ExecContext(ctx, query, args...)
	m.observe(query, start, err)
	return result, err
}

// QueryContext executes a query that returns rows.
func (m *Manager) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := m.db.QueryContext(ctx, query, args...)
	m.observe(query, start, err)
	return rows, err
}

// QueryRowContext executes a query that returns at most one row.
func (m *Manager) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	start := time.Now()
	row := m.db.QueryRowContext(ctx, query, args...)
	m.observe(query, start, nil)
	return row
}

// BeginTx starts a transaction.
func (m *Manager) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return m.db.BeginTx(ctx, opts)
}

// Health reports connectivity and pool state.
func (m *Manager) Health(ctx context.Context) *HealthStatus {
	status := &HealthStatus{Status: "healthy", CheckedAt: time.Now().UTC()}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := m.db.PingContext(pingCtx); err != nil {
		status.Status = "unhealthy"
		status.Error = err.Error()
		return status
	}

	stats := m.db.Stats()
	status.OpenConnections = stats.OpenConnections
	status.InUse = stats.InUse
	status.Idle = stats.Idle
	status.WaitCount = stats.WaitCount
	return status
}

// Close shuts the pool down.
func (m *Manager) Close() error {
	m.logger.Info("Closing database connection")
	return m.db.Close()
}

func (m *Manager) observe(query string, start time.Time, err error) {
	duration := time.Since(start)
	if duration > 100*time.Millisecond {
		m.logger.Warn("Slow query detected",
			zap.String("query", truncateQuery(query)),
			zap.Duration("duration", duration),
		)
	}
	if err != nil {
		m.logger.Error("Query execution failed",
			zap.String("query", truncateQuery(query)),
			zap.Error(err),
		)
	}
}

func truncateQuery(query string) string {
	const max = 200
	if len(query) > max {
		return query[:max] + "..."
	}
	return query
}
