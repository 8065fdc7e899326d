package database

import (
	"context"
	"crypto/tls"
	"database/sql"
	"fmt"
	"io"
	"time"

	"github.com/bytedance/sonic"
	"github.com/tupperbox/tupperbox/internal/database/types"
	"github.com/tupperbox/tupperbox/internal/setup/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bunjson"
	"github.com/uptrace/bun/extra/bunotel"
	"go.uber.org/zap"
)

// ApplicationName is reported to Postgres in pg_stat_activity.
const ApplicationName = "tupperbox"

// sonicProvider is a JSON provider that uses Sonic for encoding and decoding.
type sonicProvider struct{}

func (sonicProvider) Marshal(v any) ([]byte, error) {
	return sonic.Marshal(v)
}

func (sonicProvider) Unmarshal(data []byte, v any) error {
	return sonic.Unmarshal(data, v)
}

func (sonicProvider) NewEncoder(w io.Writer) bunjson.Encoder {
	return sonic.ConfigDefault.NewEncoder(w)
}

func (sonicProvider) NewDecoder(r io.Reader) bunjson.Decoder {
	return sonic.ConfigDefault.NewDecoder(r)
}

// HealthChecker is a store that can verify itself with a round-trip.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// Client owns the Postgres connection pool and the model repositories.
type Client struct {
	db     *bun.DB
	logger *zap.Logger
	repo   *Repository
}

// NewConnection creates the pooled connection. No connection is dialed until
// the first query or Init.
func NewConnection(cfg *config.PostgreSQL, logger *zap.Logger) *Client {
	sqldb := sql.OpenDB(pgdriver.NewConnector(connectorOptions(cfg)...))

	// Set connection pool settings
	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(time.Duration(cfg.MaxLifetime) * time.Minute)
	sqldb.SetConnMaxIdleTime(time.Duration(cfg.MaxIdleTime) * time.Minute)

	// Set Sonic as the JSON provider
	bunjson.SetProvider(sonicProvider{})

	db := bun.NewDB(sqldb, pgdialect.New())
	db.AddQueryHook(NewHook(logger, DefaultSlowQueryThreshold))
	db.AddQueryHook(bunotel.NewQueryHook(bunotel.WithDBName(cfg.DBName)))

	return &Client{
		db:     db,
		logger: logger,
		repo:   NewRepository(db, logger),
	}
}

// connectorOptions maps the connection settings onto pgdriver options.
func connectorOptions(cfg *config.PostgreSQL) []pgdriver.Option {
	opts := []pgdriver.Option{
		pgdriver.WithAddr(fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)),
		pgdriver.WithUser(cfg.User),
		pgdriver.WithPassword(cfg.Password),
		pgdriver.WithDatabase(cfg.DBName),
		pgdriver.WithApplicationName(ApplicationName),
	}

	switch cfg.SSLMode {
	case config.SSLModeDisable:
		opts = append(opts, pgdriver.WithInsecure(true))
	case config.SSLModeVerifyFull:
		opts = append(opts, pgdriver.WithTLSConfig(&tls.Config{
			ServerName: cfg.Host,
			MinVersion: tls.VersionTLS12,
		}))
	default:
		// "require" encrypts without verifying the server certificate
		opts = append(opts, pgdriver.WithTLSConfig(&tls.Config{
			InsecureSkipVerify: true, //nolint:gosec // -
			MinVersion:         tls.VersionTLS12,
		}))
	}

	return opts
}

// Init prepares the stores before the bot accepts traffic. It checks that a
// connection can be acquired, applies pending migrations, checks the legacy
// import files and runs the cache round-trip. The first failure is returned
// and startup should abort.
func (c *Client) Init(ctx context.Context, cache HealthChecker, importFiles []string) error {
	c.logger.Info("Starting DB init...")

	c.logger.Info("Attempting to connect to Postgres...")

	if err := c.ping(ctx); err != nil {
		c.logger.Error("Failed to connect to Postgres", zap.Error(err))
		return fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	c.logger.Info("Postgres connection successful!")

	c.logger.Info("Checking/creating tables...")

	if err := c.Migrate(ctx); err != nil {
		c.logger.Error("Error creating/checking tables", zap.Error(err))
		return err
	}

	c.logger.Info("Tables checked/created successfully!")

	CheckImportFiles(importFiles, c.logger)

	if err := cache.HealthCheck(ctx); err != nil {
		c.logger.Error("Redis error", zap.Error(err))
		return fmt.Errorf("cache health check failed: %w", err)
	}

	c.logger.Info("DB init finished successfully!")

	return nil
}

// ping acquires a pooled connection, pings it and returns it to the pool.
func (c *Client) ping(ctx context.Context) error {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return conn.PingContext(ctx)
}

// Connect acquires one connection from the pool. The caller must Close it.
func (c *Client) Connect(ctx context.Context) (bun.Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return bun.Conn{}, fmt.Errorf("failed to acquire connection: %w", err)
	}

	return conn, nil
}

// Query runs a statement against the pool and returns its rows.
// The caller must close the rows.
//
// Parameters are bound with bun's ? placeholders, not Postgres $1 markers:
// bun formats the arguments into the statement before it is sent, so a
// query written as "WHERE id = $1" reaches Postgres with no bound value.
//
//	rows, err := client.Query(ctx, "SELECT name FROM members WHERE user_id = ?", userID)
func (c *Client) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

// GlobalBlacklisted returns the global blacklist row for userID,
// or nil if the user is not blacklisted.
func (c *Client) GlobalBlacklisted(ctx context.Context, userID string) (*types.GlobalBlacklist, error) {
	return c.repo.GlobalBlacklist().Get(ctx, userID)
}

// Close drains and closes the connection pool.
func (c *Client) Close() error {
	err := c.db.Close()
	if err != nil {
		c.logger.Error("Failed to close database connection", zap.Error(err))
		return err
	}

	c.logger.Info("Database connection closed")

	return nil
}

// Model returns the repository containing all model operations.
func (c *Client) Model() *Repository {
	return c.repo
}

// DB returns the underlying bun.DB instance.
func (c *Client) DB() *bun.DB {
	return c.db
}
