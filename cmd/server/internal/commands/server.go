package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wolfeidau/userhub/internal/auth"
	httpmiddleware "github.com/wolfeidau/userhub/internal/http"
	"github.com/wolfeidau/userhub/internal/logger"
	"github.com/wolfeidau/userhub/internal/login"
	"github.com/wolfeidau/userhub/internal/server"
	"github.com/wolfeidau/userhub/internal/store"
	memorystore "github.com/wolfeidau/userhub/internal/store/memory"
	postgresstore "github.com/wolfeidau/userhub/internal/store/postgres"
	"github.com/wolfeidau/userhub/internal/telemetry"
)

type ServerCmd struct {
	// Server configuration
	Listen string `help:"HTTP server listen address" default:"0.0.0.0:8080" env:"USERHUB_LISTEN"`

	// CORS configuration
	CORSOrigins []string `help:"allowed CORS origins for API requests" default:"http://localhost:3000" env:"USERHUB_CORS_ORIGINS"`

	// Session configuration
	JWTSecret string `help:"secret used to sign session tokens" env:"JWT_SECRET"`

	// Operational modes
	Tracing bool `help:"enable tracing" default:"false" env:"USERHUB_TRACING"`

	// Store configuration
	StoreType     string             `help:"store type (memory or postgres)" default:"memory" env:"USERHUB_STORE_TYPE" enum:"memory,postgres"`
	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

type PostgresStoreFlags struct {
	// Connection Configuration
	DatabaseURL string `help:"PostgreSQL connection string" env:"DATABASE_URL"`

	// Connection Pool Configuration
	MaxConns        int32 `help:"maximum number of connections in pool" default:"20"`
	MinConns        int32 `help:"minimum number of connections in pool" default:"5"`
	MaxConnLifetime int32 `help:"maximum connection lifetime in seconds" default:"3600"`
	MaxConnIdleTime int32 `help:"maximum connection idle time in seconds" default:"1800"`

	// Migration Configuration
	AutoMigrate bool `help:"run database migrations on startup" default:"false" env:"USERHUB_POSTGRES_AUTO_MIGRATE"`
}

func (s *PostgresStoreFlags) validate() error {
	if s.DatabaseURL == "" {
		return errors.New("PostgreSQL connection string is required (--postgres-database-url or DATABASE_URL)")
	}
	return nil
}

func (c *ServerCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	log.Info().Str("version", globals.Version).Bool("debug", globals.Debug).Msg("Starting server")

	// Setup telemetry if enabled
	if c.Tracing {
		shutdown, err := telemetry.InitTelemetry(ctx, "userhub", globals.Version)
		if err != nil {
			return fmt.Errorf("failed to initialize telemetry: %w", err)
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := shutdown(shutdownCtx); err != nil {
				log.Warn().Err(err).Msg("Telemetry shutdown failed")
			}
		}()
	}

	codec, err := auth.NewCodec(c.JWTSecret)
	if err != nil {
		return fmt.Errorf("invalid JWT secret (--jwt-secret or JWT_SECRET): %w", err)
	}

	users, err := c.createUserStore(ctx)
	if err != nil {
		return err
	}

	srv := server.New(users, codec, login.NewService(users, codec))

	handler := srv.Handler(c.CORSOrigins)
	handler = httpmiddleware.ClientIPMiddleware()(handler)
	handler = logger.Requests(log)(handler)

	log.Info().Str("addr", c.Listen).Str("store", c.StoreType).Msg("Starting HTTP server")
	return configureHTTPServer(c.Listen, handler).ListenAndServe()
}

// createUserStore builds the configured store backend. Memory is the default
// and is only suitable for development; data does not survive a restart.
func (c *ServerCmd) createUserStore(ctx context.Context) (store.UserStore, error) {
	switch c.StoreType {
	case "postgres":
		return c.createPostgresUserStore(ctx)
	default:
		return memorystore.NewUserStore(), nil
	}
}

func (c *ServerCmd) createPostgresUserStore(ctx context.Context) (store.UserStore, error) {
	if err := c.PostgresStore.validate(); err != nil {
		return nil, fmt.Errorf("failed to validate postgres flags: %w", err)
	}

	pool, err := postgresstore.NewPool(ctx, &postgresstore.PoolConfig{
		ConnString:      c.PostgresStore.DatabaseURL,
		MaxConns:        c.PostgresStore.MaxConns,
		MinConns:        c.PostgresStore.MinConns,
		MaxConnLifetime: c.PostgresStore.MaxConnLifetime,
		MaxConnIdleTime: c.PostgresStore.MaxConnIdleTime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if c.PostgresStore.AutoMigrate {
		if err := postgresstore.RunMigrations(ctx, pool); err != nil {
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	return postgresstore.NewUserStore(pool), nil
}
