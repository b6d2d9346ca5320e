package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/wolfeidau/userhub/internal/logger"
	"github.com/wolfeidau/userhub/internal/models"
	"github.com/wolfeidau/userhub/internal/password"
	"github.com/wolfeidau/userhub/internal/store"
	postgresstore "github.com/wolfeidau/userhub/internal/store/postgres"
)

// SeedCmd creates the initial ADMIN account so a fresh deployment can be
// logged into. Existing accounts are updated in place, which also serves as
// a password reset for the admin.
type SeedCmd struct {
	Email    string `help:"admin email" default:"admin@admin.com" env:"USERHUB_SEED_EMAIL"`
	Password string `help:"admin password" default:"admin123" env:"USERHUB_SEED_PASSWORD"`
	Name     string `help:"admin display name" default:"Admin" env:"USERHUB_SEED_NAME"`

	PostgresStore PostgresStoreFlags `embed:"" prefix:"postgres-"`
}

func (c *SeedCmd) Run(globals *Globals) error {
	log := logger.Setup(globals.Debug)
	ctx := context.Background()

	if err := c.PostgresStore.validate(); err != nil {
		return fmt.Errorf("failed to validate postgres flags: %w", err)
	}

	pool, err := postgresstore.NewPool(ctx, &postgresstore.PoolConfig{
		ConnString: c.PostgresStore.DatabaseURL,
	})
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	if c.PostgresStore.AutoMigrate {
		if err := postgresstore.RunMigrations(ctx, pool); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	users := postgresstore.NewUserStore(pool)

	hash, err := password.Hash(c.Password)
	if err != nil {
		return err
	}

	existing, err := users.GetByEmail(ctx, c.Email)
	switch {
	case err == nil:
		role := models.RoleAdmin
		_, err = users.Update(ctx, existing.UserID, &store.UserUpdate{
			Name:         &c.Name,
			PasswordHash: &hash,
			Role:         &role,
		})
		if err != nil {
			return fmt.Errorf("failed to update admin account: %w", err)
		}
		log.Info().Str("email", c.Email).Msg("Admin account updated")
	case errors.Is(err, store.ErrUserNotFound):
		userID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate user id: %w", err)
		}
		now := time.Now()
		err = users.Create(ctx, &models.User{
			UserID:       userID,
			Name:         c.Name,
			Email:        c.Email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}
		log.Info().Str("email", c.Email).Msg("Admin account created")
	default:
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	return nil
}
