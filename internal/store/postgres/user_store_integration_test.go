//go:build integration

package postgres

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/wolfeidau/userhub/internal/models"
	"github.com/wolfeidau/userhub/internal/store"
)

func setupPostgresContainer(t *testing.T, ctx context.Context) (*UserStore, func()) {
	// Start postgres container
	req := testcontainers.ContainerRequest{
		Image:        "postgres:18-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").WithOccurrence(2),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	connString := fmt.Sprintf("postgres://test:test@%s:%s/testdb?sslmode=disable", host, port.Port())

	pool, err := NewPool(ctx, &PoolConfig{ConnString: connString})
	require.NoError(t, err)

	err = RunMigrations(ctx, pool)
	require.NoError(t, err)

	cleanup := func() {
		pool.Close()
		_ = container.Terminate(ctx)
	}

	return NewUserStore(pool), cleanup
}

func newIntegrationUser(t *testing.T, email, role string) *models.User {
	t.Helper()

	userID, err := uuid.NewV7()
	require.NoError(t, err)

	now := time.Now().UTC().Truncate(time.Microsecond)
	return &models.User{
		UserID:       userID,
		Name:         "Integration User",
		Email:        email,
		PasswordHash: "$2a$10$notarealhash",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestIntegration_UserLifecycle(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupPostgresContainer(t, ctx)
	defer cleanup()

	user := newIntegrationUser(t, "alice@example.com", models.RoleUser)

	t.Run("create", func(t *testing.T) {
		require.NoError(t, s.Create(ctx, user))
	})

	t.Run("duplicate email maps to sentinel", func(t *testing.T) {
		dup := newIntegrationUser(t, "alice@example.com", models.RoleUser)
		require.ErrorIs(t, s.Create(ctx, dup), store.ErrEmailTaken)
	})

	t.Run("get by email", func(t *testing.T) {
		got, err := s.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, user.UserID, got.UserID)
		require.Nil(t, got.CEP)
	})

	t.Run("partial update", func(t *testing.T) {
		cep := "01310-100"
		city := "São Paulo"
		updated, err := s.Update(ctx, user.UserID, &store.UserUpdate{CEP: &cep, City: &city})
		require.NoError(t, err)
		require.NotNil(t, updated.CEP)
		require.Equal(t, "01310-100", *updated.CEP)
		require.Equal(t, "Integration User", updated.Name)
	})

	t.Run("list", func(t *testing.T) {
		admin := newIntegrationUser(t, "admin@example.com", models.RoleAdmin)
		require.NoError(t, s.Create(ctx, admin))

		users, err := s.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		require.Equal(t, "alice@example.com", users[0].Email)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, s.Delete(ctx, user.UserID))
		_, err := s.GetByID(ctx, user.UserID)
		require.ErrorIs(t, err, store.ErrUserNotFound)

		require.ErrorIs(t, s.Delete(ctx, user.UserID), store.ErrUserNotFound)
	})
}
