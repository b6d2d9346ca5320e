package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/wolfeidau/userhub/internal/models"
	"github.com/wolfeidau/userhub/internal/store"
)

func newTestUser(t *testing.T, email string) *models.User {
	t.Helper()

	userID, err := uuid.NewV7()
	require.NoError(t, err)

	now := time.Now()
	return &models.User{
		UserID:       userID,
		Name:         "Test User",
		Email:        email,
		PasswordHash: "$2a$10$notarealhash",
		Role:         models.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserStore_Create(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	t.Run("creates user", func(t *testing.T) {
		user := newTestUser(t, "alice@example.com")
		require.NoError(t, s.Create(ctx, user))

		got, err := s.GetByID(ctx, user.UserID)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", got.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		dup := newTestUser(t, "alice@example.com")
		err := s.Create(ctx, dup)
		require.ErrorIs(t, err, store.ErrEmailTaken)
	})
}

func TestUserStore_GetByEmail(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	user := newTestUser(t, "bob@example.com")
	require.NoError(t, s.Create(ctx, user))

	t.Run("found", func(t *testing.T) {
		got, err := s.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, user.UserID, got.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetByEmail(ctx, "nobody@example.com")
		require.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("returned record is a copy", func(t *testing.T) {
		got, err := s.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		got.Name = "mutated"

		again, err := s.GetByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		require.Equal(t, "Test User", again.Name)
	})
}

func TestUserStore_Update(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	user := newTestUser(t, "carol@example.com")
	require.NoError(t, s.Create(ctx, user))

	other := newTestUser(t, "taken@example.com")
	require.NoError(t, s.Create(ctx, other))

	t.Run("partial update", func(t *testing.T) {
		name := "Carol"
		city := "Recife"
		updated, err := s.Update(ctx, user.UserID, &store.UserUpdate{Name: &name, City: &city})
		require.NoError(t, err)
		require.Equal(t, "Carol", updated.Name)
		require.NotNil(t, updated.City)
		require.Equal(t, "Recife", *updated.City)
		require.Equal(t, "carol@example.com", updated.Email)
	})

	t.Run("email collision", func(t *testing.T) {
		email := "taken@example.com"
		_, err := s.Update(ctx, user.UserID, &store.UserUpdate{Email: &email})
		require.ErrorIs(t, err, store.ErrEmailTaken)
	})

	t.Run("email change reindexes", func(t *testing.T) {
		email := "carol.new@example.com"
		_, err := s.Update(ctx, user.UserID, &store.UserUpdate{Email: &email})
		require.NoError(t, err)

		_, err = s.GetByEmail(ctx, "carol@example.com")
		require.ErrorIs(t, err, store.ErrUserNotFound)

		got, err := s.GetByEmail(ctx, "carol.new@example.com")
		require.NoError(t, err)
		require.Equal(t, user.UserID, got.UserID)
	})

	t.Run("not found", func(t *testing.T) {
		missing, err := uuid.NewV7()
		require.NoError(t, err)
		_, err = s.Update(ctx, missing, &store.UserUpdate{})
		require.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	user := newTestUser(t, "dave@example.com")
	require.NoError(t, s.Create(ctx, user))

	require.NoError(t, s.Delete(ctx, user.UserID))
	require.ErrorIs(t, s.Delete(ctx, user.UserID), store.ErrUserNotFound)

	_, err := s.GetByEmail(ctx, "dave@example.com")
	require.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestUserStore_List(t *testing.T) {
	ctx := context.Background()
	s := NewUserStore()

	first := newTestUser(t, "first@example.com")
	first.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, s.Create(ctx, first))

	second := newTestUser(t, "second@example.com")
	require.NoError(t, s.Create(ctx, second))

	users, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "first@example.com", users[0].Email)
	require.Equal(t, "second@example.com", users[1].Email)
}
