package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	digest, err := Hash("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", digest)

	t.Run("matching password", func(t *testing.T) {
		require.True(t, Compare("admin123", digest))
	})

	t.Run("wrong password", func(t *testing.T) {
		require.False(t, Compare("admin124", digest))
	})

	t.Run("garbage digest", func(t *testing.T) {
		require.False(t, Compare("admin123", "not-a-bcrypt-digest"))
	})
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("secret-password")
	require.NoError(t, err)

	second, err := Hash("secret-password")
	require.NoError(t, err)

	require.NotEqual(t, first, second)
}
