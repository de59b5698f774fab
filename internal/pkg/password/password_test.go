package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := Hash("testpassword")
	require.NoError(t, err)
	require.NotEqual(t, "testpassword", hash)
	require.NoError(t, Compare(hash, "testpassword"))
	require.Error(t, Compare(hash, "wrong"))
	require.Error(t, Compare("", "testpassword"))

	_, err = Hash("")
	require.ErrorIs(t, err, ErrEmpty)
}
