package password_test

import (
	"testing"

	"raffle-api/internal/lib/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hash, err := password.Hash("Testpass123")
	require.NoError(t, err)

	assert.NoError(t, password.Compare(hash, "Testpass123"))
	assert.ErrorIs(t, password.Compare(hash, "wrong"), password.ErrMismatch)
}

func TestCompare_MalformedHash(t *testing.T) {
	err := password.Compare([]byte("plain"), "plain")
	require.Error(t, err)
	assert.NotErrorIs(t, err, password.ErrMismatch)
}
