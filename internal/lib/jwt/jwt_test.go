package jwt_test

import (
	"testing"
	"time"

	"raffle-api/internal/lib/jwt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_PairRoundTrip(t *testing.T) {
	gen := jwt.NewGenerator("secret", time.Minute, time.Hour)

	access, refresh, err := gen.GeneratePair("user-1")
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	sub, err := gen.Parse(access, jwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)

	sub, err = gen.Parse(refresh, jwt.TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", sub)
}

func TestGenerator_RejectsWrongType(t *testing.T) {
	gen := jwt.NewGenerator("secret", time.Minute, time.Hour)

	_, refresh, err := gen.GeneratePair("user-1")
	require.NoError(t, err)

	_, err = gen.Parse(refresh, jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrWrongTokenType)
}

func TestGenerator_RejectsForeignSecret(t *testing.T) {
	access, _, err := jwt.NewGenerator("other", time.Minute, time.Hour).GeneratePair("user-1")
	require.NoError(t, err)

	_, err = jwt.NewGenerator("secret", time.Minute, time.Hour).Parse(access, jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerator_RejectsExpired(t *testing.T) {
	gen := jwt.NewGenerator("secret", time.Nanosecond, time.Hour)

	access, _, err := gen.GeneratePair("user-1")
	require.NoError(t, err)

	time.Sleep(time.Second)

	_, err = gen.Parse(access, jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestGenerator_RejectsGarbage(t *testing.T) {
	_, err := jwt.NewGenerator("secret", 0, 0).Parse("not-a-token", jwt.TypeAccess)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}
