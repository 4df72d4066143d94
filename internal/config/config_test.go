package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("BASE_URL", "https://sho.rt")
	t.Setenv("SECRET", "from-env")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("DEV_MODE", "true")

	got, err := ParseFlags()
	require.NoError(t, err)

	assert.Equal(t, ":9090", got.RunAddr)
	assert.Equal(t, "https://sho.rt", got.RedirectBaseURL)
	assert.Equal(t, "from-env", got.Secret)
	assert.Equal(t, 10, got.BcryptCost)
	assert.True(t, got.DevMode)
	assert.Empty(t, got.DatabaseDSN)
	assert.False(t, got.ProfileMode)
}
