package jwt

import (
	"testing"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	cfg := models.JWTConfig{
		Secret:     "test-secret",
		Expiration: 1,
		Issuer:     "ecopath",
	}

	token, err := GenerateToken("user-123", "driver", cfg)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ValidateToken(token, cfg.Secret)
	require.NoError(t, err)
	assert.Equal(t, "user-123", (*claims)["user_id"])
	assert.Equal(t, "driver", (*claims)["role"])
}

func TestValidateToken_WrongSecret(t *testing.T) {
	cfg := models.JWTConfig{Secret: "right-secret", Expiration: 1, Issuer: "ecopath"}

	token, err := GenerateToken("user-123", "passenger", cfg)
	require.NoError(t, err)

	_, err = ValidateToken(token, "wrong-secret")
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := ValidateToken("not-a-token", "secret")
	assert.Error(t, err)
}
