package websocket

import (
	"testing"

	"github.com/ecopath/dispatch/internal/pkg/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_ClientRegistry(t *testing.T) {
	manager := NewManager(models.JWTConfig{Secret: "test-secret"})

	client := &models.WebSocketClient{UserID: "user-1", Role: "driver"}
	manager.AddClient(client)

	got, exists := manager.GetClient("user-1")
	require.True(t, exists)
	assert.Equal(t, "driver", got.Role)

	manager.RemoveClient("user-1")
	_, exists = manager.GetClient("user-1")
	assert.False(t, exists)
}

func TestManager_AddClientReplacesExistingSession(t *testing.T) {
	manager := NewManager(models.JWTConfig{Secret: "test-secret"})

	manager.AddClient(&models.WebSocketClient{UserID: "user-1", Role: "passenger"})
	manager.AddClient(&models.WebSocketClient{UserID: "user-1", Role: "driver"})

	got, exists := manager.GetClient("user-1")
	require.True(t, exists)
	assert.Equal(t, "driver", got.Role)
}

func TestManager_SendMessageNilConnection(t *testing.T) {
	manager := NewManager(models.JWTConfig{Secret: "test-secret"})

	client := &models.WebSocketClient{UserID: "user-1"}
	err := manager.SendMessage(client, "ride-accepted", map[string]string{"ride_id": "abc"})
	assert.NoError(t, err)
}

func TestManager_NotifyClientDropsWhenDisconnected(t *testing.T) {
	manager := NewManager(models.JWTConfig{Secret: "test-secret"})

	// No session registered for the recipient; the event is dropped, never
	// queued, and nothing panics.
	manager.NotifyClient("ghost", "ride-accepted", nil)
}

func TestManager_NotifyGroup(t *testing.T) {
	manager := NewManager(models.JWTConfig{Secret: "test-secret"})

	manager.AddClient(&models.WebSocketClient{UserID: "driver-1"})
	manager.AddClient(&models.WebSocketClient{UserID: "driver-2"})

	// Mixed group of connected and unknown recipients
	manager.NotifyGroup([]string{"driver-1", "driver-2", "driver-3"}, "new-ride-request", nil)
}

func TestManager_ValidateToken(t *testing.T) {
	secret := "test-secret"
	manager := NewManager(models.JWTConfig{Secret: secret})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.WebSocketClaims{
		UserID: "user-1",
		Role:   "passenger",
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)

	claims, err := manager.validateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "passenger", claims.Role)
}

func TestManager_ValidateTokenWrongSecret(t *testing.T) {
	manager := NewManager(models.JWTConfig{Secret: "right-secret"})

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.WebSocketClaims{UserID: "user-1"})
	signed, err := token.SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	_, err = manager.validateToken(signed)
	assert.Error(t, err)
}
