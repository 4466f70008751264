package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/flowershop-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "Flower Shop Backend"},
		JWT: config.JWTConfig{
			Secret:             "test-secret-used-only-in-unit-tests",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(42, "jane@example.com", false)
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "access", claims.TokenType)
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateRefreshToken(42, "jane@example.com", false)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(token)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
}

func TestRefreshTokenKeepsPrincipalType(t *testing.T) {
	// Admin and customer ids come from separate tables, so a refresh token
	// for admin #1 must never resolve as customer #1.
	m := NewJWTManager(testConfig())

	adminToken, err := m.GenerateRefreshToken(1, "admin", true)
	require.NoError(t, err)

	claims, err := m.ValidateRefreshToken(adminToken)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)
	assert.Equal(t, "admin:1", claims.Subject)

	customerToken, err := m.GenerateRefreshToken(1, "jane@example.com", false)
	require.NoError(t, err)

	claims, err = m.ValidateRefreshToken(customerToken)
	require.NoError(t, err)
	assert.False(t, claims.IsAdmin)
	assert.Equal(t, "user:1", claims.Subject)
}

func TestValidateRejectsForeignSecret(t *testing.T) {
	m := NewJWTManager(testConfig())

	other := testConfig()
	other.JWT.Secret = "a-different-secret-entirely"
	foreign, err := NewJWTManager(other).GenerateAccessToken(1, "x@example.com", false)
	require.NoError(t, err)

	_, err = m.ValidateToken(foreign)
	assert.Error(t, err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	assert.Equal(t, "abc.def.ghi", ExtractTokenFromHeader("Bearer abc.def.ghi"))
	assert.Empty(t, ExtractTokenFromHeader("Basic abc"))
	assert.Empty(t, ExtractTokenFromHeader(""))
}

func TestPasswordHashAndVerify(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, p.VerifyPassword("secret1", hash))
	assert.Error(t, p.VerifyPassword("wrong", hash))
}

func TestPasswordTooShort(t *testing.T) {
	p := NewPasswordManager(testConfig())

	_, err := p.HashPassword("abc")
	assert.Error(t, err)
}
