package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestGenerator() JWTTokenGenerator {
	return NewJWTTokenGenerator(testSecret, 30*time.Minute, 7*24*time.Hour)
}

func TestGenerateTokenPair(t *testing.T) {
	gen := newTestGenerator()

	access, refresh, refreshClaims, err := gen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	require.NotNil(t, refreshClaims)

	assert.NotEmpty(t, refreshClaims.ID, "refresh token must carry a jti")
	assert.Equal(t, ScopeRefresh, refreshClaims.Scope)

	accessClaims, err := gen.ParseToken(access, ScopeAccess)
	require.NoError(t, err)
	assert.Equal(t, int64(1), accessClaims.UserID)
	assert.Equal(t, "jane@example.com", accessClaims.Subject)
	assert.Empty(t, accessClaims.ID, "access tokens carry no jti")

	parsedRefresh, err := gen.ParseToken(refresh, ScopeRefresh)
	require.NoError(t, err)
	assert.Equal(t, refreshClaims.ID, parsedRefresh.ID)
}

func TestParseTokenRejectsWrongScope(t *testing.T) {
	gen := newTestGenerator()

	access, refresh, _, err := gen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)

	_, err = gen.ParseToken(access, ScopeRefresh)
	assert.ErrorIs(t, err, ErrWrongScope)

	_, err = gen.ParseToken(refresh, ScopeAccess)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	gen := newTestGenerator()
	other := NewJWTTokenGenerator("other-secret", 30*time.Minute, 7*24*time.Hour)

	access, _, _, err := gen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)

	_, err = other.ParseToken(access, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	gen := NewJWTTokenGenerator(testSecret, -time.Minute, 7*24*time.Hour)

	access, _, _, err := gen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)

	_, err = gen.ParseToken(access, ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	gen := newTestGenerator()

	_, err := gen.ParseToken("not-a-jwt", ScopeAccess)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSinglePurposeTokens(t *testing.T) {
	gen := newTestGenerator()

	verification, err := gen.GenerateVerificationToken(7, "joe@example.com")
	require.NoError(t, err)
	claims, err := gen.ParseToken(verification, ScopeVerification)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)

	reset, err := gen.GeneratePasswordResetToken(7, "joe@example.com")
	require.NoError(t, err)
	claims, err = gen.ParseToken(reset, ScopeReset)
	require.NoError(t, err)
	assert.Equal(t, "joe@example.com", claims.Subject)

	// A verification token must not unlock API access.
	_, err = gen.ParseToken(verification, ScopeAccess)
	assert.ErrorIs(t, err, ErrWrongScope)
}

func TestRefreshTokensGetUniqueJTIs(t *testing.T) {
	gen := newTestGenerator()

	_, _, first, err := gen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)
	_, _, second, err := gen.GenerateTokenPair(1, "jane@example.com")
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}
