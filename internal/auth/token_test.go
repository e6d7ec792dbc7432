package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, expiresAt, err := tm.Issue(Identity{ID: 12, Username: "alice", Role: "admin"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	identity, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), identity.ID)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, "ADMIN", identity.Role)
}

func TestTokenManager_VerifyRejectsWrongSecret(t *testing.T) {
	token, _, err := NewTokenManager("one", time.Hour).Issue(Identity{ID: 1, Role: "USER"})
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Verify(token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenManager_VerifyRejectsExpired(t *testing.T) {
	tm := NewTokenManager("secret", time.Minute)
	tm.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := tm.Issue(Identity{ID: 1, Role: "USER"})
	require.NoError(t, err)

	tm.now = time.Now
	_, err = tm.Verify(token)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenManager_VerifyRejectsNonHMAC(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"id":  1,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewTokenManager("secret", time.Hour).Verify(signed)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestTokenManager_VerifyLegacyClaims(t *testing.T) {
	secret := "legacy"
	tm := NewTokenManager(secret, time.Hour)

	tests := []struct {
		name   string
		claims jwt.MapClaims
		wantID uint64
		role   string
	}{
		{name: "userId number", claims: jwt.MapClaims{"userId": 7, "userRole": "admin"}, wantID: 7, role: "ADMIN"},
		{name: "user_id string", claims: jwt.MapClaims{"user_id": "8", "user_role": "user"}, wantID: 8, role: "USER"},
		{name: "sub only", claims: jwt.MapClaims{"sub": "9", "role": "Admin"}, wantID: 9, role: "ADMIN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.claims["exp"] = time.Now().Add(time.Hour).Unix()
			signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims).SignedString([]byte(secret))
			require.NoError(t, err)

			identity, err := tm.Verify(signed)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, identity.ID)
			assert.Equal(t, tt.role, identity.Role)
		})
	}
}

func TestTokenManager_VerifyRequiresID(t *testing.T) {
	secret := "secret"
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "ADMIN",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	_, err = NewTokenManager(secret, time.Hour).Verify(signed)
	assert.True(t, errors.Is(err, ErrInvalidToken))
}

func TestExtractToken(t *testing.T) {
	token, err := ExtractToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	token, err = ExtractToken("bearer xyz")
	require.NoError(t, err)
	assert.Equal(t, "xyz", token)

	for _, header := range []string{"", "Bearer", "Basic abc", "Bearer a b"} {
		_, err := ExtractToken(header)
		assert.ErrorIs(t, err, ErrInvalidHeader, header)
	}
}

func TestIdentity_HasRole(t *testing.T) {
	id := Identity{Role: "ADMIN"}
	assert.True(t, id.HasRole("admin"))
	assert.False(t, id.HasRole("USER"))
}
