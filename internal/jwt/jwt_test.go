package jwt

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	s := NewJWTService("secret", 24*time.Hour)

	tok, err := s.GenerateToken(7, "A", "a@x.com")
	require.NoError(t, err)

	c, err := s.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), c.ID)
	assert.Equal(t, "A", c.Name)
	assert.Equal(t, "a@x.com", c.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), c.ExpiresAt.Time, time.Minute)
}

func TestValidateRejects(t *testing.T) {
	s := NewJWTService("secret", time.Hour)
	good, err := s.GenerateToken(1, "A", "a@x.com")
	require.NoError(t, err)

	expired, err := NewJWTService("secret", -time.Minute).GenerateToken(1, "A", "a@x.com")
	require.NoError(t, err)

	otherSecret, err := NewJWTService("other", time.Hour).GenerateToken(1, "A", "a@x.com")
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		ID: 1,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{ID: 1}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"garbage", "not.a.token"},
		{"expired", expired},
		{"wrong secret", otherSecret},
		{"alg none", none},
		{"no expiry", noExpiry},
		{"tampered", good[:len(good)-2] + "xx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateToken(tt.raw)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
