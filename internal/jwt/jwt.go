package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers bad signatures, expiry and malformed input alike.
var ErrInvalidToken = errors.New("invalid token")

// Claims carries the identity of a session. It has no role:
// privileged routes re-read the role from storage.
type Claims struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies session tokens with a server-held secret
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTService(secret string, ttl time.Duration) *JWTService {
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

// TTL is the lifetime of issued tokens
func (s *JWTService) TTL() time.Duration {
	return s.ttl
}

// GenerateToken issues a signed, time-limited token for the given identity
func (s *JWTService) GenerateToken(id uint, name, email string) (string, error) {
	now := time.Now()
	c := Claims{
		ID:    id,
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

// ValidateToken returns the claims of a valid token or ErrInvalidToken
func (s *JWTService) ValidateToken(raw string) (*Claims, error) {
	tok, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, ErrInvalidToken
	}
	c, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid || c.ID == 0 {
		return nil, ErrInvalidToken
	}
	return c, nil
}
