// Package token issues and verifies the signed bearer tokens that carry a
// user's identity between requests. Tokens are self-contained: the server
// keeps no session table, so a token is valid exactly when its signature
// checks out against the configured secret and it has not expired.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"TASKTRACKER_BACK-END/internal/config"
)

// Verification failures are collapsed into one of these sentinels so the
// caller can log the sub-case without leaking it to clients.
var (
	ErrMalformed    = errors.New("token is malformed")
	ErrBadSignature = errors.New("token signature is invalid")
	ErrExpired      = errors.New("token is expired")
)

// Claims is the token payload: registered claims plus the subject user id.
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

// Codec signs and verifies identity tokens with a process-wide secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec creates a Codec from the JWT configuration.
func NewCodec(cfg *config.JWTConfig) *Codec {
	return &Codec{
		secret: []byte(cfg.Secret),
		ttl:    cfg.AccessTokenTTL,
	}
}

// Issue generates a signed token for the given user, valid from now until
// now plus the configured TTL.
func (c *Codec) Issue(userID uuid.UUID, now time.Time) (string, error) {
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify parses and validates a token string and returns the embedded user
// id. Failures map to ErrMalformed, ErrBadSignature, or ErrExpired.
func (c *Codec) Verify(tokenString string, now time.Time) (uuid.UUID, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return uuid.Nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return uuid.Nil, ErrBadSignature
		default:
			return uuid.Nil, ErrMalformed
		}
	}

	if !token.Valid {
		return uuid.Nil, ErrMalformed
	}

	return claims.UserID, nil
}
