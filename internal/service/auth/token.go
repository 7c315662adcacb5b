package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/wafr/wafradmin/internal/models"
)

// AccessTokenClaims carry the session id the token was issued for.
// The signature is what makes the persisted session trustworthy: the original
// console trusted the stored descriptor on sight, which is fine in-browser
// but not over a network.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	SessionID uuid.UUID `json:"sid"`
}

// tokenManager signs and parses session access tokens
type tokenManager struct {
	key string
	alg jwt.SigningMethod
}

// Issue signs a token bound to the session, expiring with it
func (m tokenManager) Issue(session models.Session) (models.IssuedToken, error) {
	token := jwt.NewWithClaims(
		m.alg,
		AccessTokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ID:        uuid.NewString(),
				IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
				ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			},
			SessionID: session.ID,
		},
	)

	signed, err := token.SignedString([]byte(m.key))
	if err != nil {
		return models.IssuedToken{}, fmt.Errorf("error while signing access token. Err: %w", err)
	}

	return models.IssuedToken{Value: signed, ExpiresAt: session.ExpiresAt}, nil
}

// Parse validates the signature and returns the session id the token carries
func (m tokenManager) Parse(access string) (uuid.UUID, error) {
	claims := &AccessTokenClaims{}

	_, err := jwt.ParseWithClaims(
		access,
		claims,
		func(t *jwt.Token) (any, error) {
			return []byte(m.key), nil
		},
		jwt.WithValidMethods([]string{m.alg.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("error while parsing or validating token. Err: %w", err)
	}

	return claims.SessionID, nil
}

// sessionExpired reports whether the persisted session outlived its ttl
func sessionExpired(session models.Session, now time.Time) bool {
	return session.ExpiresAt.Before(now)
}
