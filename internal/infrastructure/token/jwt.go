// Package token implements the signed-token contract with HS256 JWTs.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/identitylab/user-api/internal/core/domain"
	"github.com/identitylab/user-api/internal/core/ports"
)

const defaultTTL = 24 * time.Hour

// JWTIssuer issues and verifies HS256-signed tokens. The secret is read-only
// after construction; Verify performs no I/O and keeps no record of issued
// tokens.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token carrying the claim's user id as subject plus issuance
// and expiry times. Nothing else goes into the payload.
func (i *JWTIssuer) Issue(claim ports.Claim) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   claim.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
	})
	return t.SignedString(i.secret)
}

// Verify checks signature and expiry. Every failure mode collapses into
// domain.ErrInvalidToken so callers cannot distinguish tampering from expiry.
func (i *JWTIssuer) Verify(tokenStr string) (ports.Claim, error) {
	parsed, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return i.secret, nil
	})
	if err != nil || !parsed.Valid {
		return ports.Claim{}, domain.ErrInvalidToken
	}

	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return ports.Claim{}, domain.ErrInvalidToken
	}
	return ports.Claim{UserID: claims.Subject}, nil
}
