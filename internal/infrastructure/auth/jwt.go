// Package auth validates the signed dashboard session tokens.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
)

// PrincipalClaims represent the subset of JWT claims we care about.
type PrincipalClaims struct {
	Subject   string
	Issuer    string
	Audience  []string
	Email     string
	Name      string
	ExpiresAt time.Time
	IssuedAt  time.Time
	TokenID   string
}

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// TokenValidator validates HMAC signed session tokens issued by the
// dashboard's auth frontend.
type TokenValidator struct {
	secret   []byte
	issuer   string
	audience string
	logger   zerolog.Logger
}

// NewTokenValidator returns a validator bound to the shared signing secret.
func NewTokenValidator(secret []byte, issuer, audience string, logger zerolog.Logger) (*TokenValidator, error) {
	if len(secret) == 0 {
		return nil, errors.New("auth secret is required")
	}
	return &TokenValidator{
		secret:   secret,
		issuer:   issuer,
		audience: audience,
		logger:   logger,
	}, nil
}

// Validate parses and verifies the raw token and extracts principal claims.
func (v *TokenValidator) Validate(rawToken string) (*PrincipalClaims, error) {
	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	},
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		v.logger.Debug().Err(err).Msg("token validation failed")
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}

	principal := &PrincipalClaims{
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		Audience: claims.Audience,
		Email:    claims.Email,
		Name:     claims.Name,
		TokenID:  claims.ID,
	}
	if claims.ExpiresAt != nil {
		principal.ExpiresAt = claims.ExpiresAt.Time
	}
	if claims.IssuedAt != nil {
		principal.IssuedAt = claims.IssuedAt.Time
	}
	return principal, nil
}
