// Package token issues and verifies the signed credentials backing a
// session: a short-lived access token presented on every request and a
// longer-lived refresh token exchanged for a new pair.
package token

import (
	"errors"
	"time"

	"github.com/arjunv/vidtube/internal/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Kind int

const (
	KindAccess Kind = iota
	KindRefresh
)

var (
	ErrTokenInvalid = errors.New("token is malformed or has a bad signature")
	ErrTokenExpired = errors.New("token has expired")
)

type Claims struct {
	jwt.RegisteredClaims
}

// Issuer signs both token kinds. Each kind has its own secret so a token of
// one kind can never verify as the other.
type Issuer struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewIssuer(cfg *config.Config) (*Issuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Issuer{
		accessSecret:  []byte(cfg.AccessTokenSecret),
		refreshSecret: []byte(cfg.RefreshTokenSecret),
		accessTTL:     cfg.AccessTokenTTL,
		refreshTTL:    cfg.RefreshTokenTTL,
	}, nil
}

func (i *Issuer) IssueAccess(userID uuid.UUID) (string, error) {
	return i.issue(userID, i.accessSecret, i.accessTTL)
}

func (i *Issuer) IssueRefresh(userID uuid.UUID) (string, error) {
	return i.issue(userID, i.refreshSecret, i.refreshTTL)
}

func (i *Issuer) issue(userID uuid.UUID, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	})
	return token.SignedString(secret)
}

// Verify checks the signature and expiry of tokenString as the given kind
// and returns the subject user id and expiry. ErrTokenExpired means the
// signature was good but the token is past its expiry; every other failure
// is ErrTokenInvalid.
func (i *Issuer) Verify(tokenString string, kind Kind) (uuid.UUID, time.Time, error) {
	secret := i.accessSecret
	if kind == KindRefresh {
		secret = i.refreshSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, time.Time{}, ErrTokenExpired
		}
		return uuid.Nil, time.Time{}, ErrTokenInvalid
	}
	if !parsed.Valid {
		return uuid.Nil, time.Time{}, ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, time.Time{}, ErrTokenInvalid
	}
	return userID, claims.ExpiresAt.Time, nil
}
