package auth

import (
	"errors"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/dmitrijs2005/auctionhouse/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// SessionIssuer mints and checks the HS256 tokens handed out after a
// successful login. The token subject is the username.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	clock  clock.Clock
}

func NewSessionIssuer(secret []byte, ttl time.Duration, c clock.Clock) *SessionIssuer {
	if c == nil {
		c = clock.New()
	}
	return &SessionIssuer{secret: secret, ttl: ttl, clock: c}
}

func (s *SessionIssuer) Issue(username string) (string, error) {
	now := s.clock.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	return token.SignedString(s.secret)
}

// Subject returns the username a token was issued to.
func (s *SessionIssuer) Subject(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Subject == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Subject, nil
}
