// Package session signs and verifies the storefront session cookie.
package session

import (
	"errors"
	"time"

	"ct-storefront/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type claims struct {
	CustomerID  string            `json:"customerId,omitempty"`
	AnonymousID string            `json:"anonymousId,omitempty"`
	CartID      map[string]string `json:"cartId,omitempty"`
	jwt.RegisteredClaims
}

// Codec encodes sessions as HS256 tokens with a fixed lifetime.
type Codec struct {
	secret []byte
	ttl    time.Duration
	logger *zap.Logger
	now    func() time.Time
}

// NewCodec builds a Codec. ttl is the token lifetime from issuance.
func NewCodec(secret string, ttl time.Duration, logger *zap.Logger) *Codec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Codec{
		secret: []byte(secret),
		ttl:    ttl,
		logger: logger,
		now:    time.Now,
	}
}

// TTL is the lifetime of issued tokens.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Encode signs s.
func (c *Codec) Encode(s domain.Session) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("session secret not configured")
	}
	now := c.now()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		CustomerID:  s.CustomerID,
		AnonymousID: s.AnonymousID,
		CartID:      s.CartID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})
	return tok.SignedString(c.secret)
}

// Decode verifies token and returns the session it carries. Bad signatures,
// expired tokens and garbage all yield an empty session.
func (c *Codec) Decode(token string) domain.Session {
	if token == "" {
		return domain.Session{}
	}
	var cl claims
	_, err := jwt.ParseWithClaims(token, &cl, func(*jwt.Token) (interface{}, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		c.logger.Warn("session token rejected", zap.Error(err))
		return domain.Session{}
	}
	out := domain.Session{
		CustomerID:  cl.CustomerID,
		AnonymousID: cl.AnonymousID,
	}
	if len(cl.CartID) > 0 {
		out.CartID = cl.CartID
	}
	return out
}
