package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidCookie is returned when a session cookie cannot be decoded or
// fails signature/expiry checks. Callers should fall back to a fresh
// anonymous session.
var ErrInvalidCookie = errors.New("invalid session cookie")

type cookieClaims struct {
	jwt.RegisteredClaims
	Authenticated bool   `json:"auth"`
	Username      string `json:"username,omitempty"`
	PendingCode   string `json:"pending_code,omitempty"`
}

// CookieCodec serializes a Session into an HMAC-signed cookie value and back.
// The signature keeps client-held state tamper-evident; the state itself is
// not secret beyond the pending code, which is also persisted server-side.
type CookieCodec struct {
	secret []byte
	ttl    time.Duration
}

func NewCookieCodec(secret []byte, ttl time.Duration) *CookieCodec {
	return &CookieCodec{secret: secret, ttl: ttl}
}

// Encode signs the session state into a compact cookie value.
func (c *CookieCodec) Encode(s *Session) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cookieClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(c.ttl)),
		},
		Authenticated: s.authenticated,
		Username:      s.username,
		PendingCode:   s.pendingCode,
	})
	return token.SignedString(c.secret)
}

// Decode verifies the cookie value and reconstructs the session. Any
// signature, format, or expiry problem yields ErrInvalidCookie.
func (c *CookieCodec) Decode(value string) (*Session, error) {
	claims := &cookieClaims{}
	token, err := jwt.ParseWithClaims(value, claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidCookie
	}

	return &Session{
		authenticated: claims.Authenticated,
		username:      claims.Username,
		pendingCode:   claims.PendingCode,
	}, nil
}
