package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenType tags a token as either an access or a refresh credential.
// Only the two declared values exist; anything else fails to decode.
type TokenType uint8

const (
	TokenTypeAccess TokenType = iota + 1
	TokenTypeRefresh
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeAccess:
		return "access"
	case TokenTypeRefresh:
		return "refresh"
	default:
		return fmt.Sprintf("TokenType(%d)", uint8(t))
	}
}

func (t TokenType) MarshalText() ([]byte, error) {
	switch t {
	case TokenTypeAccess, TokenTypeRefresh:
		return []byte(t.String()), nil
	default:
		return nil, fmt.Errorf("unknown token type %d", uint8(t))
	}
}

func (t *TokenType) UnmarshalText(b []byte) error {
	switch string(b) {
	case "access":
		*t = TokenTypeAccess
	case "refresh":
		*t = TokenTypeRefresh
	default:
		return fmt.Errorf("unknown token type %q", b)
	}
	return nil
}

// Principal is the identity carried inside a token.
type Principal struct {
	Subject string
}

// Claims is the signed payload of both token kinds. ID (jti) is set on
// refresh tokens only.
type Claims struct {
	jwt.RegisteredClaims
	Type TokenType `json:"type"`
}

// TokenPair is the result of a login or a refresh.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}
