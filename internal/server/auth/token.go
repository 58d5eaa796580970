// Package auth implements password hashing and the access/refresh JWT
// scheme of the server.
//
// Access and refresh tokens live in separate signing contexts: each has its
// own HMAC secret and lifetime, and every token carries a "type" claim that
// Verify checks against the class the caller expects.
package auth

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultAlgorithm is used when TokenConfig.Algorithm is empty.
const DefaultAlgorithm = "HS256"

// jtiBytes is the amount of randomness behind each refresh token id.
const jtiBytes = 32

// TokenConfig is the immutable input of NewTokenService.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	Algorithm     string
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
}

type signingContext struct {
	method jwt.SigningMethod
	secret []byte
	ttl    time.Duration
}

// TokenService issues and verifies access and refresh tokens. It holds no
// mutable state and is safe for concurrent use.
type TokenService struct {
	access  signingContext
	refresh signingContext
	newID   func() (string, error)
}

// NewTokenService validates cfg and builds the two signing contexts.
func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if len(cfg.AccessSecret) == 0 {
		return nil, errors.New("access token secret is empty")
	}
	if len(cfg.RefreshSecret) == 0 {
		return nil, errors.New("refresh token secret is empty")
	}
	if bytes.Equal(cfg.AccessSecret, cfg.RefreshSecret) {
		return nil, errors.New("access and refresh token secrets must differ")
	}

	alg := cfg.Algorithm
	if alg == "" {
		alg = DefaultAlgorithm
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}

	if cfg.AccessTTL < time.Second || cfg.RefreshTTL < time.Second {
		return nil, errors.New("token lifetimes must be at least one second")
	}

	return &TokenService{
		access:  signingContext{method: method, secret: bytes.Clone(cfg.AccessSecret), ttl: cfg.AccessTTL},
		refresh: signingContext{method: method, secret: bytes.Clone(cfg.RefreshSecret), ttl: cfg.RefreshTTL},
		newID:   func() (string, error) { return common.MakeRandURLToken(jtiBytes) },
	}, nil
}

// IssueAccessToken signs {sub, type: access, iat, exp: now+AccessTTL}.
func (s *TokenService) IssueAccessToken(p Principal, now time.Time) (string, time.Time, error) {
	return s.issue(s.access, p, TokenTypeAccess, "", now)
}

// IssueRefreshToken signs {sub, type: refresh, iat, exp: now+RefreshTTL, jti}
// under the refresh secret. Each call draws a new jti.
func (s *TokenService) IssueRefreshToken(p Principal, now time.Time) (string, time.Time, error) {
	jti, err := s.newID()
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generating token id: %w", err)
	}
	return s.issue(s.refresh, p, TokenTypeRefresh, jti, now)
}

// IssueTokenPair issues an access and a refresh token for the same subject.
func (s *TokenService) IssueTokenPair(p Principal, now time.Time) (*TokenPair, error) {
	access, accessExp, err := s.IssueAccessToken(p, now)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.IssueRefreshToken(p, now)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessExp,
		RefreshExpiresAt: refreshExp,
	}, nil
}

func (s *TokenService) issue(sc signingContext, p Principal, typ TokenType, jti string, now time.Time) (string, time.Time, error) {
	if p.Subject == "" {
		return "", time.Time{}, errors.New("principal has no subject")
	}
	exp := jwt.NewNumericDate(now.Add(sc.ttl))
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: exp,
			ID:        jti,
		},
		Type: typ,
	}

	signed, err := jwt.NewWithClaims(sc.method, claims).SignedString(sc.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("signing %s token: %w", typ, err)
	}
	return signed, exp.Time, nil
}

// Verify checks token against the signing context of expected and returns
// its claims. Errors wrap common.ErrTokenExpired when exp <= now and
// common.ErrInvalidToken for everything else: bad signature or algorithm,
// malformed input, a type other than expected, or a missing sub/exp/jti.
func (s *TokenService) Verify(token string, expected TokenType, now time.Time) (*Claims, error) {
	var sc signingContext
	switch expected {
	case TokenTypeAccess:
		sc = s.access
	case TokenTypeRefresh:
		sc = s.refresh
	default:
		return nil, fmt.Errorf("%w: unknown expected type %s", common.ErrInvalidToken, expected)
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return sc.secret, nil },
		jwt.WithValidMethods([]string{sc.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", common.ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if claims.Type != expected {
		return nil, fmt.Errorf("%w: got %s token, want %s", common.ErrInvalidToken, claims.Type, expected)
	}
	if claims.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", common.ErrInvalidToken)
	}
	if expected == TokenTypeRefresh && claims.ID == "" {
		return nil, fmt.Errorf("%w: missing token id", common.ErrInvalidToken)
	}
	return claims, nil
}
