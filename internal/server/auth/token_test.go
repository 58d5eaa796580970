package auth

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/debtmanager/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testTokenConfig() TokenConfig {
	return TokenConfig{
		AccessSecret:  []byte("access-secret"),
		RefreshSecret: []byte("refresh-secret"),
		Algorithm:     "HS256",
		AccessTTL:     30 * time.Minute,
		RefreshTTL:    7 * 24 * time.Hour,
	}
}

func newTestTokenService(t *testing.T) *TokenService {
	t.Helper()
	s, err := NewTokenService(testTokenConfig())
	require.NoError(t, err)
	return s
}

func TestNewTokenService_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*TokenConfig)
	}{
		{name: "empty access secret", mutate: func(c *TokenConfig) { c.AccessSecret = nil }},
		{name: "empty refresh secret", mutate: func(c *TokenConfig) { c.RefreshSecret = nil }},
		{name: "equal secrets", mutate: func(c *TokenConfig) { c.RefreshSecret = []byte("access-secret") }},
		{name: "asymmetric algorithm", mutate: func(c *TokenConfig) { c.Algorithm = "RS256" }},
		{name: "none algorithm", mutate: func(c *TokenConfig) { c.Algorithm = "none" }},
		{name: "unknown algorithm", mutate: func(c *TokenConfig) { c.Algorithm = "HS999" }},
		{name: "zero access ttl", mutate: func(c *TokenConfig) { c.AccessTTL = 0 }},
		{name: "sub-second refresh ttl", mutate: func(c *TokenConfig) { c.RefreshTTL = time.Millisecond }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testTokenConfig()
			tt.mutate(&cfg)
			_, err := NewTokenService(cfg)
			assert.Error(t, err)
		})
	}

	cfg := testTokenConfig()
	cfg.Algorithm = ""
	s, err := NewTokenService(cfg)
	require.NoError(t, err)
	assert.Equal(t, DefaultAlgorithm, s.access.method.Alg())
}

func TestAccessToken_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	tok, exp, err := s.IssueAccessToken(Principal{Subject: "alice"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(30*time.Minute), exp)

	claims, err := s.Verify(tok, TokenTypeAccess, testNow)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, TokenTypeAccess, claims.Type)
	assert.Empty(t, claims.ID)
	assert.True(t, claims.ExpiresAt.After(testNow))
}

func TestRefreshToken_RoundTripWithJTI(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	tok, exp, err := s.IssueRefreshToken(Principal{Subject: "alice"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, testNow.Add(7*24*time.Hour), exp)

	claims, err := s.Verify(tok, TokenTypeRefresh, testNow)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshToken_DistinctJTI(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)
	p := Principal{Subject: "alice"}

	a, _, err := s.IssueRefreshToken(p, testNow)
	require.NoError(t, err)
	b, _, err := s.IssueRefreshToken(p, testNow)
	require.NoError(t, err)

	ca, err := s.Verify(a, TokenTypeRefresh, testNow)
	require.NoError(t, err)
	cb, err := s.Verify(b, TokenTypeRefresh, testNow)
	require.NoError(t, err)
	assert.NotEqual(t, ca.ID, cb.ID)
	assert.NotEqual(t, a, b)
}

func TestIssueTokenPair_SharesSubject(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	pair, err := s.IssueTokenPair(Principal{Subject: "bob"}, testNow)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	ac, err := s.Verify(pair.AccessToken, TokenTypeAccess, testNow)
	require.NoError(t, err)
	rc, err := s.Verify(pair.RefreshToken, TokenTypeRefresh, testNow)
	require.NoError(t, err)
	assert.Equal(t, ac.Subject, rc.Subject)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))
}

func TestVerify_TypeConfusionRejected(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)
	pair, err := s.IssueTokenPair(Principal{Subject: "alice"}, testNow)
	require.NoError(t, err)

	_, err = s.Verify(pair.AccessToken, TokenTypeRefresh, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	_, err = s.Verify(pair.RefreshToken, TokenTypeAccess, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

// A token signed with the right secret but carrying the wrong type claim
// must still be rejected.
func TestVerify_TypeClaimMismatchSameSecret(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	forged, _, err := s.issue(s.access, Principal{Subject: "alice"}, TokenTypeRefresh, "id", testNow)
	require.NoError(t, err)

	_, err = s.Verify(forged, TokenTypeAccess, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
	assert.NotErrorIs(t, err, common.ErrTokenExpired)
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	tok, _, err := s.IssueAccessToken(Principal{Subject: "alice"}, testNow)
	require.NoError(t, err)

	_, err = s.Verify(tok, TokenTypeAccess, testNow.Add(30*time.Minute+time.Second))
	assert.ErrorIs(t, err, common.ErrTokenExpired)
	assert.NotErrorIs(t, err, common.ErrInvalidToken)

	// exp == now is already expired.
	_, err = s.Verify(tok, TokenTypeAccess, testNow.Add(30*time.Minute))
	assert.ErrorIs(t, err, common.ErrTokenExpired)

	_, err = s.Verify(tok, TokenTypeAccess, testNow.Add(30*time.Minute-time.Second))
	assert.NoError(t, err)
}

func TestVerify_TamperedSignature(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	tok, _, err := s.IssueAccessToken(Principal{Subject: "alice"}, testNow)
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	assert.NotPanics(t, func() {
		_, err = s.Verify(tampered, TokenTypeAccess, testNow)
	})
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	for _, tok := range []string{"", "not.a.jwt", "abc", "a.b.c.d"} {
		_, err := s.Verify(tok, TokenTypeAccess, testNow)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "token %q", tok)
	}
}

func TestVerify_WrongSecret(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	other := testTokenConfig()
	other.AccessSecret = []byte("someone-else")
	foreign, err := NewTokenService(other)
	require.NoError(t, err)

	tok, _, err := foreign.IssueAccessToken(Principal{Subject: "alice"}, testNow)
	require.NoError(t, err)

	_, err = s.Verify(tok, TokenTypeAccess, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
		Type:             TokenTypeAccess,
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("access-secret"))
	require.NoError(t, err)

	_, err = s.Verify(tok, TokenTypeAccess, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = s.Verify(none, TokenTypeAccess, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestVerify_MissingClaims(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)
	secret := []byte("access-secret")

	sign := func(c jwt.Claims) string {
		tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(secret)
		require.NoError(t, err)
		return tok
	}

	noSub := sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(testNow.Add(time.Hour))},
		Type:             TokenTypeAccess,
	})
	noExp := sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"},
		Type:             TokenTypeAccess,
	})
	noType := sign(jwt.MapClaims{"sub": "alice", "exp": testNow.Add(time.Hour).Unix()})
	badType := sign(jwt.MapClaims{"sub": "alice", "exp": testNow.Add(time.Hour).Unix(), "type": "admin"})

	for name, tok := range map[string]string{"sub": noSub, "exp": noExp, "type": noType, "bad type": badType} {
		_, err := s.Verify(tok, TokenTypeAccess, testNow)
		assert.ErrorIs(t, err, common.ErrInvalidToken, "missing %s", name)
	}
}

func TestVerify_RefreshWithoutJTI(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	tok, _, err := s.issue(s.refresh, Principal{Subject: "alice"}, TokenTypeRefresh, "", testNow)
	require.NoError(t, err)

	_, err = s.Verify(tok, TokenTypeRefresh, testNow)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestIssue_EmptySubject(t *testing.T) {
	t.Parallel()
	s := newTestTokenService(t)

	_, err := s.IssueTokenPair(Principal{}, testNow)
	assert.Error(t, err)
}

func TestTokenType_Text(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(struct {
		T TokenType `json:"t"`
	}{TokenTypeRefresh})
	require.NoError(t, err)
	assert.JSONEq(t, `{"t":"refresh"}`, string(b))

	var tt TokenType
	require.NoError(t, tt.UnmarshalText([]byte("access")))
	assert.Equal(t, TokenTypeAccess, tt)
	assert.Error(t, tt.UnmarshalText([]byte("Access")))

	_, err = TokenType(0).MarshalText()
	assert.Error(t, err)
}
