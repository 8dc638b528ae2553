package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelbook/flightbooking/internal/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func newTestManager(clock *fakeClock) *TokenManager {
	return NewTokenManager("test-secret", "flightbooking", 24*time.Hour, WithClock(clock.Now))
}

func testUser() domain.User {
	avatar := "/public/avatars/avatar-7.png"
	return domain.User{ID: 7, Username: "alice", Email: "alice@example.com", AvatarURL: &avatar}
}

func TestTokenManager_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)}
	tm := newTestManager(clock)

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	session, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(7), session.UserID)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, "/public/avatars/avatar-7.png", session.AvatarURL)
}

func TestTokenManager_ExpiryWindow(t *testing.T) {
	issuedAt := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	clock := &fakeClock{t: issuedAt}
	tm := newTestManager(clock)

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	clock.t = issuedAt.Add(23*time.Hour + 59*time.Minute)
	_, err = tm.Verify(token)
	assert.NoError(t, err)

	clock.t = issuedAt.Add(24*time.Hour + time.Minute)
	_, err = tm.Verify(token)
	assert.ErrorIs(t, err, domain.ErrTokenExpired)
	assert.NotErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenManager_Missing(t *testing.T) {
	tm := newTestManager(&fakeClock{t: time.Now()})

	_, err := tm.Verify("")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)

	_, err = tm.Verify("   ")
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestTokenManager_TamperedPayload(t *testing.T) {
	tm := newTestManager(&fakeClock{t: time.Now()})

	token, err := tm.Issue(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)
	forged := strings.Replace(string(payload), `"id":7`, `"id":8`, 1)
	require.NotEqual(t, string(payload), forged)
	parts[1] = base64.RawURLEncoding.EncodeToString([]byte(forged))

	_, err = tm.Verify(strings.Join(parts, "."))
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestTokenManager_InvalidTokens(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	tm := newTestManager(clock)

	other := NewTokenManager("other-secret", "flightbooking", 24*time.Hour, WithClock(clock.Now))
	foreign, err := other.Issue(testUser())
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		ID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "flightbooking",
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	testCases := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "not-a-token"},
		{name: "wrong secret", token: foreign},
		{name: "alg none", token: unsigned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tm.Verify(tc.token)
			assert.ErrorIs(t, err, domain.ErrTokenInvalid)
		})
	}
}

func TestTokenManager_StaleClaimsStillAccepted(t *testing.T) {
	tm := newTestManager(&fakeClock{t: time.Now()})

	user := testUser()
	token, err := tm.Issue(user)
	require.NoError(t, err)

	user.Username = "alice-renamed"

	session, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", session.Username)
	assert.Equal(t, user.ID, session.UserID)
}
