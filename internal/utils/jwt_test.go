package utils

import (
	"strings"
	"testing"
	"time"

	"eventwave/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, 5*time.Hour)

	for _, role := range domain.AllRoles {
		token, err := svc.Issue(1, "ana", role)
		require.NoError(t, err)

		id, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, uint(1), id.UserID)
		assert.Equal(t, "ana", id.Username)
		assert.Equal(t, role, id.Role)
	}
}

func TestIssue_EmbedsClaims(t *testing.T) {
	issued := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, 5*time.Hour).WithClock(fixedClock(issued))

	token, err := svc.Issue(1, "bob", domain.RoleOrganizer)
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, "bob", claims.Subject)
	assert.Equal(t, domain.RoleOrganizer, claims.Role)
	assert.Equal(t, []string{"ROLE_ORGANIZER"}, claims.Authorities)
	assert.Equal(t, issued, claims.IssuedAt.Time.UTC())
	assert.Equal(t, issued.Add(5*time.Hour), claims.ExpiresAt.Time.UTC())
}

func TestIssue_RejectsUnknownRole(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	_, err := svc.Issue(1, "ana", domain.Role("ADMIN"))
	assert.Error(t, err)
	_, err = svc.Issue(1, "", domain.RoleAttendee)
	assert.Error(t, err)
	_, err = svc.Issue(0, "ana", domain.RoleAttendee)
	assert.Error(t, err)
}

func TestVerify_Expiry(t *testing.T) {
	issued := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := NewTokenService(testSecret, 5*time.Hour).WithClock(fixedClock(issued))
	token, err := svc.Issue(1, "ana", domain.RoleAttendee)
	require.NoError(t, err)

	before := svc.WithClock(fixedClock(issued.Add(5*time.Hour - time.Second)))
	_, err = before.Verify(token)
	assert.NoError(t, err)

	after := svc.WithClock(fixedClock(issued.Add(5*time.Hour + time.Second)))
	_, err = after.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_AnyAlteredByteIsInvalid(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	token, err := svc.Issue(1, "ana", domain.RoleAttendee)
	require.NoError(t, err)

	for i := 0; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := svc.Verify(tampered)
		assert.ErrorIs(t, err, ErrInvalidToken, "byte %d altered", i)
	}
}

func TestVerify_FailuresAreUndifferentiated(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)
	other := NewTokenService(strings.Repeat("z", 32), time.Hour)
	foreign, err := other.Issue(1, "ana", domain.RoleOrganizer)
	require.NoError(t, err)

	expiredSvc := svc.WithClock(fixedClock(time.Now().Add(-2 * time.Hour)))
	expired, err := expiredSvc.Issue(1, "ana", domain.RoleAttendee)
	require.NoError(t, err)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		Role:             domain.RoleOrganizer,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ana", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	})
	none, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	cases := map[string]string{
		"empty":        "",
		"garbage":      "not-a-token",
		"wrong key":    foreign,
		"expired":      expired,
		"alg none":     none,
		"two segments": "aaa.bbb",
	}
	for name, token := range cases {
		id, err := svc.Verify(token)
		assert.Nil(t, id, name)
		assert.Equal(t, ErrInvalidToken, err, name)
	}
}

func TestVerify_RejectsUnknownRoleClaim(t *testing.T) {
	claims := Claims{
		UserID: 1,
		Role:   domain.Role("ADMIN"),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "mallory",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingUserIDIsInvalid(t *testing.T) {
	claims := Claims{
		Role: domain.RoleOrganizer,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "eve",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingExpiryIsInvalid(t *testing.T) {
	claims := Claims{
		Role:             domain.RoleAttendee,
		RegisteredClaims: jwt.RegisteredClaims{Subject: "ana"},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewTokenService(testSecret, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHasher(t *testing.T) {
	h := NewPasswordHasher(4)
	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)
	assert.True(t, h.Matches(hash, "correct horse"))
	assert.False(t, h.Matches(hash, "wrong"))
	h.Burn("anything")
}

func TestCache_NilClientIsDisabled(t *testing.T) {
	var c *Cache
	var dest map[string]any
	assert.False(t, c.Get(t.Context(), "k", &dest))
	c.Set(t.Context(), "k", 1)
	c.Delete(t.Context(), "k")

	disabled := NewCache(nil, time.Minute)
	assert.False(t, disabled.Get(t.Context(), EventKey(1), &dest))
	assert.Equal(t, "event:7:reviews:summary", ReviewSummaryKey(7))
}
