package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	signed, err := m.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestVerify_WrongSecret(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	other := NewManager("other-secret", time.Hour)

	signed, err := m.Issue("user-123")
	require.NoError(t, err)

	_, err = other.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_Expired(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	now := time.Now()
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
		},
		UserID: "user-123",
	})
	signed, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestVerify_Garbage(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	_, err := m.Verify("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_WrongSigningMethod(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	// alg=none tokens must never verify
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: "user-123"})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MissingUserID(t *testing.T) {
	m := NewManager("test-secret", time.Hour)

	claims := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := claims.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestDefaultTTL(t *testing.T) {
	m := NewManager("test-secret", 0)
	assert.Equal(t, 7*24*time.Hour, m.TTL())

	signed, err := m.Issue("user-123")
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)

	expectedExpiry := time.Now().Add(7 * 24 * time.Hour)
	assert.WithinDuration(t, expectedExpiry, claims.ExpiresAt.Time, time.Minute)
}
