package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setSecret(t *testing.T) {
	t.Helper()
	viper.Set("auth.secret", "test-secret")
	viper.Set("auth.token_ttl_minutes", 5)
}

func TestIssueAndVerify(t *testing.T) {
	setSecret(t)

	tokenString, err := Issue(42, "user@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)

	userID, err := Verify(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestVerifyKeepsEmailClaim(t *testing.T) {
	setSecret(t)

	tokenString, err := Issue(7, "user@example.com")
	require.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(5*time.Minute), claims.ExpiresAt.Time, 10*time.Second)
}

func TestVerifyMalformed(t *testing.T) {
	setSecret(t)

	_, err := Verify("not-a-jwt")
	assert.Error(t, err)
}

func TestVerifyWrongSignature(t *testing.T) {
	setSecret(t)

	other := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := other.SignedString([]byte("another-secret"))
	require.NoError(t, err)

	_, err = Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyExpired(t *testing.T) {
	setSecret(t)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = Verify(tokenString)
	assert.Error(t, err)
}

func TestVerifyMissingSubject(t *testing.T) {
	setSecret(t)

	noSubject := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	tokenString, err := noSubject.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = Verify(tokenString)
	assert.Error(t, err)
}
