package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWT_RoundTrip(t *testing.T) {
	svc := NewJWTService("secret", "club-dues", time.Hour)

	token, expiresAt, err := svc.GenerateToken("admin")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "club-dues", claims.Issuer)
}

func TestJWT_Expired(t *testing.T) {
	svc := NewJWTService("secret", "club-dues", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, _, err := svc.GenerateToken("admin")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWT_WrongSecretOrIssuer(t *testing.T) {
	token, _, err := NewJWTService("secret", "club-dues", time.Hour).GenerateToken("admin")
	require.NoError(t, err)

	_, err = NewJWTService("other", "club-dues", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTService("secret", "someone-else", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTService("secret", "club-dues", time.Hour).ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAdmin_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := NewAdmin("Admin", string(hash))

	username, err := admin.Authenticate(" ADMIN ", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	_, err = admin.Authenticate("admin", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = admin.Authenticate("coach", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAdmin_LoginDisabledWithoutHash(t *testing.T) {
	_, err := NewAdmin("admin", "").Authenticate("admin", "anything")
	assert.ErrorIs(t, err, ErrLoginDisabled)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("tom")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("tom")))
}
