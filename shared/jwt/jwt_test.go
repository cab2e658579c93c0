package jwt

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secretKey = "testJwtKey"

var user = domain.User{Id: uuid.New(), Email: "test@mail.ru"}

func requireUnauthenticated(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	e, ok := err.(*internal_errors.ErrorWithStatusCode)
	require.True(t, ok, "Error should be ErrorWithStatusCode")
	assert.Equal(t, http.StatusUnauthorized, e.StatusCode)
}

func TestDecodeTokenCorrect(t *testing.T) {
	j := New(secretKey, 100*time.Hour)
	token, err := j.NewToken(user)
	require.NoError(t, err)

	id, err := j.DecodeToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.Id, id)
}

func TestDecodeTokenTTL(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	j := New(secretKey, 100*time.Hour).WithClock(func() time.Time { return now })

	token, err := j.NewToken(user)
	require.NoError(t, err)

	now = issued.Add(99 * time.Hour)
	id, err := j.DecodeToken(token)
	require.NoError(t, err, "token must be valid before TTL elapses")
	assert.Equal(t, user.Id, id)

	now = issued.Add(101 * time.Hour)
	_, err = j.DecodeToken(token)
	requireUnauthenticated(t, err)
	assert.Equal(t, "Token expired", err.Error())
}

func TestDecodeTokenInvalidSecretKey(t *testing.T) {
	token, err := New(secretKey, time.Hour).NewToken(user)
	require.NoError(t, err)

	_, err = New("invalidSecret", time.Hour).DecodeToken(token)
	requireUnauthenticated(t, err)
}

func TestDecodeTokenGarbage(t *testing.T) {
	_, err := New(secretKey, time.Hour).DecodeToken("not.a.token")
	requireUnauthenticated(t, err)
}

func TestDecodeTokenWrongAlgorithm(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   user.Id.String(),
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = New(secretKey, time.Hour).DecodeToken(token)
	requireUnauthenticated(t, err)
}

func TestDecodeTokenBadSubject(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		Issuer:    issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
	require.NoError(t, err)

	_, err = New(secretKey, time.Hour).DecodeToken(token)
	requireUnauthenticated(t, err)
}
