package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
)

const issuer = "shopkeeper"

type Jwt struct {
	secretKey string
	ttl       time.Duration
	now       func() time.Time
}

func New(secretKey string, ttl time.Duration) *Jwt {
	return &Jwt{secretKey: secretKey, ttl: ttl, now: time.Now}
}

// WithClock replaces the time source used for issuing and validating tokens.
func (j *Jwt) WithClock(now func() time.Time) *Jwt {
	j.now = now
	return j
}

// NewToken signs a token asserting the bearer is user. No other user state is
// embedded: the admin flag is read from storage on every request.
func (j *Jwt) NewToken(user domain.User) (string, error) {
	now := j.now()
	claims := jwt.RegisteredClaims{
		Subject:   user.Id.String(),
		Issuer:    issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		logger.Log.Error("failed to sign token", "user_id", user.Id, "error", err)
		return "", errors.New("Can't create token")
	}

	return tokenString, nil
}

// DecodeToken validates signature, algorithm and expiry and returns the
// asserted user id. Every failure is reported as 401.
func (j *Jwt) DecodeToken(jwtStr string) (domain.UserId, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(jwtStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	},
		jwt.WithTimeFunc(j.now),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return uuid.Nil, internal_errors.Unauthenticated("Token expired")
		}
		logger.Log.Debug("token rejected", "error", err)
		return uuid.Nil, internal_errors.Unauthenticated("Invalid token")
	}
	if !token.Valid {
		return uuid.Nil, internal_errors.Unauthenticated("Invalid token")
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, internal_errors.Unauthenticated("Invalid token")
	}
	return id, nil
}
