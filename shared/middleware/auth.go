package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/itchan-dev/shopkeeper/shared/domain"
	internal_errors "github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
	"github.com/itchan-dev/shopkeeper/shared/utils"
)

// UserVerifier resolves a bearer token to a stored user.
type UserVerifier interface {
	Verify(ctx context.Context, token string) (*domain.User, error)
}

// Key to store the resolved user in the request context
type key int

const UserKey key = 0

const ForbiddenMessage = "You are not allowed to perform this operation"

type Auth struct {
	verifier UserVerifier
}

func NewAuth(verifier UserVerifier) *Auth {
	return &Auth{verifier: verifier}
}

// NeedAuth resolves the bearer token and attaches the user to the request
// context. Requests without a valid token never reach next.
func (a *Auth) NeedAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, found := bearerToken(r)
			if !found {
				utils.WriteErrorAndStatusCode(w, internal_errors.Unauthenticated("Please sign-in"))
				return
			}

			user, err := a.verifier.Verify(r.Context(), token)
			if err != nil {
				if internal_errors.StatusCode(err) != http.StatusUnauthorized {
					logger.Log.Error("failed to verify token", "error", err)
				}
				utils.WriteErrorAndStatusCode(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// AdminOnly must run after NeedAuth. It never grants access without a
// resolved admin user in the context.
func (a *Auth) AdminOnly() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r)
			if user == nil {
				utils.WriteErrorAndStatusCode(w, internal_errors.Unauthenticated("Please sign-in"))
				return
			}
			if !user.Admin {
				logger.Log.Info("admin operation denied", "user_id", user.Id, "method", r.Method, "path", r.URL.Path)
				utils.WriteErrorAndStatusCode(w, internal_errors.Forbidden(ForbiddenMessage))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	token = strings.TrimSpace(token)
	return token, found && token != ""
}

func WithUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// GetUserFromContext retrieves the user from the context
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(UserKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
