package service

import (
	"context"
	"strings"

	"github.com/itchan-dev/shopkeeper/shared/domain"
	"github.com/itchan-dev/shopkeeper/shared/errors"
	"github.com/itchan-dev/shopkeeper/shared/logger"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	Register(ctx context.Context, creds domain.Credentials, firstName, lastName string) (domain.User, error)
	Login(ctx context.Context, creds domain.Credentials) (string, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

const maxPasswordBytes = 72

type Auth struct {
	storage AuthStorage
	jwt     Jwt
}

type AuthStorage interface {
	SaveUser(ctx context.Context, data domain.UserCreationData) (domain.User, error)
	UserByEmail(ctx context.Context, email domain.Email) (domain.User, error)
	UserById(ctx context.Context, id domain.UserId) (domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
}

type Jwt interface {
	NewToken(user domain.User) (string, error)
	DecodeToken(jwtStr string) (domain.UserId, error)
}

func NewAuth(storage AuthStorage, jwt Jwt) *Auth {
	return &Auth{
		storage: storage,
		jwt:     jwt,
	}
}

// Register hashes the password and stores a new user. Nothing is stored if
// either credential is missing.
func (a *Auth) Register(ctx context.Context, creds domain.Credentials, firstName, lastName string) (domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" {
		return domain.User{}, errors.Validation("Required fields missing: email")
	}
	if creds.Password == "" {
		return domain.User{}, errors.Validation("Required fields missing: password")
	}
	// bcrypt only hashes the first 72 bytes and refuses longer input
	if len(creds.Password) > maxPasswordBytes {
		return domain.User{}, errors.Validation("Invalid fields: password")
	}

	passHash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.Log.Error("failed to hash password", "error", err)
		return domain.User{}, err
	}

	user, err := a.storage.SaveUser(ctx, domain.UserCreationData{
		Email:     email,
		PassHash:  string(passHash),
		FirstName: firstName,
		LastName:  lastName,
	})
	if err != nil {
		return domain.User{}, err
	}
	logger.Log.Info("user registered", "user_id", user.Id)
	return user, nil
}

// Login checks the credentials and returns an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, creds domain.Credentials) (string, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))

	user, err := a.storage.UserByEmail(ctx, email)
	if err != nil {
		// to not leak existing users
		if errors.IsNotFound(err) {
			return "", errors.Unauthenticated("Invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PassHash), []byte(creds.Password)); err != nil {
		logger.Log.Debug("password verification failed", "user_id", user.Id)
		return "", errors.Unauthenticated("Invalid credentials")
	}

	if !user.Activated {
		return "", errors.Forbidden("Account deactivated")
	}

	token, err := a.jwt.NewToken(user)
	if err != nil {
		logger.Log.Error("failed to create jwt token", "user_id", user.Id, "error", err)
		return "", err
	}

	return token, nil
}

// Verify resolves a bearer token to the user it was issued for. The user is
// read from storage so flag changes take effect on the next request.
func (a *Auth) Verify(ctx context.Context, token string) (*domain.User, error) {
	userId, err := a.jwt.DecodeToken(token)
	if err != nil {
		return nil, err
	}
	user, err := a.storage.UserById(ctx, userId)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, errors.Unauthenticated("Invalid token")
		}
		return nil, err
	}
	return &user, nil
}

func (a *Auth) Users(ctx context.Context) ([]domain.User, error) {
	return a.storage.Users(ctx)
}
