package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/pkg/helpers"
)

// PasswordHasher hashes and checks passwords; helpers.BcryptHasher in production.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// AuthService checks credentials and mints bearer tokens.
type AuthService struct {
	Users  repository.UserRepository
	Hasher PasswordHasher
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, hasher PasswordHasher, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Hasher: hasher, JWT: jwt, Logger: logger}
}

// Authenticate returns the user for a valid username/password pair.
// Unknown usernames and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*entity.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, Internal(err)
	}
	if !s.Hasher.Verify(password, u.Password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	token, _, err := s.JWT.Issue(IdentityOf(u))
	if err != nil {
		return "", Internal(err)
	}
	helpers.LogInfo(s.Logger, "user logged in", logrus.Fields{"user_id": u.ID})
	return token, nil
}

// Refresh re-issues a token for an identity that already passed Verify.
// The claims are rebuilt from the stored account, which must still exist.
func (s *AuthService) Refresh(ctx context.Context, id helpers.Identity) (string, error) {
	u, err := s.Users.GetByID(ctx, id.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUnauthorized
		}
		return "", Internal(err)
	}
	token, _, err := s.JWT.Refresh(IdentityOf(u))
	if err != nil {
		return "", Internal(err)
	}
	return token, nil
}

// VerifyToken validates a bearer token and returns its identity.
func (s *AuthService) VerifyToken(token string) (*helpers.Identity, error) {
	if token == "" {
		return nil, ErrUnauthorized
	}
	id, err := s.JWT.Verify(token)
	if err != nil {
		return nil, ErrUnauthorized
	}
	return id, nil
}

func IdentityOf(u *entity.User) helpers.Identity {
	return helpers.Identity{ID: u.ID, Username: u.Username, Fullname: u.Fullname}
}
