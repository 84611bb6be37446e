package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/pkg/helpers"
	"github.com/oksasatya/noteful/pkg/mailer"
	mailtpl "github.com/oksasatya/noteful/pkg/mailer/templates"
)

// JobPublisher enqueues background jobs; helpers.RabbitPublisher in production.
type JobPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// RegisterInput has already passed field validation at the transport edge.
type RegisterInput struct {
	Username string
	Password string
	Fullname string
}

// UserService owns account registration.
type UserService struct {
	Users     repository.UserRepository
	Hasher    PasswordHasher
	Logger    *logrus.Logger
	Publisher JobPublisher
	AppName   string
	NotifyTo  string
}

func NewUserService(users repository.UserRepository, hasher PasswordHasher, logger *logrus.Logger) *UserService {
	return &UserService{Users: users, Hasher: hasher, Logger: logger}
}

// WithSignupNotifications enables the operator e-mail sent after each registration.
func (s *UserService) WithSignupNotifications(p JobPublisher, appName, notifyTo string) *UserService {
	s.Publisher = p
	s.AppName = appName
	s.NotifyTo = notifyTo
	return s
}

// Register creates an account. A taken username is a 422 on `username`.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	n, err := s.Users.CountByUsername(ctx, in.Username)
	if err != nil {
		return nil, Internal(err)
	}
	if n > 0 {
		return nil, usernameTaken()
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return nil, Internal(err)
	}
	u := &entity.User{
		Username: in.Username,
		Password: hash,
		Fullname: strings.TrimSpace(in.Fullname),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, usernameTaken()
		}
		return nil, Internal(err)
	}
	helpers.LogInfo(s.Logger, "user registered", logrus.Fields{"user_id": u.ID, "username": u.Username})
	s.notifySignup(ctx, u)
	return u, nil
}

func usernameTaken() *Error {
	return Validation("username", "Username already taken")
}

func (s *UserService) notifySignup(ctx context.Context, u *entity.User) {
	if s.Publisher == nil || s.NotifyTo == "" {
		return
	}
	job := mailer.EmailJob{
		To:       s.NotifyTo,
		Template: mailtpl.SignupNotification,
		Data: mailtpl.NewSignupNotificationData(s.AppName, u.Username, u.Fullname,
			mailtpl.WithUserID(u.ID), mailtpl.WithTime(u.CreatedAt)),
	}
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 3*time.Second)
	defer cancel()
	if err := s.Publisher.PublishJSON(pctx, job); err != nil {
		helpers.LogError(s.Logger, "enqueue signup notification failed", err, logrus.Fields{"user_id": u.ID})
	}
}
