package repository

import (
	"context"

	"github.com/oksasatya/noteful/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	CountByUsername(ctx context.Context, username string) (int, error)
}
