package application

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/pkg/helpers"
)

// DeleteFunc removes a record together with whatever references it.
type DeleteFunc func(ctx context.Context, id, ownerID string) error

// NamedService is the CRUD service shared by folders and tags. Both are a
// unique-per-owner name and nothing else.
type NamedService[T any] struct {
	Repo   repository.NamedRepository[T]
	Remove DeleteFunc
	Label  string
	Logger *logrus.Logger
}

func NewFolderService(repo repository.FolderRepository, cascade *CascadeCoordinator, logger *logrus.Logger) *FolderService {
	return &FolderService{Repo: repo, Remove: cascade.DeleteFolder, Label: "folder", Logger: logger}
}

func NewTagService(repo repository.TagRepository, cascade *CascadeCoordinator, logger *logrus.Logger) *TagService {
	return &TagService{Repo: repo, Remove: cascade.DeleteTag, Label: "Tag", Logger: logger}
}

func (s *NamedService[T]) List(ctx context.Context, ownerID string) ([]T, error) {
	items, err := s.Repo.List(ctx, ownerID)
	if err != nil {
		return nil, Internal(err)
	}
	return items, nil
}

func (s *NamedService[T]) Get(ctx context.Context, id, ownerID string) (*T, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.Get(ctx, pid, ownerID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return item, nil
}

func (s *NamedService[T]) Create(ctx context.Context, name, ownerID string) (*T, error) {
	if strings.TrimSpace(name) == "" {
		return nil, MissingField("name")
	}
	item, err := s.Repo.Create(ctx, name, ownerID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	helpers.LogDebug(s.Logger, s.Label+" created", logrus.Fields{"user_id": ownerID})
	return item, nil
}

// Update renames the record. The name is checked before the id.
func (s *NamedService[T]) Update(ctx context.Context, id, name, ownerID string) (*T, error) {
	if strings.TrimSpace(name) == "" {
		return nil, MissingField("name")
	}
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.Rename(ctx, pid, name, ownerID)
	if err != nil {
		return nil, s.mapErr(err)
	}
	return item, nil
}

// Delete succeeds whether or not the record existed.
func (s *NamedService[T]) Delete(ctx context.Context, id, ownerID string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Remove(ctx, pid, ownerID); err != nil {
		return Internal(err)
	}
	return nil
}

func (s *NamedService[T]) mapErr(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NotFound()
	case errors.Is(err, repository.ErrDuplicate):
		return DuplicateName(s.Label)
	default:
		return Internal(err)
	}
}

func parseID(id string) (string, error) {
	pid, err := uuid.Parse(id)
	if err != nil {
		return "", InvalidID()
	}
	return pid.String(), nil
}
