package repository

import (
	"context"

	"github.com/oksasatya/noteful/internal/domain/entity"
)

// NamedRepository is an owner-scoped store for entities identified by a name
// that is unique per owner. Every method filters by ownerID, so a record of
// another owner behaves exactly like a missing one.
type NamedRepository[T any] interface {
	// List returns the owner's records sorted by name ascending.
	List(ctx context.Context, ownerID string) ([]T, error)
	Get(ctx context.Context, id, ownerID string) (*T, error)
	// FindByIDs returns the owned records among ids sorted by name; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string, ownerID string) ([]T, error)
	// Count returns how many of ids exist for the owner.
	Count(ctx context.Context, ids []string, ownerID string) (int, error)
	// Create returns ErrDuplicate when the owner already has the name.
	Create(ctx context.Context, name, ownerID string) (*T, error)
	// Rename returns ErrNotFound for a miss and ErrDuplicate on a name clash.
	Rename(ctx context.Context, id, name, ownerID string) (*T, error)
	// Delete is a no-op when nothing matches.
	Delete(ctx context.Context, id, ownerID string) error
}

type FolderRepository = NamedRepository[entity.Folder]

type TagRepository = NamedRepository[entity.Tag]
