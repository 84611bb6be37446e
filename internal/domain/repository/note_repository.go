package repository

import (
	"context"

	"github.com/oksasatya/noteful/internal/domain/entity"
)

// NoteRepository stores notes together with their tag set.
// Returned notes carry TagIDs; Tags is left for the caller to populate.
type NoteRepository interface {
	// List applies every non-empty filter field (AND) and sorts by updatedAt descending.
	List(ctx context.Context, f entity.NoteFilter) ([]entity.Note, error)
	Get(ctx context.Context, id, ownerID string) (*entity.Note, error)
	Create(ctx context.Context, n *entity.Note) error
	// Update is scoped by n.ID and n.UserID and returns ErrNotFound on a miss.
	Update(ctx context.Context, n *entity.Note) error
	Delete(ctx context.Context, id, ownerID string) error

	// ClearFolder unsets the folder on every owner note that references it.
	ClearFolder(ctx context.Context, folderID, ownerID string) (int64, error)
	// RemoveTag pulls the tag out of every owner note's tag set.
	RemoveTag(ctx context.Context, tagID, ownerID string) (int64, error)
}
