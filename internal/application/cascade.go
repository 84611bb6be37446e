package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/pkg/helpers"
	"github.com/oksasatya/noteful/pkg/metrics"
)

// CascadeCoordinator deletes folders and tags after detaching them from the
// owner's notes. Both steps share one transaction.
type CascadeCoordinator struct {
	Tx      repository.Transactor
	Folders repository.FolderRepository
	Tags    repository.TagRepository
	Notes   repository.NoteRepository
	Logger  *logrus.Logger
	Metrics metrics.Recorder
}

func NewCascadeCoordinator(tx repository.Transactor, folders repository.FolderRepository, tags repository.TagRepository, notes repository.NoteRepository, logger *logrus.Logger) *CascadeCoordinator {
	return &CascadeCoordinator{Tx: tx, Folders: folders, Tags: tags, Notes: notes, Logger: logger, Metrics: metrics.Nop{}}
}

// DeleteFolder clears folderId on every note of ownerID in the folder, then
// removes the folder. Notes themselves are kept.
func (c *CascadeCoordinator) DeleteFolder(ctx context.Context, id, ownerID string) error {
	var detached int64
	err := c.Tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := c.Notes.ClearFolder(ctx, id, ownerID)
		if err != nil {
			return err
		}
		detached = n
		return c.Folders.Delete(ctx, id, ownerID)
	})
	if err != nil {
		return err
	}
	c.done("folder", id, detached)
	return nil
}

// DeleteTag strips the tag from every note of ownerID, then removes it.
func (c *CascadeCoordinator) DeleteTag(ctx context.Context, id, ownerID string) error {
	var detached int64
	err := c.Tx.WithinTx(ctx, func(ctx context.Context) error {
		n, err := c.Notes.RemoveTag(ctx, id, ownerID)
		if err != nil {
			return err
		}
		detached = n
		return c.Tags.Delete(ctx, id, ownerID)
	})
	if err != nil {
		return err
	}
	c.done("tag", id, detached)
	return nil
}

func (c *CascadeCoordinator) done(kind, id string, detached int64) {
	helpers.LogDebug(c.Logger, kind+" deleted", logrus.Fields{kind + "_id": id, "notes_detached": detached})
	if c.Metrics != nil {
		c.Metrics.RecordCascade(kind, detached)
	}
}
