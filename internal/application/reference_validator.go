package application

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/noteful/internal/domain/repository"
)

// ReferenceValidator confirms that folder and tag ids in a note payload
// belong to the note's owner.
type ReferenceValidator struct {
	Folders repository.FolderRepository
	Tags    repository.TagRepository
}

func NewReferenceValidator(folders repository.FolderRepository, tags repository.TagRepository) *ReferenceValidator {
	return &ReferenceValidator{Folders: folders, Tags: tags}
}

// FolderRef checks an optional folder id and returns it in canonical form.
// An empty id means "no folder" and is always valid.
func (v *ReferenceValidator) FolderRef(ctx context.Context, folderID, ownerID string) (string, error) {
	if folderID == "" {
		return "", nil
	}
	id, err := uuid.Parse(folderID)
	if err != nil {
		return "", InvalidReference("folderId")
	}
	n, err := v.Folders.Count(ctx, []string{id.String()}, ownerID)
	if err != nil {
		return "", Internal(err)
	}
	if n == 0 {
		return "", InvalidReference("folderId")
	}
	return id.String(), nil
}

// TagRefs checks that every id is well formed and owned by ownerID.
// Duplicates collapse; the result keeps first-seen order.
func (v *ReferenceValidator) TagRefs(ctx context.Context, tagIDs []string, ownerID string) ([]string, error) {
	if len(tagIDs) == 0 {
		return []string{}, nil
	}
	seen := make(map[string]struct{}, len(tagIDs))
	ids := make([]string, 0, len(tagIDs))
	for _, raw := range tagIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, InvalidReference("tag")
		}
		s := id.String()
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		ids = append(ids, s)
	}
	n, err := v.Tags.Count(ctx, ids, ownerID)
	if err != nil {
		return nil, Internal(err)
	}
	if n != len(ids) {
		return nil, InvalidReference("tag")
	}
	return ids, nil
}

// Validate runs the folder and tag checks concurrently and returns the
// canonical ids. When both fail the first error observed wins.
func (v *ReferenceValidator) Validate(ctx context.Context, folderID string, tagIDs []string, ownerID string) (string, []string, error) {
	var (
		folder string
		tags   []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		folder, err = v.FolderRef(gctx, folderID, ownerID)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = v.TagRefs(gctx, tagIDs, ownerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", nil, err
	}
	return folder, tags, nil
}

// DecodeTagRefs reads the raw `tags` member of a note payload. Absent or null
// means no tags. A non-array is InvalidType; a non-string element is an
// invalid tag reference.
func DecodeTagRefs(raw json.RawMessage) ([]string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}
	if trimmed[0] != '[' {
		return nil, InvalidType("tags")
	}
	var items []any
	if err := json.Unmarshal(trimmed, &items); err != nil {
		return nil, InvalidType("tags")
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		s, ok := it.(string)
		if !ok {
			return nil, InvalidReference("tag")
		}
		out = append(out, s)
	}
	return out, nil
}
