package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
)

type noteStore struct {
	s *Store
}

func copyNote(n entity.Note) entity.Note {
	n.TagIDs = append([]string{}, n.TagIDs...)
	if n.FolderID != nil {
		id := *n.FolderID
		n.FolderID = &id
	}
	n.Tags = nil
	return n
}

func matches(n entity.Note, f entity.NoteFilter) bool {
	if n.UserID != f.UserID {
		return false
	}
	if f.SearchTerm != "" {
		term := strings.ToLower(f.SearchTerm)
		if !strings.Contains(strings.ToLower(n.Title), term) && !strings.Contains(strings.ToLower(n.Content), term) {
			return false
		}
	}
	if f.FolderID != "" && (n.FolderID == nil || *n.FolderID != f.FolderID) {
		return false
	}
	if f.TagID != "" && !contains(n.TagIDs, f.TagID) {
		return false
	}
	return true
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func (ns *noteStore) List(_ context.Context, f entity.NoteFilter) ([]entity.Note, error) {
	ns.s.mu.RLock()
	defer ns.s.mu.RUnlock()
	out := make([]entity.Note, 0)
	for _, n := range ns.s.st.notes {
		if matches(n, f) {
			out = append(out, copyNote(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.After(out[j].UpdatedAt) })
	return out, nil
}

func (ns *noteStore) Get(_ context.Context, id, ownerID string) (*entity.Note, error) {
	ns.s.mu.RLock()
	defer ns.s.mu.RUnlock()
	n, ok := ns.s.st.notes[id]
	if !ok || n.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	c := copyNote(n)
	return &c, nil
}

// checkRefs mirrors the notes.folder_id and note_tags.tag_id foreign keys.
// Callers must hold mu.
func (ns *noteStore) checkRefs(n *entity.Note) error {
	if n.FolderID != nil {
		if _, ok := ns.s.st.named[kindFolders][*n.FolderID]; !ok {
			return &repository.ReferenceError{Entity: "folder"}
		}
	}
	for _, id := range n.TagIDs {
		if _, ok := ns.s.st.named[kindTags][id]; !ok {
			return &repository.ReferenceError{Entity: "tag"}
		}
	}
	return nil
}

func (ns *noteStore) Create(_ context.Context, n *entity.Note) error {
	ns.s.mu.Lock()
	defer ns.s.mu.Unlock()
	if err := ns.checkRefs(n); err != nil {
		return err
	}
	now := ns.s.now()
	n.ID = uuid.NewString()
	n.CreatedAt, n.UpdatedAt = now, now
	n.TagIDs = dedupe(n.TagIDs)
	ns.s.st.notes[n.ID] = copyNote(*n)
	return nil
}

func (ns *noteStore) Update(_ context.Context, n *entity.Note) error {
	ns.s.mu.Lock()
	defer ns.s.mu.Unlock()
	existing, ok := ns.s.st.notes[n.ID]
	if !ok || existing.UserID != n.UserID {
		return repository.ErrNotFound
	}
	if err := ns.checkRefs(n); err != nil {
		return err
	}
	n.CreatedAt = existing.CreatedAt
	n.UpdatedAt = ns.s.now()
	n.TagIDs = dedupe(n.TagIDs)
	ns.s.st.notes[n.ID] = copyNote(*n)
	return nil
}

func (ns *noteStore) Delete(_ context.Context, id, ownerID string) error {
	ns.s.mu.Lock()
	defer ns.s.mu.Unlock()
	if n, ok := ns.s.st.notes[id]; ok && n.UserID == ownerID {
		delete(ns.s.st.notes, id)
	}
	return nil
}

func (ns *noteStore) ClearFolder(_ context.Context, folderID, ownerID string) (int64, error) {
	ns.s.mu.Lock()
	defer ns.s.mu.Unlock()
	var affected int64
	for id, n := range ns.s.st.notes {
		if n.UserID == ownerID && n.FolderID != nil && *n.FolderID == folderID {
			n.FolderID = nil
			n.UpdatedAt = ns.s.now()
			ns.s.st.notes[id] = n
			affected++
		}
	}
	return affected, nil
}

func (ns *noteStore) RemoveTag(_ context.Context, tagID, ownerID string) (int64, error) {
	ns.s.mu.Lock()
	defer ns.s.mu.Unlock()
	var affected int64
	for id, n := range ns.s.st.notes {
		if n.UserID != ownerID || !contains(n.TagIDs, tagID) {
			continue
		}
		kept := make([]string, 0, len(n.TagIDs))
		for _, t := range n.TagIDs {
			if t != tagID {
				kept = append(kept, t)
			}
		}
		n.TagIDs = kept
		n.UpdatedAt = ns.s.now()
		ns.s.st.notes[id] = n
		affected++
	}
	return affected, nil
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

var _ repository.NoteRepository = (*noteStore)(nil)
