package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/oksasatya/noteful/internal/domain/repository"
)

type namedStore[T any] struct {
	s     *Store
	kind  string
	build func(namedRecord) T
}

func (n *namedStore[T]) rows() map[string]namedRecord {
	return n.s.st.named[n.kind]
}

func (n *namedStore[T]) sorted(match func(namedRecord) bool) []T {
	recs := make([]namedRecord, 0)
	for _, r := range n.rows() {
		if match(r) {
			recs = append(recs, r)
		}
	}
	sort.Slice(recs, func(i, j int) bool { return recs[i].Name < recs[j].Name })
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		out = append(out, n.build(r))
	}
	return out
}

func (n *namedStore[T]) nameTaken(name, ownerID, exceptID string) bool {
	for _, r := range n.rows() {
		if r.UserID == ownerID && r.Name == name && r.ID != exceptID {
			return true
		}
	}
	return false
}

func (n *namedStore[T]) List(_ context.Context, ownerID string) ([]T, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	return n.sorted(func(r namedRecord) bool { return r.UserID == ownerID }), nil
}

func (n *namedStore[T]) Get(_ context.Context, id, ownerID string) (*T, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	r, ok := n.rows()[id]
	if !ok || r.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	v := n.build(r)
	return &v, nil
}

func (n *namedStore[T]) FindByIDs(_ context.Context, ids []string, ownerID string) ([]T, error) {
	want := toSet(ids)
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	return n.sorted(func(r namedRecord) bool {
		_, ok := want[r.ID]
		return ok && r.UserID == ownerID
	}), nil
}

func (n *namedStore[T]) Count(_ context.Context, ids []string, ownerID string) (int, error) {
	n.s.mu.RLock()
	defer n.s.mu.RUnlock()
	count := 0
	for id := range toSet(ids) {
		if r, ok := n.rows()[id]; ok && r.UserID == ownerID {
			count++
		}
	}
	return count, nil
}

func (n *namedStore[T]) Create(_ context.Context, name, ownerID string) (*T, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	if n.nameTaken(name, ownerID, "") {
		return nil, repository.ErrDuplicate
	}
	now := n.s.now()
	r := namedRecord{ID: uuid.NewString(), Name: name, UserID: ownerID, CreatedAt: now, UpdatedAt: now}
	n.rows()[r.ID] = r
	v := n.build(r)
	return &v, nil
}

func (n *namedStore[T]) Rename(_ context.Context, id, name, ownerID string) (*T, error) {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	r, ok := n.rows()[id]
	if !ok || r.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	if n.nameTaken(name, ownerID, id) {
		return nil, repository.ErrDuplicate
	}
	r.Name = name
	r.UpdatedAt = n.s.now()
	n.rows()[id] = r
	v := n.build(r)
	return &v, nil
}

func (n *namedStore[T]) Delete(_ context.Context, id, ownerID string) error {
	n.s.mu.Lock()
	defer n.s.mu.Unlock()
	r, ok := n.rows()[id]
	if !ok || r.UserID != ownerID {
		return nil
	}
	if n.referenced(id) {
		return fmt.Errorf("%w: %s %s is still referenced by notes", repository.ErrForeignKey, n.kind, id)
	}
	delete(n.rows(), id)
	return nil
}

// referenced mirrors the foreign keys of the SQL schema: a folder or tag
// cannot be removed while a note still points at it.
func (n *namedStore[T]) referenced(id string) bool {
	for _, note := range n.s.st.notes {
		switch n.kind {
		case kindFolders:
			if note.FolderID != nil && *note.FolderID == id {
				return true
			}
		case kindTags:
			for _, t := range note.TagIDs {
				if t == id {
					return true
				}
			}
		}
	}
	return false
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
