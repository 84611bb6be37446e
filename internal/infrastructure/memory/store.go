// Package memory is a process-local implementation of the repository
// interfaces. It enforces the same uniqueness and ownership rules as the
// Postgres schema and is used for local runs (STORE_DRIVER=memory) and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
)

const (
	kindFolders = "folders"
	kindTags    = "tags"
)

type namedRecord struct {
	ID        string
	Name      string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type state struct {
	users map[string]entity.User
	named map[string]map[string]namedRecord
	notes map[string]entity.Note
}

func newState() state {
	return state{
		users: map[string]entity.User{},
		named: map[string]map[string]namedRecord{
			kindFolders: {},
			kindTags:    {},
		},
		notes: map[string]entity.Note{},
	}
}

func (st state) clone() state {
	c := newState()
	for k, v := range st.users {
		c.users[k] = v
	}
	for kind, rows := range st.named {
		for k, v := range rows {
			c.named[kind][k] = v
		}
	}
	for k, v := range st.notes {
		v.TagIDs = append([]string(nil), v.TagIDs...)
		c.notes[k] = v
	}
	return c
}

// Store holds all entities behind one lock.
type Store struct {
	mu   sync.RWMutex
	st   state
	last time.Time
}

func NewStore() *Store {
	return &Store{st: newState()}
}

// now is strictly increasing so updatedAt ordering is deterministic.
// Callers must hold mu.
func (s *Store) now() time.Time {
	t := time.Now().UTC()
	if !t.After(s.last) {
		t = s.last.Add(time.Microsecond)
	}
	s.last = t
	return t
}

// WithinTx restores the pre-call state when fn fails. Writes made by other
// goroutines while fn runs are rolled back too; the store is meant for a
// single process in development and tests.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.RLock()
	snapshot := s.st.clone()
	s.mu.RUnlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.st = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Users() repository.UserRepository { return &userStore{s: s} }

func (s *Store) Notes() repository.NoteRepository { return &noteStore{s: s} }

func (s *Store) Folders() repository.FolderRepository {
	return &namedStore[entity.Folder]{s: s, kind: kindFolders, build: func(r namedRecord) entity.Folder {
		return entity.Folder{ID: r.ID, Name: r.Name, UserID: r.UserID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	}}
}

func (s *Store) Tags() repository.TagRepository {
	return &namedStore[entity.Tag]{s: s, kind: kindTags, build: func(r namedRecord) entity.Tag {
		return entity.Tag{ID: r.ID, Name: r.Name, UserID: r.UserID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt}
	}}
}

var _ repository.Transactor = (*Store)(nil)

// Ping always succeeds; it lets the store stand in for a pool in health checks.
func (s *Store) Ping(context.Context) error { return nil }
