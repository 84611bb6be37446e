package application

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/internal/infrastructure/memory"
	"github.com/oksasatya/noteful/pkg/helpers"
)

type fixture struct {
	store   *memory.Store
	users   *UserService
	auth    *AuthService
	folders *FolderService
	tags    *TagService
	notes   *NoteService
	cascade *CascadeCoordinator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := memory.NewStore()
	log := helpers.NopLogger()
	hasher := helpers.BcryptHasher{Cost: bcrypt.MinCost}
	cascade := NewCascadeCoordinator(st, st.Folders(), st.Tags(), st.Notes(), log)
	return &fixture{
		store:   st,
		users:   NewUserService(st.Users(), hasher, log),
		auth:    NewAuthService(st.Users(), hasher, helpers.NewJWTManager("test-secret", time.Hour), log),
		folders: NewFolderService(st.Folders(), cascade, log),
		tags:    NewTagService(st.Tags(), cascade, log),
		notes:   NewNoteService(st.Notes(), st.Tags(), NewReferenceValidator(st.Folders(), st.Tags()), log),
		cascade: cascade,
	}
}

func (f *fixture) register(t *testing.T, username string) *entity.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), RegisterInput{Username: username, Password: "password123", Fullname: " " + username + " "})
	if err != nil {
		t.Fatalf("register %s: %v", username, err)
	}
	return u
}

func (f *fixture) folder(t *testing.T, name, owner string) *entity.Folder {
	t.Helper()
	v, err := f.folders.Create(context.Background(), name, owner)
	if err != nil {
		t.Fatalf("create folder %s: %v", name, err)
	}
	return v
}

func (f *fixture) tag(t *testing.T, name, owner string) *entity.Tag {
	t.Helper()
	v, err := f.tags.Create(context.Background(), name, owner)
	if err != nil {
		t.Fatalf("create tag %s: %v", name, err)
	}
	return v
}

func tagsJSON(ids ...string) json.RawMessage {
	b, _ := json.Marshal(ids)
	return b
}

func assertKind(t *testing.T, err error, want ErrorKind) *Error {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	var e *Error
	if !errors.As(err, &e) {
		t.Fatalf("expected *Error, got %T: %v", err, err)
	}
	if e.Kind != want {
		t.Fatalf("kind = %s, want %s (%v)", e.Kind, want, err)
	}
	return e
}

// failingFolders fails the delete step after notes were already detached.
type failingFolders struct {
	repository.FolderRepository
	err error
}

func (f failingFolders) Delete(context.Context, string, string) error { return f.err }
