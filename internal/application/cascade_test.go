package application

import (
	"context"
	"errors"
	"testing"
)

func TestCascade_DeleteFolderKeepsNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	folder := f.folder(t, "Archive", owner)

	n, err := f.notes.Create(ctx, NoteInput{Title: "inside", FolderID: folder.ID}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.folders.Delete(ctx, folder.ID, owner); err != nil {
		t.Fatalf("delete folder: %v", err)
	}

	got, err := f.notes.Get(ctx, n.ID, owner)
	if err != nil {
		t.Fatalf("note lost: %v", err)
	}
	if got.FolderID != nil {
		t.Fatalf("folderId = %v, want nil", *got.FolderID)
	}
	_, err = f.folders.Get(ctx, folder.ID, owner)
	assertKind(t, err, KindNotFound)
}

func TestCascade_DeleteTagStripsNotes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	keep := f.tag(t, "keep", owner)
	drop := f.tag(t, "drop", owner)

	n, err := f.notes.Create(ctx, NoteInput{Title: "tagged", Tags: tagsJSON(keep.ID, drop.ID)}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.tags.Delete(ctx, drop.ID, owner); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	got, _ := f.notes.Get(ctx, n.ID, owner)
	if len(got.Tags) != 1 || got.Tags[0].ID != keep.ID {
		t.Fatalf("tags = %+v, want only %s", got.Tags, keep.ID)
	}
	byTag, _ := f.notes.List(ctx, owner, ListQuery{TagID: drop.ID})
	if len(byTag) != 0 {
		t.Fatalf("notes still reference deleted tag: %d", len(byTag))
	}
}

func TestCascade_RollsBackOnFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	folder := f.folder(t, "Archive", owner)
	n, err := f.notes.Create(ctx, NoteInput{Title: "inside", FolderID: folder.ID}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	boom := errors.New("boom")
	broken := *f.cascade
	broken.Folders = failingFolders{FolderRepository: f.store.Folders(), err: boom}
	if err := broken.DeleteFolder(ctx, folder.ID, owner); !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}

	got, _ := f.notes.Get(ctx, n.ID, owner)
	if got.FolderID == nil || *got.FolderID != folder.ID {
		t.Fatal("note folder was cleared despite rollback")
	}
}
