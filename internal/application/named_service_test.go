package application

import (
	"context"
	"testing"

	"github.com/google/uuid"
)

func TestFolderService_CRUD(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID

	archive := f.folder(t, "Archive", owner)
	f.folder(t, "Drafts", owner)

	list, err := f.folders.List(ctx, owner)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "Archive" || list[1].Name != "Drafts" {
		t.Fatalf("list not sorted by name: %+v", list)
	}

	got, err := f.folders.Get(ctx, archive.ID, owner)
	if err != nil || got.Name != "Archive" {
		t.Fatalf("get: %+v %v", got, err)
	}

	renamed, err := f.folders.Update(ctx, archive.ID, "Old", owner)
	if err != nil || renamed.Name != "Old" || renamed.ID != archive.ID {
		t.Fatalf("update: %+v %v", renamed, err)
	}

	if err := f.folders.Delete(ctx, archive.ID, owner); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, err = f.folders.Get(ctx, archive.ID, owner)
	assertKind(t, err, KindNotFound)

	// deleting again is not an error
	if err := f.folders.Delete(ctx, archive.ID, owner); err != nil {
		t.Fatalf("second delete: %v", err)
	}
}

func TestFolderService_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	f.folder(t, "Archive", owner)

	_, err := f.folders.Create(ctx, "", owner)
	e := assertKind(t, err, KindMissingField)
	if e.Message != "Missing name in request body" {
		t.Fatalf("message = %q", e.Message)
	}

	_, err = f.folders.Create(ctx, "Archive", owner)
	e = assertKind(t, err, KindDuplicateName)
	if e.Message != "The folder name already exists" {
		t.Fatalf("message = %q", e.Message)
	}

	_, err = f.folders.Get(ctx, "not-a-uuid", owner)
	assertKind(t, err, KindInvalidID)

	// name is checked before id on update
	_, err = f.folders.Update(ctx, "not-a-uuid", "", owner)
	assertKind(t, err, KindMissingField)

	_, err = f.folders.Update(ctx, uuid.NewString(), "Fresh", owner)
	assertKind(t, err, KindNotFound)

	err = f.folders.Delete(ctx, "nope", owner)
	assertKind(t, err, KindInvalidID)
}

func TestTagService_DuplicateMessage(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "bobuser").ID
	f.tag(t, "work", owner)

	_, err := f.tags.Create(context.Background(), "work", owner)
	e := assertKind(t, err, KindDuplicateName)
	if e.Message != "The Tag name already exists" {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestNamedService_OwnerScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.register(t, "bobuser").ID
	eve := f.register(t, "eveuser").ID

	folder := f.folder(t, "Private", bob)
	tag := f.tag(t, "secret", bob)

	// same names are fine for a different owner
	f.folder(t, "Private", eve)
	f.tag(t, "secret", eve)

	_, err := f.folders.Get(ctx, folder.ID, eve)
	assertKind(t, err, KindNotFound)
	_, err = f.tags.Update(ctx, tag.ID, "mine", eve)
	assertKind(t, err, KindNotFound)

	if err := f.tags.Delete(ctx, tag.ID, eve); err != nil {
		t.Fatalf("foreign delete: %v", err)
	}
	if _, err := f.tags.Get(ctx, tag.ID, bob); err != nil {
		t.Fatalf("tag removed by another owner: %v", err)
	}

	list, _ := f.folders.List(ctx, eve)
	if len(list) != 1 || list[0].UserID != eve {
		t.Fatalf("eve sees foreign folders: %+v", list)
	}
}
