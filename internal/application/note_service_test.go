package application

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
)

func TestNoteService_CreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	folder := f.folder(t, "Archive", owner)
	work := f.tag(t, "work", owner)
	home := f.tag(t, "home", owner)

	n, err := f.notes.Create(ctx, NoteInput{
		Title:    "Cats",
		Content:  "Lorem ipsum",
		FolderID: strings.ToUpper(folder.ID),
		Tags:     tagsJSON(work.ID, home.ID, work.ID),
	}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.FolderID == nil || *n.FolderID != folder.ID {
		t.Fatalf("folder id not canonical: %v", n.FolderID)
	}
	if len(n.Tags) != 2 || n.Tags[0].Name != "work" || n.Tags[1].Name != "home" {
		t.Fatalf("tags not populated: %+v", n.Tags)
	}

	got, err := f.notes.Get(ctx, n.ID, owner)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Cats" || len(got.Tags) != 2 {
		t.Fatalf("unexpected note: %+v", got)
	}
}

func TestNoteService_CreateWithoutRefs(t *testing.T) {
	f := newFixture(t)
	owner := f.register(t, "bobuser").ID

	n, err := f.notes.Create(context.Background(), NoteInput{Title: "Bare"}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if n.FolderID != nil {
		t.Fatalf("folder = %v, want nil", *n.FolderID)
	}
	b, _ := json.Marshal(n)
	if !strings.Contains(string(b), `"tags":[]`) || !strings.Contains(string(b), `"folderId":null`) {
		t.Fatalf("unexpected JSON: %s", b)
	}
}

func TestNoteService_InputErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.register(t, "bobuser").ID
	eve := f.register(t, "eveuser").ID
	eveFolder := f.folder(t, "Hers", eve)
	eveTag := f.tag(t, "hers", eve)
	bobTag := f.tag(t, "mine", bob)

	cases := []struct {
		name  string
		in    NoteInput
		kind  ErrorKind
		field string
	}{
		{"missing title", NoteInput{Content: "x"}, KindMissingField, "title"},
		{"missing title wins over bad tags", NoteInput{Tags: json.RawMessage(`"x"`)}, KindMissingField, "title"},
		{"bad folder syntax", NoteInput{Title: "t", FolderID: "123"}, KindInvalidReference, "folderId"},
		{"foreign folder", NoteInput{Title: "t", FolderID: eveFolder.ID}, KindInvalidReference, "folderId"},
		{"unknown folder", NoteInput{Title: "t", FolderID: uuid.NewString()}, KindInvalidReference, "folderId"},
		{"tags not array", NoteInput{Title: "t", Tags: json.RawMessage(`"abc"`)}, KindInvalidType, "tags"},
		{"tags object", NoteInput{Title: "t", Tags: json.RawMessage(`{"a":1}`)}, KindInvalidType, "tags"},
		{"tag not string", NoteInput{Title: "t", Tags: json.RawMessage(`[1]`)}, KindInvalidReference, "tags"},
		{"bad tag syntax", NoteInput{Title: "t", Tags: tagsJSON("nope")}, KindInvalidReference, "tags"},
		{"foreign tag", NoteInput{Title: "t", Tags: tagsJSON(bobTag.ID, eveTag.ID)}, KindInvalidReference, "tags"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.notes.Create(ctx, c.in, bob)
			e := assertKind(t, err, c.kind)
			if e.Field != c.field {
				t.Fatalf("field = %q, want %q", e.Field, c.field)
			}
		})
	}

	list, _ := f.notes.List(ctx, bob, ListQuery{})
	if len(list) != 0 {
		t.Fatalf("failed creates left %d notes", len(list))
	}
}

func TestNoteService_UpdateReplacesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	folder := f.folder(t, "Archive", owner)
	tag := f.tag(t, "work", owner)

	n, err := f.notes.Create(ctx, NoteInput{Title: "a", Content: "b", FolderID: folder.ID, Tags: tagsJSON(tag.ID)}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	up, err := f.notes.Update(ctx, n.ID, NoteInput{Title: "c"}, owner)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if up.Title != "c" || up.Content != "" || up.FolderID != nil || len(up.Tags) != 0 {
		t.Fatalf("update did not replace: %+v", up)
	}
	if !up.UpdatedAt.After(n.UpdatedAt) || !up.CreatedAt.Equal(n.CreatedAt) {
		t.Fatalf("timestamps: created %v->%v updated %v->%v", n.CreatedAt, up.CreatedAt, n.UpdatedAt, up.UpdatedAt)
	}

	_, err = f.notes.Update(ctx, uuid.NewString(), NoteInput{Title: "x"}, owner)
	assertKind(t, err, KindNotFound)
	_, err = f.notes.Update(ctx, "bad", NoteInput{Title: "x"}, owner)
	assertKind(t, err, KindInvalidID)
}

func TestNoteService_OwnerScoping(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.register(t, "bobuser").ID
	eve := f.register(t, "eveuser").ID

	n, err := f.notes.Create(ctx, NoteInput{Title: "private"}, bob)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	_, err = f.notes.Get(ctx, n.ID, eve)
	assertKind(t, err, KindNotFound)
	_, err = f.notes.Update(ctx, n.ID, NoteInput{Title: "hijack"}, eve)
	assertKind(t, err, KindNotFound)
	if err := f.notes.Delete(ctx, n.ID, eve); err != nil {
		t.Fatalf("foreign delete: %v", err)
	}
	if _, err := f.notes.Get(ctx, n.ID, bob); err != nil {
		t.Fatalf("note removed by another owner: %v", err)
	}
	list, _ := f.notes.List(ctx, eve, ListQuery{})
	if len(list) != 0 {
		t.Fatalf("eve sees %d notes", len(list))
	}
}

func TestNoteService_ListFilters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	folder := f.folder(t, "Archive", owner)
	tag := f.tag(t, "pets", owner)

	mk := func(in NoteInput) {
		if _, err := f.notes.Create(ctx, in, owner); err != nil {
			t.Fatalf("create %q: %v", in.Title, err)
		}
	}
	mk(NoteInput{Title: "Cats are great", FolderID: folder.ID, Tags: tagsJSON(tag.ID)})
	mk(NoteInput{Title: "Dogs", Content: "not CATS at all", Tags: tagsJSON(tag.ID)})
	mk(NoteInput{Title: "Fish", FolderID: folder.ID})

	all, _ := f.notes.List(ctx, owner, ListQuery{})
	if len(all) != 3 || all[0].Title != "Fish" || all[2].Title != "Cats are great" {
		t.Fatalf("list not ordered by updatedAt desc: %v", titles(all))
	}

	cases := []struct {
		q    ListQuery
		want []string
	}{
		{ListQuery{SearchTerm: "cats"}, []string{"Dogs", "Cats are great"}},
		{ListQuery{FolderID: folder.ID}, []string{"Fish", "Cats are great"}},
		{ListQuery{TagID: tag.ID}, []string{"Dogs", "Cats are great"}},
		{ListQuery{SearchTerm: "cats", FolderID: folder.ID}, []string{"Cats are great"}},
		{ListQuery{SearchTerm: "zebra"}, []string{}},
	}
	for _, c := range cases {
		got, err := f.notes.List(ctx, owner, c.q)
		if err != nil {
			t.Fatalf("list %+v: %v", c.q, err)
		}
		if strings.Join(titles(got), "|") != strings.Join(c.want, "|") {
			t.Fatalf("list %+v = %v, want %v", c.q, titles(got), c.want)
		}
	}

	_, err := f.notes.List(ctx, owner, ListQuery{FolderID: "bad"})
	assertKind(t, err, KindInvalidReference)
}

func titles(notes []entity.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}

// staleFolders reports every folder as present, like a check that ran
// before a concurrent delete.
type staleFolders struct {
	repository.FolderRepository
}

func (staleFolders) Count(_ context.Context, ids []string, _ string) (int, error) {
	return len(ids), nil
}

func TestNoteService_StoreRejectsVanishedFolder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	owner := f.register(t, "bobuser").ID
	st := f.store
	svc := NewNoteService(st.Notes(), st.Tags(), NewReferenceValidator(staleFolders{st.Folders()}, st.Tags()), f.notes.Logger)

	_, err := svc.Create(ctx, NoteInput{Title: "orphan", FolderID: uuid.NewString()}, owner)
	if e := assertKind(t, err, KindInvalidReference); e.Field != "folderId" {
		t.Fatalf("field = %q, want folderId", e.Field)
	}

	n, err := svc.Create(ctx, NoteInput{Title: "kept"}, owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = svc.Update(ctx, n.ID, NoteInput{Title: "kept", FolderID: uuid.NewString()}, owner)
	assertKind(t, err, KindInvalidReference)
}
