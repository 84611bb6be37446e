package application

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/internal/domain/repository"
	"github.com/oksasatya/noteful/pkg/helpers"
)

// NoteInput is a create or full-replace payload. Tags is kept raw so its
// type can be checked after the title and folder.
type NoteInput struct {
	Title    string
	Content  string
	FolderID string
	Tags     json.RawMessage
}

// ListQuery holds the optional list filters as received.
type ListQuery struct {
	SearchTerm string
	FolderID   string
	TagID      string
}

type NoteService struct {
	Notes     repository.NoteRepository
	Tags      repository.TagRepository
	Validator *ReferenceValidator
	Logger    *logrus.Logger
}

func NewNoteService(notes repository.NoteRepository, tags repository.TagRepository, validator *ReferenceValidator, logger *logrus.Logger) *NoteService {
	return &NoteService{Notes: notes, Tags: tags, Validator: validator, Logger: logger}
}

// List returns the owner's notes, most recently updated first. The filters
// combine with AND.
func (s *NoteService) List(ctx context.Context, ownerID string, q ListQuery) ([]entity.Note, error) {
	f := entity.NoteFilter{UserID: ownerID, SearchTerm: q.SearchTerm}
	if q.FolderID != "" {
		id, err := uuid.Parse(q.FolderID)
		if err != nil {
			return nil, InvalidReference("folderId")
		}
		f.FolderID = id.String()
	}
	if q.TagID != "" {
		id, err := uuid.Parse(q.TagID)
		if err != nil {
			return nil, InvalidReference("tagId")
		}
		f.TagID = id.String()
	}
	notes, err := s.Notes.List(ctx, f)
	if err != nil {
		return nil, Internal(err)
	}
	if err := s.populateTags(ctx, ownerID, notes); err != nil {
		return nil, Internal(err)
	}
	return notes, nil
}

func (s *NoteService) Get(ctx context.Context, id, ownerID string) (*entity.Note, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.load(ctx, pid, ownerID)
}

func (s *NoteService) Create(ctx context.Context, in NoteInput, ownerID string) (*entity.Note, error) {
	folder, tags, err := s.checkInput(ctx, in, ownerID)
	if err != nil {
		return nil, err
	}
	n := &entity.Note{
		Title:    in.Title,
		Content:  in.Content,
		FolderID: optional(folder),
		TagIDs:   tags,
		UserID:   ownerID,
	}
	if err := s.Notes.Create(ctx, n); err != nil {
		return nil, writeErr(err)
	}
	helpers.LogDebug(s.Logger, "note created", logrus.Fields{"note_id": n.ID, "user_id": ownerID})
	return s.load(ctx, n.ID, ownerID)
}

// Update replaces title, content, folder and tags. An absent folder or tag
// list clears the stored value.
func (s *NoteService) Update(ctx context.Context, id string, in NoteInput, ownerID string) (*entity.Note, error) {
	pid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	folder, tags, err := s.checkInput(ctx, in, ownerID)
	if err != nil {
		return nil, err
	}
	n := &entity.Note{
		ID:       pid,
		Title:    in.Title,
		Content:  in.Content,
		FolderID: optional(folder),
		TagIDs:   tags,
		UserID:   ownerID,
	}
	if err := s.Notes.Update(ctx, n); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound()
		}
		return nil, writeErr(err)
	}
	return s.load(ctx, pid, ownerID)
}

// Delete succeeds whether or not the note existed.
func (s *NoteService) Delete(ctx context.Context, id, ownerID string) error {
	pid, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.Notes.Delete(ctx, pid, ownerID); err != nil {
		return Internal(err)
	}
	return nil
}

// checkInput applies the payload rules in order: title, folder id syntax,
// tags type, then ownership of every reference.
func (s *NoteService) checkInput(ctx context.Context, in NoteInput, ownerID string) (string, []string, error) {
	if strings.TrimSpace(in.Title) == "" {
		return "", nil, MissingField("title")
	}
	if in.FolderID != "" {
		if _, err := uuid.Parse(in.FolderID); err != nil {
			return "", nil, InvalidReference("folderId")
		}
	}
	tagIDs, err := DecodeTagRefs(in.Tags)
	if err != nil {
		return "", nil, err
	}
	return s.Validator.Validate(ctx, in.FolderID, tagIDs, ownerID)
}

func (s *NoteService) load(ctx context.Context, id, ownerID string) (*entity.Note, error) {
	n, err := s.Notes.Get(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, NotFound()
		}
		return nil, Internal(err)
	}
	notes := []entity.Note{*n}
	if err := s.populateTags(ctx, ownerID, notes); err != nil {
		return nil, Internal(err)
	}
	return &notes[0], nil
}

// populateTags replaces TagIDs with full tag objects using one lookup.
func (s *NoteService) populateTags(ctx context.Context, ownerID string, notes []entity.Note) error {
	var ids []string
	for _, n := range notes {
		ids = append(ids, n.TagIDs...)
	}
	byID := map[string]entity.Tag{}
	if len(ids) > 0 {
		tags, err := s.Tags.FindByIDs(ctx, ids, ownerID)
		if err != nil {
			return err
		}
		for _, t := range tags {
			byID[t.ID] = t
		}
	}
	for i := range notes {
		notes[i].Tags = make([]entity.Tag, 0, len(notes[i].TagIDs))
		for _, id := range notes[i].TagIDs {
			if t, ok := byID[id]; ok {
				notes[i].Tags = append(notes[i].Tags, t)
			}
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// writeErr reports a folder or tag removed after validation as an invalid
// reference; anything else is internal.
func writeErr(err error) error {
	var ref *repository.ReferenceError
	if errors.As(err, &ref) {
		if ref.Entity == "tag" {
			return InvalidReference("tag")
		}
		return InvalidReference("folderId")
	}
	return Internal(err)
}
