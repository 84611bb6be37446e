package entity

import "time"

// Note is owned by a user and may reference one folder and many tags of the
// same owner. Tags is only populated on reads; writes go through TagIDs.
type Note struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	FolderID  *string   `json:"folderId"`
	TagIDs    []string  `json:"-"`
	Tags      []Tag     `json:"tags"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteFilter narrows a note listing. Empty fields do not filter.
type NoteFilter struct {
	UserID     string
	SearchTerm string
	FolderID   string
	TagID      string
}
