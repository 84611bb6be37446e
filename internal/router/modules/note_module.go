package modules

import (
	handlers "github.com/oksasatya/noteful/internal/interface/http"
)

// NewNoteModule mounts /api/notes; the list route also reads
// searchTerm, folderId and tagId from the query string.
func NewNoteModule(h *handlers.NoteHandler, g Guard) *NamedModule {
	return NewNamedModule("/notes", h, g)
}
