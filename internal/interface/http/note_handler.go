package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/pkg/response"
)

type NoteHandler struct {
	Svc    *application.NoteService
	Logger *logrus.Logger
}

func NewNoteHandler(svc *application.NoteService, logger *logrus.Logger) *NoteHandler {
	return &NoteHandler{Svc: svc, Logger: logger}
}

type noteRequest struct {
	Title    string          `json:"title"`
	Content  string          `json:"content"`
	FolderID string          `json:"folderId"`
	Tags     json.RawMessage `json:"tags"`
}

func (r noteRequest) input() application.NoteInput {
	return application.NoteInput{Title: r.Title, Content: r.Content, FolderID: r.FolderID, Tags: r.Tags}
}

// List GET /api/notes?searchTerm=&folderId=&tagId=
func (h *NoteHandler) List(c *gin.Context) {
	q := application.ListQuery{
		SearchTerm: c.Query("searchTerm"),
		FolderID:   c.Query("folderId"),
		TagID:      c.Query("tagId"),
	}
	notes, err := h.Svc.List(c.Request.Context(), ownerID(c), q)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, notes)
}

func (h *NoteHandler) Get(c *gin.Context) {
	n, err := h.Svc.Get(c.Request.Context(), c.Param("id"), ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, n)
}

func (h *NoteHandler) Create(c *gin.Context) {
	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.Logger, decodeError(err))
		return
	}
	n, err := h.Svc.Create(c.Request.Context(), req.input(), ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Created(c, c.FullPath()+"/"+n.ID, n)
}

// Update PUT /:id replaces the note and replies 201.
func (h *NoteHandler) Update(c *gin.Context) {
	var req noteRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.Logger, decodeError(err))
		return
	}
	n, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.input(), ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Created(c, "", n)
}

func (h *NoteHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), ownerID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
