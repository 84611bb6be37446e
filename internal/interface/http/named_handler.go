package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/internal/domain/entity"
	"github.com/oksasatya/noteful/pkg/response"
)

// NamedHandler serves the folder and tag routes.
type NamedHandler[T any] struct {
	Svc    *application.NamedService[T]
	Logger *logrus.Logger
	idOf   func(*T) string
}

func NewFolderHandler(svc *application.FolderService, logger *logrus.Logger) *NamedHandler[entity.Folder] {
	return &NamedHandler[entity.Folder]{Svc: svc, Logger: logger, idOf: func(f *entity.Folder) string { return f.ID }}
}

func NewTagHandler(svc *application.TagService, logger *logrus.Logger) *NamedHandler[entity.Tag] {
	return &NamedHandler[entity.Tag]{Svc: svc, Logger: logger, idOf: func(t *entity.Tag) string { return t.ID }}
}

type nameRequest struct {
	Name string `json:"name"`
}

func (h *NamedHandler[T]) List(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, items)
}

func (h *NamedHandler[T]) Get(c *gin.Context) {
	item, err := h.Svc.Get(c.Request.Context(), c.Param("id"), ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, item)
}

func (h *NamedHandler[T]) Create(c *gin.Context) {
	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.Logger, decodeError(err))
		return
	}
	item, err := h.Svc.Create(c.Request.Context(), req.Name, ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Created(c, c.FullPath()+"/"+h.idOf(item), item)
}

// Update PUT /:id replies 201 with the renamed record.
func (h *NamedHandler[T]) Update(c *gin.Context) {
	var req nameRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.Logger, decodeError(err))
		return
	}
	item, err := h.Svc.Update(c.Request.Context(), c.Param("id"), req.Name, ownerID(c))
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Created(c, "", item)
}

func (h *NamedHandler[T]) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("id"), ownerID(c)); err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.NoContent(c)
}
