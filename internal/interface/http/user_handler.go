package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/pkg/response"
	"github.com/oksasatya/noteful/pkg/validation"
)

type UserHandler struct {
	Svc    *application.UserService
	Logger *logrus.Logger
}

func NewUserHandler(svc *application.UserService, logger *logrus.Logger) *UserHandler {
	return &UserHandler{Svc: svc, Logger: logger}
}

// Pointers distinguish an absent field from an empty one.
type registerRequest struct {
	Username *string `json:"username" binding:"required,trimmed,min=1"`
	Password *string `json:"password" binding:"required,trimmed,pwd"`
	Fullname *string `json:"fullname"`
}

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Fullname string `json:"fullname"`
}

// Register POST /api/users
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		v, _ := validation.First(err)
		if v.Field == "body" {
			writeError(c, h.Logger, application.Malformed(errors.New(v.Message)))
			return
		}
		response.ValidationError(c, v.Message, v.Field)
		return
	}
	in := application.RegisterInput{Username: *req.Username, Password: *req.Password}
	if req.Fullname != nil {
		in.Fullname = *req.Fullname
	}
	u, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.Created(c, c.FullPath()+"/"+u.ID, userResponse{ID: u.ID, Username: u.Username, Fullname: u.Fullname})
}
