package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/internal/interface/middleware"
	"github.com/oksasatya/noteful/pkg/response"
)

type AuthHandler struct {
	Svc    *application.AuthService
	Logger *logrus.Logger
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AuthToken string `json:"authToken"`
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil || req.Username == "" || req.Password == "" {
		response.Error(c, http.StatusBadRequest, "Bad Request")
		return
	}
	token, err := h.Svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, tokenResponse{AuthToken: token})
}

// Refresh POST /api/login/refresh (auth required)
func (h *AuthHandler) Refresh(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		writeError(c, h.Logger, application.ErrUnauthorized)
		return
	}
	token, err := h.Svc.Refresh(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.Logger, err)
		return
	}
	response.OK(c, tokenResponse{AuthToken: token})
}
