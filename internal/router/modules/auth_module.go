package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/noteful/internal/interface/http"
)

// AuthModule wires token routes.
// Public: POST /api/login
// Protected: POST /api/login/refresh
type AuthModule struct {
	Handler *handlers.AuthHandler
	Guard   Guard
}

func NewAuthModule(h *handlers.AuthHandler, g Guard) *AuthModule {
	return &AuthModule{Handler: h, Guard: g}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/login", append(compact(m.Guard.Login), m.Handler.Login)...)
	rg.POST("/login/refresh", append(m.Guard.Protected(), m.Handler.Refresh)...)
}
