package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/noteful/internal/interface/http"
)

// UserModule wires public registration: POST /api/users
type UserModule struct {
	Handler *handlers.UserHandler
	Guard   Guard
}

func NewUserModule(h *handlers.UserHandler, g Guard) *UserModule {
	return &UserModule{Handler: h, Guard: g}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users", append(compact(m.Guard.Register), m.Handler.Register)...)
}
