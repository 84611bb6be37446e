package modules

import "github.com/gin-gonic/gin"

// CRUDHandler is the handler set behind a protected collection.
type CRUDHandler interface {
	List(c *gin.Context)
	Get(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// NamedModule mounts a CRUD collection (folders, tags) at Path.
type NamedModule struct {
	Path    string
	Handler CRUDHandler
	Guard   Guard
}

func NewNamedModule(path string, h CRUDHandler, g Guard) *NamedModule {
	return &NamedModule{Path: path, Handler: h, Guard: g}
}

func (m *NamedModule) Register(rg *gin.RouterGroup) {
	grp := rg.Group(m.Path, m.Guard.Protected()...)
	grp.GET("", m.Handler.List)
	grp.GET("/:id", m.Handler.Get)
	grp.POST("", m.Handler.Create)
	grp.PUT("/:id", m.Handler.Update)
	grp.DELETE("/:id", m.Handler.Delete)
}
