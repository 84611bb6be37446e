package router

import "github.com/gin-gonic/gin"

// Module mounts one feature's routes. Registry passes /api for modules added
// with Add and the engine root for those added with AddRoot.
type Module interface {
	Register(rg *gin.RouterGroup)
}
