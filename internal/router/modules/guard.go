package modules

import "github.com/gin-gonic/gin"

// Guard bundles the middleware modules attach to their routes. Nil
// limiters are skipped.
type Guard struct {
	Auth     gin.HandlerFunc
	Login    gin.HandlerFunc
	Register gin.HandlerFunc
	API      gin.HandlerFunc
}

// Protected returns the chain for bearer-authenticated routes: auth first so
// the limiter can key on the user id.
func (g Guard) Protected() []gin.HandlerFunc {
	return compact(g.Auth, g.API)
}

func compact(hs ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(hs))
	for _, h := range hs {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
