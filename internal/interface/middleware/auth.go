package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/noteful/pkg/helpers"
	"github.com/oksasatya/noteful/pkg/response"
)

const (
	CtxUserIDKey   = "userID"
	CtxUsernameKey = "username"
	CtxFullnameKey = "fullname"
)

// TokenVerifier turns a bearer token into the identity it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (*helpers.Identity, error)
}

// Auth requires `Authorization: Bearer <token>` and sets userID, username
// and fullname in the Gin context on success.
func Auth(v TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		id, err := v.VerifyToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		SetIdentity(c, *id)
		c.Next()
	}
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

func SetIdentity(c *gin.Context, id helpers.Identity) {
	c.Set(CtxUserIDKey, id.ID)
	c.Set(CtxUsernameKey, id.Username)
	c.Set(CtxFullnameKey, id.Fullname)
}

// IdentityFrom returns the identity set by Auth.
func IdentityFrom(c *gin.Context) (helpers.Identity, bool) {
	id := helpers.Identity{
		ID:       c.GetString(CtxUserIDKey),
		Username: c.GetString(CtxUsernameKey),
		Fullname: c.GetString(CtxFullnameKey),
	}
	return id, id.ID != ""
}
