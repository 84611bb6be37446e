package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/noteful/internal/application"
	"github.com/oksasatya/noteful/internal/interface/middleware"
	"github.com/oksasatya/noteful/pkg/helpers"
	"github.com/oksasatya/noteful/pkg/response"
)

// writeError maps a service error onto the HTTP error bodies.
func writeError(c *gin.Context, logger *logrus.Logger, err error) {
	if errors.Is(err, application.ErrInvalidCredentials) {
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
		return
	}
	var e *application.Error
	if !errors.As(err, &e) {
		e = application.Internal(err)
	}
	switch e.Kind {
	case application.KindValidation:
		response.ValidationError(c, e.Message, e.Field)
	case application.KindNotFound:
		response.Error(c, http.StatusNotFound, "Not Found")
	case application.KindUnauthorized:
		response.Error(c, http.StatusUnauthorized, "Unauthorized")
	case application.KindInternal:
		_ = c.Error(e)
		helpers.LogError(logger, "request failed", e, logrus.Fields{
			"path":       c.Request.URL.Path,
			"request_id": c.GetString("request_id"),
		})
		response.Error(c, http.StatusInternalServerError, "Internal Server Error")
	default:
		response.Error(c, http.StatusBadRequest, e.Message)
	}
}

// bindJSON decodes the body into dst and runs binding validation. An empty
// body decodes as {} so required-field rules still apply.
func bindJSON(c *gin.Context, dst any) error {
	err := c.ShouldBindJSON(dst)
	if errors.Is(err, io.EOF) {
		return binding.Validator.ValidateStruct(dst)
	}
	return err
}

// decodeError turns a body decoding failure into a field error. A value of
// the wrong JSON type counts as a missing field.
func decodeError(err error) error {
	var ute *json.UnmarshalTypeError
	if errors.As(err, &ute) {
		if ute.Field == "folderId" {
			return application.InvalidReference("folderId")
		}
		return application.MissingField(ute.Field)
	}
	return application.Malformed(err)
}

func ownerID(c *gin.Context) string {
	return c.GetString(middleware.CtxUserIDKey)
}
