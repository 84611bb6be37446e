package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the generic error payload.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// ValidationBody is returned for field-level request validation failures.
type ValidationBody struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location"`
}

func OK(ctx *gin.Context, body any) {
	ctx.JSON(http.StatusOK, body)
}

// Created writes a 201 with a Location header pointing at the new resource.
func Created(ctx *gin.Context, location string, body any) {
	if location != "" {
		ctx.Header("Location", location)
	}
	ctx.JSON(http.StatusCreated, body)
}

func NoContent(ctx *gin.Context) {
	ctx.Status(http.StatusNoContent)
}

// Error aborts the chain with {status, message}.
func Error(ctx *gin.Context, status int, message string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	if message == "" {
		message = http.StatusText(status)
	}
	ctx.AbortWithStatusJSON(status, ErrorBody{Status: status, Message: message})
}

func ValidationError(ctx *gin.Context, message, location string) {
	ctx.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationBody{
		Code:     http.StatusUnprocessableEntity,
		Reason:   "ValidationError",
		Message:  message,
		Location: location,
	})
}
