package handlers

import (
	"errors"
	"net/http"

	"evently/internal/domain/validation"

	"github.com/gin-gonic/gin"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// every response is wrapped in the same envelope: {success, data} on
// the happy path, {success, error:{code,message}} otherwise
func RespondData(ctx *gin.Context, status int, data interface{}) {
	ctx.JSON(status, gin.H{
		"success": true,
		"data":    data,
	})
}

func RespondError(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, gin.H{
		"success": false,
		"error": APIError{
			Code:    code,
			Message: message,
		},
	})
}

func RespondBadRequest(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusBadRequest, code, message)
}

func RespondNotFound(ctx *gin.Context, message string) {
	RespondError(ctx, http.StatusNotFound, "NOT_FOUND", message)
}

func RespondInternal(ctx *gin.Context) {
	// internal detail is logged by the caller, never sent to the client
	RespondError(ctx, http.StatusInternalServerError, "INTERNAL_SERVER_ERROR", "Something went wrong")
}

func RespondConflict(ctx *gin.Context, code, message string) {
	RespondError(ctx, http.StatusConflict, code, message)
}

// RespondValidationError maps the write-time taxonomy onto the envelope.
// Returns false when err was not a validation error so the caller can
// fall through to its own handling.
func RespondValidationError(ctx *gin.Context, err error) bool {
	var verr *validation.Error

	if !errors.As(err, &verr) {
		return false
	}

	status := http.StatusBadRequest

	if verr.Code == validation.CodeDanglingReference {
		status = http.StatusUnprocessableEntity
	}

	RespondError(ctx, status, string(verr.Code), verr.Message)

	return true
}
