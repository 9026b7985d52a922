package handlers

import (
	"errors"
	"net/http"

	"github.com/gestionrodar/filmoteca/internal/apperr"
	"github.com/gin-gonic/gin"
)

// Every non-2xx body is the same envelope the admin UI already parses:
// {"success": false, "message": "...", "errors": [...]}.

func RespondMessage(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{
		"success": status < http.StatusBadRequest,
		"message": message,
	})
}

func RespondValidation(ctx *gin.Context, message string, fields []apperr.FieldViolation) {
	body := gin.H{
		"success": false,
		"message": message,
	}

	if len(fields) > 0 {
		body["errors"] = fields
	}

	ctx.JSON(http.StatusBadRequest, body)
}

func RespondInternal(ctx *gin.Context, message string) {
	RespondMessage(ctx, http.StatusInternalServerError, message)
}

// RespondAppError translates a tagged error into its wire form. Unexpected
// errors become a generic 500; includeDetail controls whether the underlying
// message leaks (never in production).
func RespondAppError(ctx *gin.Context, err error, includeDetail bool) {
	var appErr *apperr.Error

	if errors.As(err, &appErr) {
		if appErr.Kind == apperr.Validation {
			RespondValidation(ctx, appErr.Message, appErr.Fields)
			return
		}

		if appErr.Kind != apperr.Internal {
			RespondMessage(ctx, appErr.Kind.HTTPStatus(), appErr.Message)
			return
		}
	}

	body := gin.H{
		"success": false,
		"message": "internal server error",
	}

	if includeDetail {
		body["error"] = err.Error()
	}

	ctx.JSON(http.StatusInternalServerError, body)
}
