package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"matchup-service/internal/apperrors"
)

// respondError translates the error taxonomy into HTTP statuses. Untyped
// errors are treated as dependency failures and hidden behind a generic body.
func respondError(c *gin.Context, err error) {
	code := apperrors.CodeOf(err)

	message := "internal error"
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		message = appErr.Message
	}

	switch code {
	case apperrors.CodeInvalidState, apperrors.CodeDuplicateApplication:
		c.JSON(http.StatusConflict, gin.H{"error": message, "code": code})
	case apperrors.CodeNotAuthorized:
		c.JSON(http.StatusForbidden, gin.H{"error": message, "code": code})
	case apperrors.CodeNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": message, "code": code})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": message, "code": code})
	}
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}
