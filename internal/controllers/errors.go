package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/udex/lapizza-api/internal/models"
)

// respondError translates domain errors to HTTP responses. Validation and
// conflict errors surface their message with a 400, not-found with a 404;
// anything else is logged under the operation tag and reported generically.
func respondError(ctx *gin.Context, operation string, err error, fallback string) {
	var validationErr *models.ValidationError
	var conflictErr *models.ConflictError
	var notFoundErr *models.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &conflictErr):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": conflictErr.Message})
	case errors.As(err, &notFoundErr):
		ctx.JSON(http.StatusNotFound, gin.H{"error": notFoundErr.Message})
	default:
		log.WithError(err).WithField("operation", operation).Error("Unexpected error")
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// pathID parses the :id path parameter; on failure it writes a 400 response
// and returns false.
func pathID(ctx *gin.Context, label string) (int, bool) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + label + " ID"})
		return 0, false
	}
	return id, true
}
