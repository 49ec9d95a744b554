// Package controllers holds the gin handlers of the reference backend.
package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"campus/middleware"
	"campus/models"
	"campus/repository"
	"campus/storage"
)

type Controller struct {
	store  *repository.Store
	issuer *middleware.Issuer
	files  storage.Store
	log    logrus.FieldLogger
}

func New(store *repository.Store, issuer *middleware.Issuer, files storage.Store, log logrus.FieldLogger) *Controller {
	return &Controller{store: store, issuer: issuer, files: files, log: log}
}

// respondError maps data-layer errors onto status codes and writes the
// teacher-style error body.
func (ctl *Controller) respondError(c *gin.Context, err error) {
	var verr *models.ValidationError
	var oerr *repository.InvalidOrderError
	switch {
	case errors.As(err, &verr), errors.As(err, &oerr):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, storage.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, repository.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": "Request conflicts with the current state"})
	case errors.Is(err, repository.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not have permission to perform this action"})
	case errors.Is(err, repository.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
	default:
		ctl.log.WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// bind decodes and validates a JSON body, answering 400 on failure.
func (ctl *Controller) bind(c *gin.Context, v any) bool {
	if err := c.ShouldBindJSON(v); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return false
	}
	if err := models.Validate(v); err != nil {
		ctl.respondError(c, err)
		return false
	}
	return true
}

func (ctl *Controller) idParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, models.Invalid(name, "%s must be a positive number", name)
	}
	return n, nil
}

// ownerScope returns 0 when the caller may act on every row, otherwise the
// caller's id.
func ownerScope(c *gin.Context, privileged ...models.Role) int {
	role := middleware.Role(c)
	for _, r := range privileged {
		if role == r {
			return 0
		}
	}
	return middleware.UserID(c)
}
