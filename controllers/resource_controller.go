package controllers

import (
	"errors"
	"net/http"
	"path"
	"strconv"

	"github.com/gin-gonic/gin"

	"campus/middleware"
	"campus/models"
	"campus/storage"
)

func (ctl *Controller) ListResources(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Resources())
}

// UploadResource accepts a multipart form with title, description,
// courseId, type and file fields.
func (ctl *Controller) UploadResource(c *gin.Context) {
	header, ok := ctl.formFile(c)
	if !ok {
		return
	}
	courseID, _ := strconv.Atoi(c.PostForm("courseId"))
	up := models.ResourceUpload{
		Title:       c.PostForm("title"),
		Description: c.PostForm("description"),
		CourseID:    courseID,
		Type:        models.ResourceType(c.DefaultPostForm("type", string(models.ResourceOther))),
		FileName:    path.Base(header.Filename),
	}
	if err := models.Validate(up); err != nil {
		ctl.respondError(c, err)
		return
	}

	key, ok := ctl.saveUpload(c, header, "resources")
	if !ok {
		return
	}
	out := ctl.store.CreateResource(models.Resource{
		Title:       up.Title,
		Description: up.Description,
		CourseID:    up.CourseID,
		Type:        up.Type,
		FileName:    up.FileName,
		URL:         fileURL(key),
		UploadedBy:  middleware.UserID(c),
	})
	c.JSON(http.StatusCreated, out)
}

func (ctl *Controller) DeleteResource(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	r, err := ctl.store.DeleteResource(id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	if err := ctl.files.Delete(c.Request.Context(), fileKey(r.URL)); err != nil && !errors.Is(err, storage.ErrNotFound) {
		ctl.log.WithError(err).WithField("resource_id", id).Warn("stored file not removed")
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) DownloadResource(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	r, err := ctl.store.Resource(id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	ctl.sendFile(c, fileKey(r.URL), r.FileName)
}
