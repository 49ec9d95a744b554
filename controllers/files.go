package controllers

import (
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"campus/models"
	"campus/storage"
)

// filesPrefix is the public URL prefix of stored uploads.
const filesPrefix = "/files/"

// formFile returns the multipart "file" field, answering 400 when absent.
func (ctl *Controller) formFile(c *gin.Context) (*multipart.FileHeader, bool) {
	header, err := c.FormFile("file")
	if err != nil {
		ctl.respondError(c, models.Invalid("file", "file is required"))
		return nil, false
	}
	return header, true
}

// saveUpload stores an uploaded file under prefix and returns its key.
func (ctl *Controller) saveUpload(c *gin.Context, header *multipart.FileHeader, prefix string) (string, bool) {
	f, err := header.Open()
	if err != nil {
		ctl.respondError(c, fmt.Errorf("open upload: %w", err))
		return "", false
	}
	defer f.Close()

	key := storage.NewKey(prefix, header.Filename)
	if err := ctl.files.Put(c.Request.Context(), key, header.Header.Get("Content-Type"), f); err != nil {
		ctl.respondError(c, err)
		return "", false
	}
	ctl.log.WithField("key", key).Info("file stored")
	return key, true
}

func (ctl *Controller) sendFile(c *gin.Context, key, name string) {
	rc, err := ctl.files.Open(c.Request.Context(), key)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, -1, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
	})
}

// ServeFile streams a stored upload by key.
func (ctl *Controller) ServeFile(c *gin.Context) {
	key := strings.TrimPrefix(c.Param("key"), "/")
	ctl.sendFile(c, key, path.Base(key))
}

func fileURL(key string) string { return filesPrefix + key }

func fileKey(url string) string { return strings.TrimPrefix(url, filesPrefix) }
