package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (ctl *Controller) GetAdminMetrics(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Metrics())
}
