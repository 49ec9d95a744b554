package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/middleware"
	"campus/models"
)

func (ctl *Controller) ListLostItems(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.LostItems())
}

func (ctl *Controller) ReportLostItem(c *gin.Context) {
	var it models.LostItem
	if err := c.ShouldBindJSON(&it); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if it.Status == "" {
		it.Status = models.ItemLost
	}
	if it.Status == models.ItemClaimed {
		ctl.respondError(c, models.Invalid("status", "new reports must be LOST or FOUND"))
		return
	}
	if err := models.Validate(it); err != nil {
		ctl.respondError(c, err)
		return
	}
	it.ReportedBy = middleware.UserID(c)
	c.JSON(http.StatusCreated, ctl.store.ReportItem(it))
}

// UpdateLostItemStatus lets the reporter, staff or admins move a report
// between LOST, FOUND and CLAIMED.
func (ctl *Controller) UpdateLostItemStatus(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	var body models.StatusUpdate
	if !ctl.bind(c, &body) {
		return
	}
	status := models.LostItemStatus(body.Status)
	switch status {
	case models.ItemLost, models.ItemFound, models.ItemClaimed:
	default:
		ctl.respondError(c, models.Invalid("status", "unknown status %q", body.Status))
		return
	}
	out, err := ctl.store.UpdateItemStatus(id, ownerScope(c, models.RoleAdmin, models.RoleStaff), status)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *Controller) DeleteLostItem(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.DeleteLostItem(id, ownerScope(c, models.RoleAdmin, models.RoleStaff)); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
