package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/middleware"
	"campus/models"
)

func (ctl *Controller) ListEvents(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Events())
}

func (ctl *Controller) CreateEvent(c *gin.Context) {
	var e models.Event
	if !ctl.bind(c, &e) {
		return
	}
	if err := models.ValidateSchedule(e.Date, e.StartTime, e.EndTime); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ctl.store.CreateEvent(e))
}

func (ctl *Controller) DeleteEvent(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.DeleteEvent(id); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) RSVP(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	out, err := ctl.store.RSVP(id, middleware.UserID(c))
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *Controller) CancelRSVP(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	out, err := ctl.store.CancelRSVP(id, middleware.UserID(c))
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
