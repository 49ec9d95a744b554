package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/middleware"
	"campus/models"
)

func (ctl *Controller) ListFacilities(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Facilities())
}

func (ctl *Controller) GetFacility(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	f, err := ctl.store.Facility(id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

func (ctl *Controller) CreateFacility(c *gin.Context) {
	var f models.Facility
	if !ctl.bind(c, &f) {
		return
	}
	c.JSON(http.StatusCreated, ctl.store.CreateFacility(f))
}

func (ctl *Controller) UpdateFacility(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	var f models.Facility
	if !ctl.bind(c, &f) {
		return
	}
	f.ID = id
	out, err := ctl.store.UpdateFacility(f)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *Controller) DeleteFacility(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.DeleteFacility(id); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) ListFacilityBookings(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	out, err := ctl.store.FacilityBookings(id)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// ListBookings returns the caller's bookings; admins get every booking.
func (ctl *Controller) ListBookings(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Bookings(ownerScope(c, models.RoleAdmin)))
}

func (ctl *Controller) CreateBooking(c *gin.Context) {
	var b models.Booking
	if !ctl.bind(c, &b) {
		return
	}
	if err := models.ValidateSchedule(b.Date, b.StartTime, b.EndTime); err != nil {
		ctl.respondError(c, err)
		return
	}
	b.UserID = middleware.UserID(c)
	out, err := ctl.store.CreateBooking(b)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

func (ctl *Controller) CancelBooking(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.CancelBooking(id, ownerScope(c, models.RoleAdmin)); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
