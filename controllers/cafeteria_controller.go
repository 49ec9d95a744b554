package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"campus/middleware"
	"campus/models"
)

func (ctl *Controller) ListItems(c *gin.Context) {
	c.JSON(http.StatusOK, ctl.store.Items())
}

func (ctl *Controller) CreateItem(c *gin.Context) {
	var it models.CafeteriaItem
	if !ctl.bind(c, &it) {
		return
	}
	c.JSON(http.StatusCreated, ctl.store.CreateItem(it))
}

func (ctl *Controller) UpdateItem(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	var it models.CafeteriaItem
	if !ctl.bind(c, &it) {
		return
	}
	it.ID = id
	out, err := ctl.store.UpdateItem(it)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (ctl *Controller) DeleteItem(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	if err := ctl.store.DeleteItem(id); err != nil {
		ctl.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (ctl *Controller) PlaceOrder(c *gin.Context) {
	var req models.OrderRequest
	if !ctl.bind(c, &req) {
		return
	}
	out, err := ctl.store.CreateOrder(middleware.UserID(c), req)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, out)
}

// ListOrders returns the caller's orders; staff and admins get every order.
func (ctl *Controller) ListOrders(c *gin.Context) {
	status := models.OrderStatus(c.Query("status"))
	if status != "" && !status.Valid() {
		ctl.respondError(c, models.Invalid("status", "unknown order status %q", status))
		return
	}
	c.JSON(http.StatusOK, ctl.store.Orders(ownerScope(c, models.RoleAdmin, models.RoleStaff), status))
}

func (ctl *Controller) UpdateOrderStatus(c *gin.Context) {
	id, ok := ctl.idParam(c, "id")
	if !ok {
		return
	}
	var body models.StatusUpdate
	if !ctl.bind(c, &body) {
		return
	}
	status := models.OrderStatus(body.Status)
	if !status.Valid() {
		ctl.respondError(c, models.Invalid("status", "unknown order status %q", body.Status))
		return
	}
	out, err := ctl.store.UpdateOrderStatus(id, status)
	if err != nil {
		ctl.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
