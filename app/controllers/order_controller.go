package controllers

import (
	"net/http"

	"github.com/pawmart/pawmart/app/models"
	"github.com/pawmart/pawmart/app/resources"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
	"github.com/pawmart/pawmart/pkg/ws"
)

type OrderController struct {
	orders *services.OrderService
	hub    *ws.Hub
}

func NewOrderController(orders *services.OrderService, hub *ws.Hub) *OrderController {
	return &OrderController{orders: orders, hub: hub}
}

func (c *OrderController) Index(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.orders.ListMine(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.NewOrderList(orders))
}

// AdminIndex lists all orders, optionally filtered by status.
func (c *OrderController) AdminIndex(w http.ResponseWriter, r *http.Request) {
	page, perPage := bind.Page(r)
	status := r.URL.Query().Get("status")

	orders, pagination, err := c.orders.List(page, perPage, status)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, resources.NewOrderList(orders), pagination)
}

func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	role, _ := middleware.RoleFromCtx(r)

	order, err := c.orders.Get(paramID(r, "id"), userID, models.Role(role))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.NewOrder(order))
}

func (c *OrderController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Status string `json:"status" validate:"required,in=processing,shipped,delivered,cancelled"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.orders.UpdateStatus(paramID(r, "id"), models.OrderStatus(in.Status))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.NewOrder(order))
}

func (c *OrderController) Cancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	role, _ := middleware.RoleFromCtx(r)

	order, err := c.orders.Cancel(paramID(r, "id"), userID, models.Role(role))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, resources.NewOrder(order))
}

// Feed upgrades the connection to a websocket carrying live order status
// updates for the authenticated user.
func (c *OrderController) Feed(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	ws.Upgrade(w, r, c.hub, userID)
}
