package controllers

import (
	"net/http"

	"github.com/casatartufo/tartufo/app/services"
	"github.com/casatartufo/tartufo/app/views"
	"github.com/casatartufo/tartufo/pkg/bind"
	"github.com/casatartufo/tartufo/pkg/logger"
	"github.com/casatartufo/tartufo/pkg/middleware"
	"github.com/casatartufo/tartufo/pkg/response"
)

// OrderController exposes order placement and history.
type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{service: service}
}

// PlaceOrder validates and persists a new order for the session user.
// Field-level sequencing and messages live in the service; the controller
// only decodes and maps errors to status codes.
func (c *OrderController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.PlaceOrderInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := c.service.PlaceOrder(userID, in)
	if err != nil {
		response.FromError(w, err)
		return
	}

	logger.WithCtx(r.Context()).Info("order placed",
		"order_id", order.ID,
		"user_id", userID,
		"total", order.TotalAmount,
		"items", len(order.Items),
	)
	response.Created(w, "Order placed successfully", views.NewOrderView(order))
}

// History returns the session user's orders, newest first.
func (c *OrderController) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	orders, err := c.service.ListOrders(userID)
	if err != nil {
		response.FromError(w, err)
		return
	}

	response.Success(w, views.NewOrderViews(orders))
}
