package controllers

import (
	"net/http"

	"github.com/pawmart/pawmart/app/resources"
	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
)

type CheckoutController struct {
	checkout *services.CheckoutService
}

func NewCheckoutController(checkout *services.CheckoutService) *CheckoutController {
	return &CheckoutController{checkout: checkout}
}

func (c *CheckoutController) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.CheckoutInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	order, err := c.checkout.PlaceOrder(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, resources.NewOrder(order))
}
