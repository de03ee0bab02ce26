package controllers

import (
	"net/http"

	"github.com/pawmart/pawmart/app/services"
	"github.com/pawmart/pawmart/pkg/bind"
	"github.com/pawmart/pawmart/pkg/middleware"
	"github.com/pawmart/pawmart/pkg/response"
)

type CartController struct {
	carts *services.CartService
}

func NewCartController(carts *services.CartService) *CartController {
	return &CartController{carts: carts}
}

func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	cart, err := c.carts.Get(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		ProductID uint `json:"product_id" validate:"required"`
		Quantity  int  `json:"quantity" validate:"required,gte=1"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.AddItem(userID, in.ProductID, in.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, "Malformed request body")
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	cart, err := c.carts.UpdateItemQuantity(userID, paramID(r, "productID"), in.Quantity)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	cart, err := c.carts.RemoveItem(userID, paramID(r, "productID"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, cart)
}

func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.carts.Clear(userID); err != nil {
		fail(w, r, err)
		return
	}
	response.Message(w, "Cart cleared")
}
