package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/udex/lapizza-api/internal/services"
)

const cartTokenCookie = "cartToken"

// CartController handles the storefront cart endpoints. Carts are anonymous,
// keyed by an opaque token carried in a cookie (or X-Cart-Token header for
// non-browser clients).
type CartController interface {
	GetCart(ctx *gin.Context)
	AddItem(ctx *gin.Context)
	UpdateItemQuantity(ctx *gin.Context)
	RemoveItem(ctx *gin.Context)
}

type cartController struct {
	service services.CartService
}

// NewCartController creates a new instance of CartController
func NewCartController(service services.CartService) CartController {
	return &cartController{service: service}
}

// cartToken returns the caller's cart token, minting one (and setting the
// cookie) on first contact.
func cartToken(ctx *gin.Context) string {
	if token := ctx.GetHeader("X-Cart-Token"); token != "" {
		return token
	}
	if token, err := ctx.Cookie(cartTokenCookie); err == nil && token != "" {
		return token
	}

	token := uuid.NewString()
	ctx.SetCookie(cartTokenCookie, token, 60*60*24*30, "/", "", false, true)
	return token
}

// GetCart godoc
// @Summary Get cart
// @Description Get the caller's cart, creating an empty one on first contact
// @Tags cart
// @Produce json
// @Success 200 {object} models.Cart
// @Failure 500 {object} map[string]string
// @Router /api/v1/cart [get]
func (c *cartController) GetCart(ctx *gin.Context) {
	cart, err := c.service.GetCart(cartToken(ctx))
	if err != nil {
		respondError(ctx, "cart_get", err, "Failed to fetch cart")
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// AddItem godoc
// @Summary Add to cart
// @Description Add a product variant with selected ingredients; an identical line is merged
// @Tags cart
// @Accept json
// @Produce json
// @Param item body services.AddCartItemInput true "Cart item"
// @Success 200 {object} models.Cart
// @Failure 400 {object} map[string]string
// @Router /api/v1/cart [post]
func (c *cartController) AddItem(ctx *gin.Context) {
	var input services.AddCartItemInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := c.service.AddItem(cartToken(ctx), input)
	if err != nil {
		respondError(ctx, "cart_add_item", err, "Failed to add item to cart")
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// UpdateItemQuantity godoc
// @Summary Change line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param id path int true "Cart item ID"
// @Param body body object{quantity=int} true "New quantity"
// @Success 200 {object} models.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/cart/items/{id} [patch]
func (c *cartController) UpdateItemQuantity(ctx *gin.Context) {
	id, ok := pathID(ctx, "cart item")
	if !ok {
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	cart, err := c.service.UpdateItemQuantity(cartToken(ctx), id, req.Quantity)
	if err != nil {
		respondError(ctx, "cart_update_item", err, "Failed to update cart item")
		return
	}
	ctx.JSON(http.StatusOK, cart)
}

// RemoveItem godoc
// @Summary Remove cart line
// @Tags cart
// @Produce json
// @Param id path int true "Cart item ID"
// @Success 200 {object} models.Cart
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/cart/items/{id} [delete]
func (c *cartController) RemoveItem(ctx *gin.Context) {
	id, ok := pathID(ctx, "cart item")
	if !ok {
		return
	}

	cart, err := c.service.RemoveItem(cartToken(ctx), id)
	if err != nil {
		respondError(ctx, "cart_remove_item", err, "Failed to remove cart item")
		return
	}
	ctx.JSON(http.StatusOK, cart)
}
