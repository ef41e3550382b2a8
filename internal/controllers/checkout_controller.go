package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/udex/lapizza-api/internal/payment"
	"github.com/udex/lapizza-api/internal/services"
)

// CheckoutController turns carts into orders and receives payment callbacks.
type CheckoutController interface {
	Checkout(ctx *gin.Context)
	PaymentCallback(ctx *gin.Context)
}

type checkoutController struct {
	service services.OrderService
}

// NewCheckoutController creates a new instance of CheckoutController
func NewCheckoutController(service services.OrderService) CheckoutController {
	return &checkoutController{service: service}
}

// Checkout godoc
// @Summary Checkout
// @Description Create a pending order from the cart and return the payment URL
// @Tags checkout
// @Accept json
// @Produce json
// @Param form body services.CheckoutInput true "Delivery form"
// @Success 201 {object} services.CheckoutResult
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/v1/checkout [post]
func (c *checkoutController) Checkout(ctx *gin.Context) {
	var input services.CheckoutInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	result, err := c.service.Checkout(ctx.Request.Context(), cartToken(ctx), input)
	if err != nil {
		respondError(ctx, "checkout", err, "Failed to place order")
		return
	}
	ctx.JSON(http.StatusCreated, result)
}

// PaymentCallback godoc
// @Summary Payment callback
// @Description Provider webhook moving the order to SUCCEEDED or CANCELLED
// @Tags checkout
// @Accept json
// @Produce json
// @Param body body payment.CallbackData true "Callback payload"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/checkout/callback [post]
func (c *checkoutController) PaymentCallback(ctx *gin.Context) {
	var data payment.CallbackData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if _, err := c.service.HandlePaymentCallback(data); err != nil {
		respondError(ctx, "checkout_callback", err, "Failed to process payment callback")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
