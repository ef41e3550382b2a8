package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/udex/lapizza-api/internal/models"
	"github.com/udex/lapizza-api/internal/payment"
	"github.com/udex/lapizza-api/internal/pricing"
	"gorm.io/gorm"
)

// orderLine is one snapshotted cart line, annotated with the configuration
// label for pizzas so order history reads without catalog lookups.
type orderLine struct {
	models.CartItem
	Description string `json:"description,omitempty"`
}

func snapshotLines(items []models.CartItem) []orderLine {
	lines := make([]orderLine, 0, len(items))
	for _, item := range items {
		line := orderLine{CartItem: item}
		if v := item.ProductItem; v != nil && v.Size != nil && v.PizzaType != nil {
			line.Description = pricing.Description(*v.PizzaType, *v.Size)
		}
		lines = append(lines, line)
	}
	return lines
}

// CheckoutInput is the delivery form submitted at checkout.
type CheckoutInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	Comment  string `json:"comment"`
}

// CheckoutResult is returned to the storefront: the created order and the
// payment redirect URL.
type CheckoutResult struct {
	Order      models.Order `json:"order"`
	PaymentURL string       `json:"paymentUrl"`
}

// OrderService creates orders from carts and applies payment callbacks.
type OrderService interface {
	// Checkout snapshots the cart into a PENDING order, empties the cart and
	// registers a payment with the provider.
	Checkout(ctx context.Context, token string, input CheckoutInput) (CheckoutResult, error)
	// HandlePaymentCallback moves the order to SUCCEEDED or CANCELLED based on
	// the provider's reported status.
	HandlePaymentCallback(data payment.CallbackData) (models.Order, error)
}

type orderService struct {
	db       *gorm.DB
	payments *payment.Client
}

// NewOrderService creates a new instance of OrderService
func NewOrderService(db *gorm.DB, payments *payment.Client) OrderService {
	return &orderService{db: db, payments: payments}
}

func validateCheckoutInput(input CheckoutInput) error {
	if strings.TrimSpace(input.FullName) == "" {
		return models.NewValidationError("Full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return models.NewValidationError("Email is required")
	}
	if strings.TrimSpace(input.Phone) == "" {
		return models.NewValidationError("Phone is required")
	}
	if strings.TrimSpace(input.Address) == "" {
		return models.NewValidationError("Address is required")
	}
	return nil
}

func (s *orderService) Checkout(ctx context.Context, token string, input CheckoutInput) (CheckoutResult, error) {
	if token == "" {
		return CheckoutResult{}, models.NewValidationError("Cart token is required")
	}
	if err := validateCheckoutInput(input); err != nil {
		return CheckoutResult{}, err
	}

	var order models.Order
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.
			Preload("Items").
			Preload("Items.ProductItem").
			Preload("Items.ProductItem.Product").
			Preload("Items.Ingredients").
			Where("token = ?", token).
			First(&cart).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Cart not found")
		}
		if err != nil {
			return err
		}
		if len(cart.Items) == 0 {
			return models.NewValidationError("Cart is empty")
		}

		// The order keeps a snapshot of the lines so later catalog edits do
		// not rewrite order history.
		snapshot, err := json.Marshal(snapshotLines(cart.Items))
		if err != nil {
			return err
		}

		order = models.Order{
			UserID:      cart.UserID,
			Token:       token,
			TotalAmount: cart.TotalAmount,
			Status:      models.OrderStatusPending,
			Items:       string(snapshot),
			FullName:    strings.TrimSpace(input.FullName),
			Email:       strings.TrimSpace(input.Email),
			Phone:       strings.TrimSpace(input.Phone),
			Address:     strings.TrimSpace(input.Address),
			Comment:     strings.TrimSpace(input.Comment),
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range cart.Items {
			if err := tx.Model(&line).Association("Ingredients").Clear(); err != nil {
				return err
			}
		}
		if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}
		return tx.Model(&cart).Update("total_amount", 0).Error
	})
	if err != nil {
		return CheckoutResult{}, err
	}

	created, err := s.payments.CreatePayment(ctx, payment.Details{
		OrderID:     order.ID,
		Amount:      order.TotalAmount,
		Description: fmt.Sprintf("Order #%d", order.ID),
	})
	if err != nil {
		log.WithError(err).WithField("order_id", order.ID).Error("Failed to create payment for order")
		return CheckoutResult{}, err
	}

	if err := s.db.Model(&order).Update("payment_id", created.ID).Error; err != nil {
		return CheckoutResult{}, err
	}
	order.PaymentID = created.ID

	return CheckoutResult{Order: order, PaymentURL: created.URL()}, nil
}

func (s *orderService) HandlePaymentCallback(data payment.CallbackData) (models.Order, error) {
	orderID, err := data.Object.Metadata.OrderID.Int64()
	if err != nil {
		return models.Order{}, models.NewValidationError("Invalid order ID in callback")
	}

	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, models.NewNotFoundError("Order not found")
		}
		return models.Order{}, err
	}

	status := models.OrderStatusCancelled
	if data.Object.Status == payment.StatusSucceeded {
		status = models.OrderStatusSucceeded
	}

	if err := s.db.Model(&order).Update("status", status).Error; err != nil {
		return models.Order{}, err
	}
	order.Status = status

	log.WithFields(log.Fields{
		"order_id": order.ID,
		"status":   status,
	}).Info("Order status updated from payment callback")
	return order, nil
}
