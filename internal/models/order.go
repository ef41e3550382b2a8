package models

import (
	"time"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusSucceeded OrderStatus = "SUCCEEDED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is created at checkout with a JSON snapshot of the cart lines, so the
// order contents survive later catalog edits. Status moves from PENDING to
// SUCCEEDED or CANCELLED when the payment callback arrives.
type Order struct {
	ID          int         `json:"id" gorm:"primaryKey"`
	UserID      *int        `json:"userId" gorm:"index"`
	Token       string      `json:"token" gorm:"index;not null"`
	TotalAmount float64     `json:"totalAmount" gorm:"not null"`
	Status      OrderStatus `json:"status" gorm:"default:'PENDING'"`
	PaymentID   string      `json:"paymentId"`
	Items       string      `json:"items" gorm:"type:text"`
	FullName    string      `json:"fullName" gorm:"not null"`
	Email       string      `json:"email" gorm:"not null"`
	Phone       string      `json:"phone" gorm:"not null"`
	Address     string      `json:"address" gorm:"not null"`
	Comment     string      `json:"comment"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}
