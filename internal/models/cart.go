package models

import (
	"time"
)

// Cart holds a visitor's pending order. Anonymous visitors are identified by
// the Token cookie; UserID is filled in once the visitor logs in.
type Cart struct {
	ID          int        `json:"id" gorm:"primaryKey"`
	UserID      *int       `json:"userId" gorm:"index"`
	Token       string     `json:"token" gorm:"uniqueIndex;not null"`
	TotalAmount float64    `json:"totalAmount"`
	Items       []CartItem `json:"items,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// CartItem is one cart line: a product variant, a quantity and the selected
// extra ingredients.
type CartItem struct {
	ID            int          `json:"id" gorm:"primaryKey"`
	CartID        int          `json:"cartId" gorm:"index;not null"`
	ProductItemID int          `json:"productItemId" gorm:"index;not null"`
	ProductItem   *ProductItem `json:"productItem,omitempty"`
	Quantity      int          `json:"quantity" gorm:"not null;default:1"`
	Ingredients   []Ingredient `json:"ingredients,omitempty" gorm:"many2many:cart_item_ingredients;"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}
