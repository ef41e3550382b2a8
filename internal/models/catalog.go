package models

import (
	"time"
)

// Category groups products on the storefront. Names are unique.
type Category struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Products  []Product `json:"products,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Product represents a catalog entry. A product never carries a price of its
// own: every purchasable configuration lives in a ProductItem variant.
type Product struct {
	ID          int           `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"not null"`
	ImageURL    string        `json:"imageUrl" gorm:"not null"`
	CategoryID  int           `json:"categoryId" gorm:"index;not null"`
	Category    *Category     `json:"category,omitempty"`
	Items       []ProductItem `json:"items,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Ingredients []Ingredient  `json:"ingredients,omitempty" gorm:"many2many:product_ingredients;"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProductItem is one purchasable variant of a product. For pizzas both Size
// and PizzaType are set; regular products have exactly one variant with both
// left nil.
type ProductItem struct {
	ID        int      `json:"id" gorm:"primaryKey"`
	Price     float64  `json:"price" gorm:"not null"`
	Size      *int     `json:"size"`
	PizzaType *int     `json:"pizzaType"`
	ProductID int      `json:"productId" gorm:"index;not null"`
	Product   *Product `json:"product,omitempty"`
}

// Ingredient is an optional pizza topping with its own price. The relation to
// products is shared both ways; neither side owns the other.
type Ingredient struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Price     float64   `json:"price" gorm:"not null"`
	ImageURL  string    `json:"imageUrl"`
	Products  []Product `json:"-" gorm:"many2many:product_ingredients;"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
