package services

import (
	"errors"
	"sort"

	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// AddCartItemInput identifies the variant and topping selection for a new
// cart line.
type AddCartItemInput struct {
	ProductItemID int   `json:"productItemId"`
	IngredientIDs []int `json:"ingredientIds"`
}

// CartService manages visitor carts, identified by an opaque token. The cart
// total is always recalculated server-side from variant and ingredient prices.
type CartService interface {
	// GetCart returns the cart for a token, creating an empty one when unknown.
	GetCart(token string) (models.Cart, error)
	// AddItem adds a variant with selected toppings; an existing line with the
	// same variant and topping set has its quantity incremented instead.
	AddItem(token string, input AddCartItemInput) (models.Cart, error)
	// UpdateItemQuantity changes a line's quantity, which must stay positive.
	UpdateItemQuantity(token string, itemID, quantity int) (models.Cart, error)
	// RemoveItem deletes a line from the cart.
	RemoveItem(token string, itemID int) (models.Cart, error)
}

type cartService struct {
	db *gorm.DB
}

// NewCartService creates a new instance of CartService
func NewCartService(db *gorm.DB) CartService {
	return &cartService{db: db}
}

func (s *cartService) GetCart(token string) (models.Cart, error) {
	if token == "" {
		return models.Cart{}, models.NewValidationError("Cart token is required")
	}

	var cart models.Cart
	err := s.db.Where("token = ?", token).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cart = models.Cart{Token: token}
		if err := s.db.Create(&cart).Error; err != nil {
			return models.Cart{}, err
		}
	} else if err != nil {
		return models.Cart{}, err
	}

	return s.loadCart(cart.ID)
}

func (s *cartService) AddItem(token string, input AddCartItemInput) (models.Cart, error) {
	if input.ProductItemID <= 0 {
		return models.Cart{}, models.NewValidationError("Valid product item ID is required")
	}

	cart, err := s.GetCart(token)
	if err != nil {
		return models.Cart{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var variant models.ProductItem
		if err := tx.First(&variant, input.ProductItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewValidationError("Product item not found")
			}
			return err
		}

		refs := make([]IngredientRef, 0, len(input.IngredientIDs))
		for _, id := range input.IngredientIDs {
			refs = append(refs, IngredientRef{ID: id})
		}
		ingredients, err := resolveIngredients(tx, refs)
		if err != nil {
			return err
		}

		// Same variant with the same topping set merges into one line.
		existing, found, err := findMatchingItem(tx, cart.ID, input.ProductItemID, input.IngredientIDs)
		if err != nil {
			return err
		}
		if found {
			if err := tx.Model(&existing).Update("quantity", existing.Quantity+1).Error; err != nil {
				return err
			}
		} else {
			line := models.CartItem{
				CartID:        cart.ID,
				ProductItemID: input.ProductItemID,
				Quantity:      1,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}
			if len(ingredients) > 0 {
				if err := tx.Model(&line).Association("Ingredients").Replace(ingredients); err != nil {
					return err
				}
			}
		}

		return recalcCartTotal(tx, cart.ID)
	})
	if err != nil {
		return models.Cart{}, err
	}
	return s.loadCart(cart.ID)
}

func (s *cartService) UpdateItemQuantity(token string, itemID, quantity int) (models.Cart, error) {
	if quantity <= 0 {
		return models.Cart{}, models.NewValidationError("Quantity must be positive")
	}

	cart, err := s.GetCart(token)
	if err != nil {
		return models.Cart{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		line, err := cartLine(tx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Model(&line).Update("quantity", quantity).Error; err != nil {
			return err
		}
		return recalcCartTotal(tx, cart.ID)
	})
	if err != nil {
		return models.Cart{}, err
	}
	return s.loadCart(cart.ID)
}

func (s *cartService) RemoveItem(token string, itemID int) (models.Cart, error) {
	cart, err := s.GetCart(token)
	if err != nil {
		return models.Cart{}, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		line, err := cartLine(tx, cart.ID, itemID)
		if err != nil {
			return err
		}
		if err := tx.Model(&line).Association("Ingredients").Clear(); err != nil {
			return err
		}
		if err := tx.Delete(&models.CartItem{}, line.ID).Error; err != nil {
			return err
		}
		return recalcCartTotal(tx, cart.ID)
	})
	if err != nil {
		return models.Cart{}, err
	}
	return s.loadCart(cart.ID)
}

func (s *cartService) loadCart(id int) (models.Cart, error) {
	var cart models.Cart
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at") }).
		Preload("Items.ProductItem").
		Preload("Items.ProductItem.Product").
		Preload("Items.Ingredients").
		First(&cart, id).Error
	if err != nil {
		return models.Cart{}, err
	}
	return cart, nil
}

func cartLine(tx *gorm.DB, cartID, itemID int) (models.CartItem, error) {
	var line models.CartItem
	err := tx.Where("id = ? AND cart_id = ?", itemID, cartID).First(&line).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.CartItem{}, models.NewNotFoundError("Cart item not found")
	}
	return line, err
}

// findMatchingItem looks for an existing line with the same variant and the
// same ingredient set, regardless of selection order.
func findMatchingItem(tx *gorm.DB, cartID, productItemID int, ingredientIDs []int) (models.CartItem, bool, error) {
	var lines []models.CartItem
	err := tx.Preload("Ingredients").
		Where("cart_id = ? AND product_item_id = ?", cartID, productItemID).
		Find(&lines).Error
	if err != nil {
		return models.CartItem{}, false, err
	}

	want := append([]int(nil), ingredientIDs...)
	sort.Ints(want)

	for _, line := range lines {
		have := make([]int, 0, len(line.Ingredients))
		for _, ingredient := range line.Ingredients {
			have = append(have, ingredient.ID)
		}
		sort.Ints(have)
		if equalIDs(want, have) {
			return line, true, nil
		}
	}
	return models.CartItem{}, false, nil
}

func equalIDs(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// recalcCartTotal recomputes the cart total from its lines: variant price
// plus selected ingredient prices, times quantity.
func recalcCartTotal(tx *gorm.DB, cartID int) error {
	var lines []models.CartItem
	err := tx.Preload("ProductItem").Preload("Ingredients").
		Where("cart_id = ?", cartID).
		Find(&lines).Error
	if err != nil {
		return err
	}

	var total float64
	for _, line := range lines {
		linePrice := line.ProductItem.Price
		for _, ingredient := range line.Ingredients {
			linePrice += ingredient.Price
		}
		total += linePrice * float64(line.Quantity)
	}

	return tx.Model(&models.Cart{}).Where("id = ?", cartID).Update("total_amount", total).Error
}
