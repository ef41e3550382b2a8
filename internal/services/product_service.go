package services

import (
	"errors"
	"strings"

	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// ProductItemInput is one proposed variant in a create/update request. A zero
// ID means a new row; a non-zero ID addresses an existing row of the product.
type ProductItemInput struct {
	ID        int     `json:"id,omitempty"`
	Price     float64 `json:"price"`
	Size      *int    `json:"size"`
	PizzaType *int    `json:"pizzaType"`
}

// IngredientRef references an ingredient by ID in a product payload.
type IngredientRef struct {
	ID int `json:"id"`
}

// ProductInput is the admin create/update payload for a product and its
// variant set.
type ProductInput struct {
	Name        string             `json:"name"`
	ImageURL    string             `json:"imageUrl"`
	CategoryID  int                `json:"categoryId"`
	Items       []ProductItemInput `json:"items"`
	Ingredients []IngredientRef    `json:"ingredients"`
	IsPizza     bool               `json:"isPizza"`
}

// ProductService provides catalog product management, including the
// transactional reconciliation of a product's variant set.
type ProductService interface {
	// GetAllProducts retrieves all products with their category, newest first.
	GetAllProducts() ([]models.Product, error)
	// GetProductByID retrieves a product with category, items and ingredients.
	GetProductByID(id int) (models.Product, error)
	// SearchProducts finds up to limit products whose name contains query.
	SearchProducts(query string, limit int) ([]models.Product, error)
	// CreateProduct creates a product with its variants and ingredient links.
	CreateProduct(input ProductInput) (models.Product, error)
	// UpdateProduct reconciles a product's variants and ingredient links
	// against the proposed state.
	UpdateProduct(id int, input ProductInput) (models.Product, error)
	// DeleteProduct removes a product unless one of its variants sits in a cart.
	DeleteProduct(id int) error
}

type productService struct {
	db *gorm.DB
}

// NewProductService creates a new instance of ProductService
func NewProductService(db *gorm.DB) ProductService {
	return &productService{db: db}
}

// ValidateItems enforces the structural rules of a product's variant set. The
// same rules apply on the create and update paths.
func ValidateItems(isPizza bool, items []ProductItemInput) error {
	if len(items) == 0 {
		if isPizza {
			return models.NewValidationError("Pizza must have at least one item")
		}
		return models.NewValidationError("Regular product must have exactly one item")
	}

	for _, item := range items {
		if item.Price <= 0 {
			return models.NewValidationError("Valid price is required for all items")
		}
	}

	if !isPizza {
		if len(items) != 1 {
			return models.NewValidationError("Regular product must have exactly one item")
		}
		if items[0].Size != nil || items[0].PizzaType != nil {
			return models.NewValidationError("Regular product cannot have size or pizzaType")
		}
	}
	return nil
}

func validateProductInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return models.NewValidationError("Product name is required")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return models.NewValidationError("Image URL is required")
	}
	if input.CategoryID <= 0 {
		return models.NewValidationError("Valid category ID is required")
	}
	return ValidateItems(input.IsPizza, input.Items)
}

func (s *productService) GetAllProducts() ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Preload("Category").Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) GetProductByID(id int) (models.Product, error) {
	var product models.Product
	err := s.db.
		Preload("Category").
		Preload("Items").
		Preload("Ingredients").
		First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, models.NewNotFoundError("Product not found")
	}
	if err != nil {
		return models.Product{}, err
	}
	return product, nil
}

func (s *productService) SearchProducts(query string, limit int) ([]models.Product, error) {
	var products []models.Product
	err := s.db.
		Where("LOWER(name) LIKE ?", "%"+strings.ToLower(strings.TrimSpace(query))+"%").
		Limit(limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (s *productService) CreateProduct(input ProductInput) (models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return models.Product{}, err
	}

	var created models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := categoryMustExist(tx, input.CategoryID); err != nil {
			return err
		}

		product := models.Product{
			Name:       strings.TrimSpace(input.Name),
			ImageURL:   strings.TrimSpace(input.ImageURL),
			CategoryID: input.CategoryID,
		}
		if err := tx.Create(&product).Error; err != nil {
			return err
		}

		for _, item := range input.Items {
			row := models.ProductItem{
				Price:     item.Price,
				Size:      item.Size,
				PizzaType: item.PizzaType,
				ProductID: product.ID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}

		if input.IsPizza && len(input.Ingredients) > 0 {
			ingredients, err := resolveIngredients(tx, input.Ingredients)
			if err != nil {
				return err
			}
			if err := tx.Model(&product).Association("Ingredients").Replace(ingredients); err != nil {
				return err
			}
		}

		return loadProductWithRelations(tx, product.ID, &created)
	})
	if err != nil {
		return models.Product{}, err
	}
	return created, nil
}

func (s *productService) UpdateProduct(id int, input ProductInput) (models.Product, error) {
	if err := validateProductInput(input); err != nil {
		return models.Product{}, err
	}

	var updated models.Product
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Product not found")
			}
			return err
		}

		if err := categoryMustExist(tx, input.CategoryID); err != nil {
			return err
		}

		fields := map[string]interface{}{
			"name":        strings.TrimSpace(input.Name),
			"image_url":   strings.TrimSpace(input.ImageURL),
			"category_id": input.CategoryID,
		}
		if err := tx.Model(&product).Updates(fields).Error; err != nil {
			return err
		}

		if err := reconcileItems(tx, id, input.Items); err != nil {
			return err
		}

		if input.IsPizza {
			ingredients, err := resolveIngredients(tx, input.Ingredients)
			if err != nil {
				return err
			}
			// Full replace: ingredients absent from the proposal are dropped.
			if len(ingredients) == 0 {
				if err := tx.Model(&product).Association("Ingredients").Clear(); err != nil {
					return err
				}
			} else if err := tx.Model(&product).Association("Ingredients").Replace(ingredients); err != nil {
				return err
			}
		} else {
			// Regular products carry no toppings.
			if err := tx.Model(&product).Association("Ingredients").Clear(); err != nil {
				return err
			}
		}

		return loadProductWithRelations(tx, id, &updated)
	})
	if err != nil {
		return models.Product{}, err
	}
	return updated, nil
}

// reconcileItems brings the persisted variant rows in line with the proposed
// list: matched IDs are updated in place, unknown entries are inserted, and
// persisted rows absent from the proposal are deleted.
func reconcileItems(tx *gorm.DB, productID int, items []ProductItemInput) error {
	var existing []models.ProductItem
	if err := tx.Where("product_id = ?", productID).Find(&existing).Error; err != nil {
		return err
	}

	remaining := make(map[int]struct{}, len(existing))
	for _, row := range existing {
		remaining[row.ID] = struct{}{}
	}

	for _, item := range items {
		if _, ok := remaining[item.ID]; item.ID != 0 && ok {
			fields := map[string]interface{}{
				"price":      item.Price,
				"size":       item.Size,
				"pizza_type": item.PizzaType,
			}
			if err := tx.Model(&models.ProductItem{}).Where("id = ?", item.ID).Updates(fields).Error; err != nil {
				return err
			}
			delete(remaining, item.ID)
			continue
		}

		row := models.ProductItem{
			Price:     item.Price,
			Size:      item.Size,
			PizzaType: item.PizzaType,
			ProductID: productID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
	}

	for staleID := range remaining {
		if err := tx.Delete(&models.ProductItem{}, staleID).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *productService) DeleteProduct(id int) error {
	var product models.Product
	if err := s.db.Preload("Items").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Product not found")
		}
		return err
	}

	if len(product.Items) > 0 {
		itemIDs := make([]int, 0, len(product.Items))
		for _, item := range product.Items {
			itemIDs = append(itemIDs, item.ID)
		}
		var inCarts int64
		if err := s.db.Model(&models.CartItem{}).Where("product_item_id IN ?", itemIDs).Count(&inCarts).Error; err != nil {
			return err
		}
		if inCarts > 0 {
			return models.NewConflictError("Cannot delete product that is in use in carts")
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&models.ProductItem{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&models.Product{}, id).Error
	})
}

func categoryMustExist(tx *gorm.DB, categoryID int) error {
	var category models.Category
	if err := tx.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewValidationError("Category not found")
		}
		return err
	}
	return nil
}

// resolveIngredients loads the referenced ingredients and fails when any ID is
// unknown. An empty reference list resolves to an empty set, which clears the
// association on replace.
func resolveIngredients(tx *gorm.DB, refs []IngredientRef) ([]models.Ingredient, error) {
	if len(refs) == 0 {
		return nil, nil
	}

	ids := make([]int, 0, len(refs))
	for _, ref := range refs {
		ids = append(ids, ref.ID)
	}

	var found []models.Ingredient
	if err := tx.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, models.NewValidationError("Some ingredients do not exist")
	}
	return found, nil
}

func loadProductWithRelations(tx *gorm.DB, id int, dest *models.Product) error {
	return tx.
		Preload("Category").
		Preload("Items").
		Preload("Ingredients").
		First(dest, id).Error
}
