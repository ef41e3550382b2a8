package services

import (
	"errors"
	"strings"

	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// IngredientInput is the admin create/update payload for an ingredient.
type IngredientInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	ImageURL string  `json:"imageUrl"`
}

// IngredientService manages the topping catalog.
type IngredientService interface {
	// GetAllIngredients lists ingredients, newest first.
	GetAllIngredients() ([]models.Ingredient, error)
	// GetIngredientByID retrieves one ingredient.
	GetIngredientByID(id int) (models.Ingredient, error)
	// CreateIngredient creates an ingredient with a unique trimmed name.
	CreateIngredient(input IngredientInput) (models.Ingredient, error)
	// UpdateIngredient updates an ingredient, keeping names unique.
	UpdateIngredient(id int, input IngredientInput) (models.Ingredient, error)
	// DeleteIngredient removes an ingredient unless products still use it.
	DeleteIngredient(id int) error
}

type ingredientService struct {
	db *gorm.DB
}

// NewIngredientService creates a new instance of IngredientService
func NewIngredientService(db *gorm.DB) IngredientService {
	return &ingredientService{db: db}
}

func validateIngredientInput(input IngredientInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return models.NewValidationError("Ingredient name is required")
	}
	if input.Price < 0 {
		return models.NewValidationError("Valid price is required")
	}
	if strings.TrimSpace(input.ImageURL) == "" {
		return models.NewValidationError("Image URL is required")
	}
	return nil
}

func (s *ingredientService) GetAllIngredients() ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.Order("created_at DESC").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *ingredientService) GetIngredientByID(id int) (models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, models.NewNotFoundError("Ingredient not found")
		}
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) CreateIngredient(input IngredientInput) (models.Ingredient, error) {
	if err := validateIngredientInput(input); err != nil {
		return models.Ingredient{}, err
	}

	name := strings.TrimSpace(input.Name)
	if taken, err := s.nameTaken(name, 0); err != nil {
		return models.Ingredient{}, err
	} else if taken {
		return models.Ingredient{}, models.NewConflictError("Ingredient with this name already exists")
	}

	ingredient := models.Ingredient{
		Name:     name,
		Price:    input.Price,
		ImageURL: strings.TrimSpace(input.ImageURL),
	}
	if err := s.db.Create(&ingredient).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) UpdateIngredient(id int, input IngredientInput) (models.Ingredient, error) {
	if err := validateIngredientInput(input); err != nil {
		return models.Ingredient{}, err
	}

	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Ingredient{}, models.NewNotFoundError("Ingredient not found")
		}
		return models.Ingredient{}, err
	}

	name := strings.TrimSpace(input.Name)
	if taken, err := s.nameTaken(name, id); err != nil {
		return models.Ingredient{}, err
	} else if taken {
		return models.Ingredient{}, models.NewConflictError("Ingredient with this name already exists")
	}

	fields := map[string]interface{}{
		"name":      name,
		"price":     input.Price,
		"image_url": strings.TrimSpace(input.ImageURL),
	}
	if err := s.db.Model(&ingredient).Updates(fields).Error; err != nil {
		return models.Ingredient{}, err
	}
	return ingredient, nil
}

func (s *ingredientService) DeleteIngredient(id int) error {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Ingredient not found")
		}
		return err
	}

	usedBy := s.db.Model(&ingredient).Association("Products").Count()
	if usedBy > 0 {
		return models.NewConflictError("Cannot delete ingredient that is used in products. Remove it from all products first.")
	}

	return s.db.Delete(&models.Ingredient{}, id).Error
}

// nameTaken reports whether another ingredient already uses the given name.
func (s *ingredientService) nameTaken(name string, excludeID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.Ingredient{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}
