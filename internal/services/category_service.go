package services

import (
	"errors"
	"strings"

	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// CategoryWithCount is the admin list shape: a category plus how many
// products it owns.
type CategoryWithCount struct {
	models.Category
	ProductCount int64 `json:"productCount"`
}

// CategoryService manages product categories.
type CategoryService interface {
	// GetAllCategories lists categories with product counts, newest first.
	GetAllCategories() ([]CategoryWithCount, error)
	// GetCategoryByID retrieves one category with its product count.
	GetCategoryByID(id int) (CategoryWithCount, error)
	// CreateCategory creates a category with a unique trimmed name.
	CreateCategory(name string) (models.Category, error)
	// UpdateCategory renames a category, keeping names unique.
	UpdateCategory(id int, name string) (models.Category, error)
	// DeleteCategory removes a category unless it still owns products.
	DeleteCategory(id int) error
}

type categoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a new instance of CategoryService
func NewCategoryService(db *gorm.DB) CategoryService {
	return &categoryService{db: db}
}

func (s *categoryService) GetAllCategories() ([]CategoryWithCount, error) {
	var categories []models.Category
	if err := s.db.Order("created_at DESC").Find(&categories).Error; err != nil {
		return nil, err
	}

	result := make([]CategoryWithCount, 0, len(categories))
	for _, category := range categories {
		count, err := s.productCount(category.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, CategoryWithCount{Category: category, ProductCount: count})
	}
	return result, nil
}

func (s *categoryService) GetCategoryByID(id int) (CategoryWithCount, error) {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return CategoryWithCount{}, models.NewNotFoundError("Category not found")
		}
		return CategoryWithCount{}, err
	}

	count, err := s.productCount(id)
	if err != nil {
		return CategoryWithCount{}, err
	}
	return CategoryWithCount{Category: category, ProductCount: count}, nil
}

func (s *categoryService) CreateCategory(name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, models.NewValidationError("Category name is required")
	}

	if taken, err := s.nameTaken(name, 0); err != nil {
		return models.Category{}, err
	} else if taken {
		return models.Category{}, models.NewConflictError("Category with this name already exists")
	}

	category := models.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(id int, name string) (models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Category{}, models.NewValidationError("Category name is required")
	}

	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, models.NewNotFoundError("Category not found")
		}
		return models.Category{}, err
	}

	if taken, err := s.nameTaken(name, id); err != nil {
		return models.Category{}, err
	} else if taken {
		return models.Category{}, models.NewConflictError("Category with this name already exists")
	}

	if err := s.db.Model(&category).Update("name", name).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(id int) error {
	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Category not found")
		}
		return err
	}

	count, err := s.productCount(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("Cannot delete category with products. Remove all products first.")
	}

	return s.db.Delete(&models.Category{}, id).Error
}

func (s *categoryService) productCount(categoryID int) (int64, error) {
	var count int64
	err := s.db.Model(&models.Product{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}

// nameTaken reports whether another category already uses the given name.
func (s *categoryService) nameTaken(name string, excludeID int) (bool, error) {
	var count int64
	err := s.db.Model(&models.Category{}).
		Where("name = ? AND id <> ?", name, excludeID).
		Count(&count).Error
	return count > 0, err
}
