package services

import (
	"errors"
	"strings"

	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// UserWithOrders is the admin list shape: a user plus how many orders they
// have placed.
type UserWithOrders struct {
	models.User
	OrderCount int64 `json:"orderCount"`
}

// UserUpdateInput is the admin payload for editing a user.
type UserUpdateInput struct {
	ID       int    `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// UserService manages accounts. Mutations enforce the last-admin guard: the
// system must always retain at least one ADMIN.
type UserService interface {
	// CreateUser registers a new account; the email must be unused.
	CreateUser(user *models.User) error
	// GetUserByEmail retrieves a user by email.
	GetUserByEmail(email string) (*models.User, error)
	// GetUserByID retrieves a user by ID with their order count.
	GetUserByID(id int) (UserWithOrders, error)
	// GetAllUsers lists users with order counts, newest first.
	GetAllUsers() ([]UserWithOrders, error)
	// UpdateUser edits name, email and role, refusing to demote the last admin.
	UpdateUser(input UserUpdateInput) (models.User, error)
	// DeleteUser removes a user together with their verification codes and
	// carts, refusing to delete the last admin.
	DeleteUser(id int) error
}

type userService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) UserService {
	return &userService{db: db}
}

func (s *userService) CreateUser(user *models.User) error {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return models.NewConflictError("User with this email already exists")
	}
	return s.db.Create(user).Error
}

func (s *userService) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User not found")
		}
		return nil, err
	}
	return &user, nil
}

func (s *userService) GetUserByID(id int) (UserWithOrders, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserWithOrders{}, models.NewNotFoundError("User not found")
		}
		return UserWithOrders{}, err
	}

	orders, err := s.orderCount(id)
	if err != nil {
		return UserWithOrders{}, err
	}
	return UserWithOrders{User: user, OrderCount: orders}, nil
}

func (s *userService) GetAllUsers() ([]UserWithOrders, error) {
	var users []models.User
	if err := s.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}

	result := make([]UserWithOrders, 0, len(users))
	for _, user := range users {
		orders, err := s.orderCount(user.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, UserWithOrders{User: user, OrderCount: orders})
	}
	return result, nil
}

func (s *userService) UpdateUser(input UserUpdateInput) (models.User, error) {
	if input.ID <= 0 || strings.TrimSpace(input.FullName) == "" || strings.TrimSpace(input.Email) == "" || input.Role == "" {
		return models.User{}, models.NewValidationError("Missing required fields")
	}
	if input.Role != models.RoleUser && input.Role != models.RoleAdmin {
		return models.User{}, models.NewValidationError("Invalid role")
	}

	var user models.User
	if err := s.db.First(&user, input.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, models.NewNotFoundError("User not found")
		}
		return models.User{}, err
	}

	var emailTaken int64
	err := s.db.Model(&models.User{}).
		Where("email = ? AND id <> ?", input.Email, input.ID).
		Count(&emailTaken).Error
	if err != nil {
		return models.User{}, err
	}
	if emailTaken > 0 {
		return models.User{}, models.NewConflictError("Email already in use")
	}

	// Demoting the sole remaining admin would lock everyone out.
	if user.Role == models.RoleAdmin && input.Role != models.RoleAdmin {
		admins, err := s.adminCount()
		if err != nil {
			return models.User{}, err
		}
		if admins <= 1 {
			return models.User{}, models.NewConflictError("Cannot demote the only admin user")
		}
	}

	fields := map[string]interface{}{
		"full_name": strings.TrimSpace(input.FullName),
		"email":     strings.TrimSpace(input.Email),
		"role":      input.Role,
	}
	if err := s.db.Model(&user).Updates(fields).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *userService) DeleteUser(id int) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User not found")
		}
		return err
	}

	if user.Role == models.RoleAdmin {
		admins, err := s.adminCount()
		if err != nil {
			return err
		}
		if admins <= 1 {
			return models.NewConflictError("Cannot delete the only admin user")
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&models.VerificationCode{}).Error; err != nil {
			return err
		}

		var carts []models.Cart
		if err := tx.Where("user_id = ?", id).Find(&carts).Error; err != nil {
			return err
		}
		for _, cart := range carts {
			if err := tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Cart{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, id).Error
	})
}

func (s *userService) orderCount(userID int) (int64, error) {
	var count int64
	err := s.db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (s *userService) adminCount() (int64, error) {
	var count int64
	err := s.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error
	return count, err
}
