package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/udex/lapizza-api/internal/models"
	"gorm.io/gorm"
)

// RegisterInput is the storefront registration payload.
type RegisterInput struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthService implements the credentials flow: register with a one-time
// verification code, verify, then log in.
type AuthService interface {
	// Register creates an unverified USER account and its verification code.
	Register(input RegisterInput) (*models.User, error)
	// Verify marks the code's owner as verified and consumes the code.
	Verify(code string) (*models.User, error)
	// Login checks credentials for a verified account.
	Login(email, password string) (*models.User, error)
}

type authService struct {
	db    *gorm.DB
	users UserService
}

// NewAuthService creates a new instance of AuthService
func NewAuthService(db *gorm.DB, users UserService) AuthService {
	return &authService{db: db, users: users}
}

func (s *authService) Register(input RegisterInput) (*models.User, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return nil, models.NewValidationError("Full name is required")
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, models.NewValidationError("Email is required")
	}
	if len(input.Password) < 6 {
		return nil, models.NewValidationError("Password must be at least 6 characters")
	}

	user := &models.User{
		FullName: strings.TrimSpace(input.FullName),
		Email:    strings.TrimSpace(input.Email),
		Password: input.Password,
		Role:     models.RoleUser,
	}
	if err := user.HashPassword(); err != nil {
		return nil, err
	}
	if err := s.users.CreateUser(user); err != nil {
		return nil, err
	}

	code := models.VerificationCode{UserID: user.ID, Code: generateCode()}
	if err := s.db.Create(&code).Error; err != nil {
		return nil, err
	}

	// The code would normally go out by email; it is logged by the caller in
	// development setups instead.
	return user, nil
}

func (s *authService) Verify(code string) (*models.User, error) {
	if strings.TrimSpace(code) == "" {
		return nil, models.NewValidationError("Verification code is required")
	}

	var record models.VerificationCode
	err := s.db.Where("code = ?", strings.TrimSpace(code)).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Invalid verification code")
	}
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, record.UserID).Error; err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&user).Update("verified", &now).Error; err != nil {
			return err
		}
		user.Verified = &now
		return tx.Delete(&models.VerificationCode{}, record.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *authService) Login(email, password string) (*models.User, error) {
	user, err := s.users.GetUserByEmail(strings.TrimSpace(email))
	if err != nil {
		var notFound *models.NotFoundError
		if errors.As(err, &notFound) {
			return nil, models.NewValidationError("Invalid email or password")
		}
		return nil, err
	}

	if !user.CheckPassword(password) {
		return nil, models.NewValidationError("Invalid email or password")
	}
	if user.Verified == nil {
		return nil, models.NewValidationError("Account is not verified")
	}
	return user, nil
}

// generateCode returns a 6-digit numeric one-time code.
func generateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand failing is unrecoverable for code issuance
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}
