package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User roles. The system must always retain at least one ADMIN.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID        int        `json:"id" gorm:"primaryKey"`
	FullName  string     `json:"fullName" gorm:"not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	Password  string     `json:"-" gorm:"not null"`
	Role      string     `json:"role" gorm:"default:'USER'"`
	Verified  *time.Time `json:"verified"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// HashPassword replaces the plain-text password with its bcrypt hash.
func (u *User) HashPassword() error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashed)
	return nil
}

// CheckPassword compares a plain-text password against the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) == nil
}

// VerificationCode is the one-time code issued after registration. One code
// per user at most.
type VerificationCode struct {
	ID        int       `json:"id" gorm:"primaryKey"`
	UserID    int       `json:"userId" gorm:"uniqueIndex;not null"`
	Code      string    `json:"code" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
}
