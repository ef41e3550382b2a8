package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type User struct {
	ID        int    `gorm:"primaryKey"`
	FullName  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	Role      string `gorm:"default:'USER'"`
	Verified  *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func main() {
	// Parse command line flags
	email := flag.String("email", "admin@lapizza.local", "Admin email address")
	password := flag.String("password", "", "Admin password (required)")
	name := flag.String("name", "Administrator", "Admin full name")
	flag.Parse()

	if *password == "" {
		log.Fatal("A password is required: -password <value>")
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "lapizza.sqlite"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Check if the admin already exists
	var existing User
	if err := db.Where("email = ?", *email).First(&existing).Error; err == nil {
		fmt.Printf("User already exists: %s (ID: %d, Role: %s)\n", existing.Email, existing.ID, existing.Role)
		if existing.Role != "ADMIN" {
			if err := db.Model(&existing).Update("role", "ADMIN").Error; err != nil {
				log.Fatal("Failed to promote user:", err)
			}
			fmt.Println("✓ Promoted to ADMIN")
		}
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	now := time.Now()
	user := User{
		FullName: *name,
		Email:    *email,
		Password: string(hash),
		Role:     "ADMIN",
		Verified: &now,
	}

	if err := db.Create(&user).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}

	fmt.Printf("✓ Admin user created!\n")
	fmt.Printf("Email: %s\n", user.Email)
	fmt.Printf("User ID: %d\n", user.ID)
	fmt.Println("\nLog in with:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/auth/login \\\n")
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"email\": \"%s\", \"password\": \"<password>\"}'\n", user.Email)
}
