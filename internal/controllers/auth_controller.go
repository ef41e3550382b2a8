package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	log "github.com/sirupsen/logrus"
	"github.com/udex/lapizza-api/internal/services"
)

// AuthController handles registration, verification and login.
type AuthController struct {
	authService services.AuthService
	jwtSecret   []byte
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(authService services.AuthService, jwtSecret string) *AuthController {
	return &AuthController{
		authService: authService,
		jwtSecret:   []byte(jwtSecret),
	}
}

// Register godoc
// @Summary Register
// @Description Create an account; a verification code is issued for it
// @Tags auth
// @Accept json
// @Produce json
// @Param user body services.RegisterInput true "Registration payload"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /api/v1/auth/register [post]
func (ac *AuthController) Register(c *gin.Context) {
	var req services.RegisterInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := ac.authService.Register(req)
	if err != nil {
		respondError(c, "auth_register", err, "Failed to register user")
		return
	}

	log.WithField("user_id", user.ID).Info("User registered, verification pending")
	c.JSON(http.StatusCreated, gin.H{"message": "user_created"})
}

// Verify godoc
// @Summary Verify account
// @Tags auth
// @Accept json
// @Produce json
// @Param body body object{code=string} true "Verification code"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/auth/verify [post]
func (ac *AuthController) Verify(c *gin.Context) {
	var req struct {
		Code string `json:"code"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := ac.authService.Verify(req.Code)
	if err != nil {
		respondError(c, "auth_verify", err, "Failed to verify account")
		return
	}

	log.WithField("user_id", user.ID).Info("User verified")
	c.JSON(http.StatusOK, gin.H{"message": "account_verified"})
}

// Login godoc
// @Summary Log in
// @Description Exchange credentials for a Bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body object{email=string,password=string} true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /api/v1/auth/login [post]
func (ac *AuthController) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := ac.authService.Login(req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_credentials"})
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"uid":  user.ID,
		"role": user.Role,
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
		"iat":  time.Now().Unix(),
	})

	tokenString, err := token.SignedString(ac.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token_generation_failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": tokenString,
		"token_type":   "Bearer",
		"expires_in":   86400,
		"user": gin.H{
			"id":       user.ID,
			"email":    user.Email,
			"fullName": user.FullName,
			"role":     user.Role,
		},
	})
}
