package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/udex/lapizza-api/internal/services"
)

// UserController handles the admin user management endpoints
type UserController interface {
	GetAllUsers(ctx *gin.Context)
	GetUserByID(ctx *gin.Context)
	UpdateUser(ctx *gin.Context)
	DeleteUser(ctx *gin.Context)
}

type userController struct {
	service services.UserService
}

// NewUserController creates a new instance of UserController
func NewUserController(service services.UserService) UserController {
	return &userController{service: service}
}

// GetAllUsers godoc
// @Summary List users
// @Description Get all users with their order counts
// @Tags users
// @Produce json
// @Success 200 {array} services.UserWithOrders
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/users [get]
func (c *userController) GetAllUsers(ctx *gin.Context) {
	users, err := c.service.GetAllUsers()
	if err != nil {
		respondError(ctx, "admin_users_list", err, "Failed to fetch users")
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary Get user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} services.UserWithOrders
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/users/{id} [get]
func (c *userController) GetUserByID(ctx *gin.Context) {
	id, ok := pathID(ctx, "user")
	if !ok {
		return
	}

	user, err := c.service.GetUserByID(id)
	if err != nil {
		respondError(ctx, "admin_user_get", err, "Failed to fetch user")
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// UpdateUser godoc
// @Summary Update user
// @Description Edit a user's name, email and role; refuses to demote the last admin
// @Tags users
// @Accept json
// @Produce json
// @Param user body services.UserUpdateInput true "User payload"
// @Success 200 {object} models.User
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/users [put]
func (c *userController) UpdateUser(ctx *gin.Context) {
	var input services.UserUpdateInput
	if err := ctx.ShouldBindJSON(&input); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := c.service.UpdateUser(input)
	if err != nil {
		respondError(ctx, "admin_users_update", err, "Failed to update user")
		return
	}
	ctx.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete user
// @Description Delete a user and their carts; refuses to delete the last admin
// @Tags users
// @Produce json
// @Param id query int true "User ID"
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/users [delete]
func (c *userController) DeleteUser(ctx *gin.Context) {
	raw := ctx.Query("id")
	if raw == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	if err := c.service.DeleteUser(id); err != nil {
		respondError(ctx, "admin_users_delete", err, "Failed to delete user")
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
