package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"github.com/udex/lapizza-api/internal/cache"
	"github.com/udex/lapizza-api/internal/database"
	"gorm.io/gorm"
)

// SettingsController exposes the admin maintenance endpoints: cache clear and
// database reset.
type SettingsController interface {
	ClearCache(ctx *gin.Context)
	ResetDatabase(ctx *gin.Context)
}

type settingsController struct {
	db    *gorm.DB
	cache *cache.Catalog
}

// NewSettingsController creates a new instance of SettingsController
func NewSettingsController(db *gorm.DB, cache *cache.Catalog) SettingsController {
	return &settingsController{db: db, cache: cache}
}

// ClearCache godoc
// @Summary Clear catalog cache
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]bool
// @Security BearerAuth
// @Router /api/v1/admin/settings/clear-cache [post]
func (c *settingsController) ClearCache(ctx *gin.Context) {
	c.cache.Clear()
	log.Info("Catalog cache cleared by admin")
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}

// ResetDatabase godoc
// @Summary Reset database
// @Description Truncate all domain tables and reseed the catalog
// @Tags settings
// @Produce json
// @Success 200 {object} map[string]bool
// @Failure 500 {object} map[string]string
// @Security BearerAuth
// @Router /api/v1/admin/settings/reset-database [post]
func (c *settingsController) ResetDatabase(ctx *gin.Context) {
	if err := database.Reset(c.db); err != nil {
		respondError(ctx, "admin_reset_database", err, "Failed to reset database")
		return
	}
	c.cache.Clear()
	log.Warn("Database reset and reseeded by admin")
	ctx.JSON(http.StatusOK, gin.H{"success": true})
}
