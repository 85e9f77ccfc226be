package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mindloop/habitpack/models"
	"github.com/mindloop/habitpack/utils"
)

// BadgeController lists badges earned through day and pack completion.
type BadgeController struct {
	db *gorm.DB
}

// NewBadgeController creates a new controller instance.
func NewBadgeController(db *gorm.DB) *BadgeController {
	return &BadgeController{db: db}
}

// ListMyBadges returns the authenticated user's earned badges.
func (b *BadgeController) ListMyBadges(ctx *gin.Context) {
	userID, ok := getUserID(ctx)
	if !ok {
		utils.Error(ctx, http.StatusUnauthorized, 40110, "unauthorized")
		return
	}

	var badges []models.Badge
	if err := b.db.Where("user_id = ?", userID).Order("earned_at ASC").Find(&badges).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50060, "failed to load badges")
		return
	}

	utils.Success(ctx, gin.H{"badges": badges})
}
