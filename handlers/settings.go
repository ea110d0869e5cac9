package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

type SettingsHandler struct {
	Service *services.DashboardService
	Log     *zap.Logger
}

// ============================================================================
// PROFILE MANAGEMENT
// ============================================================================

func (h *SettingsHandler) GetProfile(c *gin.Context) {
	profile, err := h.Service.Profile(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to fetch profile")
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *SettingsHandler) UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.Service.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update profile")
		return
	}

	h.Log.Info("Profile updated", zap.String("email", utils.MaskEmail(profile.Email)))
	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}
