package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

// DashboardHandler serves the Dashboard and Wallet pages.
type DashboardHandler struct {
	Service *services.DashboardService
	Log     *zap.Logger
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	view, err := h.Service.Dashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to load dashboard")
		return
	}

	if c.Query("format") == "text" {
		c.String(http.StatusOK, utils.RenderDashboardText(*view))
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DashboardHandler) Wallet(c *gin.Context) {
	var (
		filter models.TransactionFilter
		err    error
	)
	if filter.AccountID, err = queryInt64(c, "account_id"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account_id"})
		return
	}
	if filter.From, err = queryDate(c, "from"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.Category = c.Query("category")
	filter.Query = c.Query("q")

	view, err := h.Service.Wallet(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.Log, err, "Failed to load wallet")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *DashboardHandler) Sync(c *gin.Context) {
	if err := h.Service.Sync(c.Request.Context()); err != nil {
		respondError(c, h.Log, err, "Failed to sync transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transactions synced"})
}

func (h *DashboardHandler) RefreshBalances(c *gin.Context) {
	if err := h.Service.RefreshBalances(c.Request.Context()); err != nil {
		respondError(c, h.Log, err, "Failed to refresh balances")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Balances refreshed"})
}
