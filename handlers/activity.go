package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
)

type ActivityHandler struct {
	Service *services.DashboardService
	Log     *zap.Logger
}

// Timeline serves GET /activity?type=transaction,payment&q=&from=&to=
func (h *ActivityHandler) Timeline(c *gin.Context) {
	var (
		filter models.ActivityFilter
		err    error
	)
	for _, t := range queryList(c, "type") {
		kind := models.ActivityType(t)
		if !kind.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid activity type: " + t})
			return
		}
		filter.Types = append(filter.Types, kind)
	}
	if filter.From, err = queryDate(c, "from"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if filter.To, err = queryDate(c, "to"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	filter.Query = c.Query("q")

	view, err := h.Service.Activity(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.Log, err, "Failed to load activity")
		return
	}
	c.JSON(http.StatusOK, view)
}
