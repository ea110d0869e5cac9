package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
)

type PaymentsHandler struct {
	Service *services.DashboardService
	Log     *zap.Logger
}

func (h *PaymentsHandler) List(c *gin.Context) {
	view, err := h.Service.Payments(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to load payments")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *PaymentsHandler) Create(c *gin.Context) {
	var req models.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.Service.CreatePayment(c.Request.Context(), req)
	if err != nil {
		respondError(c, h.Log, err, "Failed to create payment")
		return
	}
	c.JSON(http.StatusCreated, payment)
}

// Update patches a payment, typically its status, and answers with the
// refreshed payments view.
func (h *PaymentsHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payment id"})
		return
	}

	var req models.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.Service.UpdatePayment(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, h.Log, err, "Failed to update payment")
		return
	}
	c.JSON(http.StatusOK, view)
}
