package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
)

type LinkHandler struct {
	Links *services.LinkService
	// SandboxLinker is nil unless Plaid credentials are configured.
	SandboxLinker services.Linker
	Log           *zap.Logger
}

// CreateLinkToken starts a browser link: the page opens Plaid Link with the
// returned token.
func (h *LinkHandler) CreateLinkToken(c *gin.Context) {
	resp, err := h.Links.Token(c.Request.Context())
	if err != nil {
		respondError(c, h.Log, err, "Failed to start account linking")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Exchange completes a browser link with the public token Plaid Link produced.
func (h *LinkHandler) Exchange(c *gin.Context) {
	var req models.ExchangeTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.Links.Complete(c.Request.Context(), req.PublicToken)
	if err != nil {
		respondError(c, h.Log, err, "Failed to link account")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LinkHandler) Sandbox(c *gin.Context) {
	if h.SandboxLinker == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Plaid sandbox is not configured"})
		return
	}

	result, err := h.Links.Link(c.Request.Context(), h.SandboxLinker)
	if err != nil {
		respondError(c, h.Log, err, "Failed to link account")
		return
	}
	c.JSON(http.StatusOK, result)
}
