package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

type AuthHandler struct {
	API    *services.APIClient
	Events *services.EventLog
	Log    *zap.Logger

	// TOTPSecret, when set, fills in the 2FA code for logins that omit it.
	TOTPSecret string
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.TOTPCode == "" && h.TOTPSecret != "" {
		code, err := utils.LoginCode(h.TOTPSecret, time.Now())
		if err != nil {
			h.Log.Error("Failed to generate 2FA code", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate 2FA code"})
			return
		}
		req.TOTPCode = code
	}

	_, err := h.API.Login(c.Request.Context(), req)
	if err != nil {
		utils.LogAuthAction(h.Log, "Login", req.Username, false)

		var apiErr *services.APIError
		if errors.As(err, &apiErr) && (apiErr.Unauthorized() || apiErr.StatusCode == http.StatusBadRequest) {
			msg := apiErr.Detail
			if msg == "" {
				msg = "Invalid credentials"
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}
		respondError(c, h.Log, err, "Login failed, please try again")
		return
	}

	utils.LogAuthAction(h.Log, "Login", req.Username, true)
	h.Events.Record("logged_in", "Signed in", "New session started")
	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"redirect":      "/dashboard",
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.API.Register(c.Request.Context(), req); err != nil {
		utils.LogAuthAction(h.Log, "Register", req.Email, false)
		respondError(c, h.Log, err, "Registration failed, please try again")
		return
	}

	utils.LogAuthAction(h.Log, "Register", req.Email, true)
	c.JSON(http.StatusCreated, gin.H{
		"message":  "Account created, please log in",
		"redirect": loginPath,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.API.Logout(c.Request.Context()); err != nil {
		// The in-memory credentials are gone even when persisting fails.
		h.Log.Error("Failed to persist logout", zap.Error(err))
	}
	h.Events.Record("logged_out", "Signed out", "Session ended")
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "redirect": loginPath})
}

// Session reports whether credentials are held. ?verify=true also asks the
// backend whether the access token is still accepted.
func (h *AuthHandler) Session(c *gin.Context) {
	snapshot := h.API.Session().Snapshot()
	resp := gin.H{"authenticated": snapshot.Authenticated()}

	if exp, ok := utils.TokenExpiry(snapshot.AccessToken); ok {
		resp["expires_at"] = exp
	}

	if snapshot.Authenticated() && c.Query("verify") == "true" {
		err := h.API.VerifyToken(c.Request.Context())
		resp["valid"] = err == nil
		if err != nil {
			h.Log.Info("Access token verification failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}
