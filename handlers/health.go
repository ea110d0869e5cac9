package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/budget-dashboard/services"
)

func Health(session *services.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"authenticated": session.Snapshot().Authenticated(),
		})
	}
}
