package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LovationAdmin/budget-dashboard/services"
)

// RequireSession guards the page routes: without an access token the page is
// never rendered and the client is sent to the login page.
func RequireSession(session *services.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.AccessToken() == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":    "Authentication required",
				"redirect": "/login",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
