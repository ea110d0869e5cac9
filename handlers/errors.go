package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/models"
	"github.com/LovationAdmin/budget-dashboard/services"
)

const loginPath = "/login"

// respondError maps a service error to the JSON the pages expect. failure is
// the user-facing message for network and unknown errors.
func respondError(c *gin.Context, log *zap.Logger, err error, failure string) {
	var (
		apiErr  *services.APIError
		verr    *services.ValidationError
		linkErr *services.LinkError
	)

	switch {
	case errors.Is(err, services.ErrSessionExpired), errors.Is(err, services.ErrNotAuthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Session expired, please log in again",
			"redirect": loginPath,
		})

	case errors.As(err, &linkErr):
		c.JSON(http.StatusBadGateway, gin.H{
			"error": failure,
			"stage": linkErr.Stage,
		})

	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Validation failed",
			"fields":   verr.Fields,
			"messages": verr.Messages(),
		})

	case errors.As(err, &apiErr) && apiErr.Unauthorized():
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":    "Session expired, please log in again",
			"redirect": loginPath,
		})

	case errors.As(err, &apiErr) && apiErr.IsValidation():
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Validation failed",
			"fields":   apiErr.FieldErrors,
			"messages": apiErr.Messages(),
		})

	case errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})

	default:
		log.Error(failure, zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{
			"error": failure,
			"retry": true,
		})
	}
}

// ============================================================================
// QUERY PARSING
// ============================================================================

func queryDate(c *gin.Context, key string) (*models.Date, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil, nil
	}
	d, err := models.ParseDate(v)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func queryInt64(c *gin.Context, key string) (int64, error) {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}

// queryList accepts both ?type=a&type=b and ?type=a,b.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, v := range c.QueryArray(key) {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
