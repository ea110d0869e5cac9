package routes

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/config"
	"github.com/LovationAdmin/budget-dashboard/handlers"
	"github.com/LovationAdmin/budget-dashboard/middleware"
	"github.com/LovationAdmin/budget-dashboard/services"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"No active account found with the given credentials"}`))
	}))
	t.Cleanup(backend.Close)

	log := zap.NewNop()
	api := services.NewAPIClient(backend.URL, services.NewMemorySession())
	events := services.NewEventLog(0)

	return NewRouter(Deps{
		API:            api,
		Dashboard:      services.NewDashboardService(api, events, config.DashboardConfig{TopCategories: 5, RecentTransactions: 5, PriorityDays: 3}, time.UTC, log),
		Links:          services.NewLinkService(api, events, log),
		Events:         events,
		WS:             handlers.NewWSHandler(log),
		LoginLimiter:   middleware.NewRateLimiter(2, time.Minute),
		Log:            log,
		AllowedOrigins: []string{"http://localhost:3000"},
	})
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/dashboard"},
		{http.MethodGet, "/wallet"},
		{http.MethodGet, "/payments"},
		{http.MethodPatch, "/payments/1"},
		{http.MethodGet, "/activity"},
		{http.MethodGet, "/settings"},
		{http.MethodPost, "/link/token"},
		{http.MethodPost, "/logout"},
	} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
		assert.Contains(t, w.Body.String(), `"redirect":"/login"`, route.path)
	}
}

func TestPublicRoutes(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestLoginIsRateLimited(t *testing.T) {
	router := newTestRouter(t)

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"ana","password":"x"}`))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}
