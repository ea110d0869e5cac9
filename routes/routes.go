package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/handlers"
	"github.com/LovationAdmin/budget-dashboard/middleware"
	"github.com/LovationAdmin/budget-dashboard/services"
)

// Deps is everything the router wires into handlers.
type Deps struct {
	API          *services.APIClient
	Dashboard    *services.DashboardService
	Links        *services.LinkService
	Sandbox      services.Linker
	Events       *services.EventLog
	WS           *handlers.WSHandler
	LoginLimiter *middleware.RateLimiter
	Log          *zap.Logger

	AllowedOrigins []string
	TOTPSecret     string
}

func NewRouter(d Deps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(d.Log))

	if len(d.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     d.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}

	router.GET("/health", handlers.Health(d.API.Session()))
	router.GET("/ws/events", d.WS.HandleWS)

	SetupAuthRoutes(&router.RouterGroup, d)

	protected := router.Group("/")
	protected.Use(middleware.RequireSession(d.API.Session()))
	{
		SetupPageRoutes(protected, d)
		SetupLinkRoutes(protected, d)
	}

	return router
}

// SetupAuthRoutes sets up the login, register and session routes. Logout is
// protected.
func SetupAuthRoutes(rg *gin.RouterGroup, d Deps) {
	authHandler := &handlers.AuthHandler{
		API:        d.API,
		Events:     d.Events,
		Log:        d.Log,
		TOTPSecret: d.TOTPSecret,
	}

	login := []gin.HandlerFunc{authHandler.Login}
	if d.LoginLimiter != nil {
		login = append([]gin.HandlerFunc{d.LoginLimiter.Middleware()}, login...)
	}
	rg.POST("/login", login...)
	rg.POST("/register", authHandler.Register)
	rg.GET("/session", authHandler.Session)
	rg.POST("/logout", middleware.RequireSession(d.API.Session()), authHandler.Logout)
}

// SetupPageRoutes sets up one route group per dashboard page.
func SetupPageRoutes(rg *gin.RouterGroup, d Deps) {
	dashboardHandler := &handlers.DashboardHandler{Service: d.Dashboard, Log: d.Log}
	rg.GET("/dashboard", dashboardHandler.Dashboard)
	rg.GET("/wallet", dashboardHandler.Wallet)
	rg.POST("/wallet/sync", dashboardHandler.Sync)
	rg.POST("/wallet/refresh-balances", dashboardHandler.RefreshBalances)

	paymentsHandler := &handlers.PaymentsHandler{Service: d.Dashboard, Log: d.Log}
	rg.GET("/payments", paymentsHandler.List)
	rg.POST("/payments", paymentsHandler.Create)
	rg.PATCH("/payments/:id", paymentsHandler.Update)

	activityHandler := &handlers.ActivityHandler{Service: d.Dashboard, Log: d.Log}
	rg.GET("/activity", activityHandler.Timeline)

	settingsHandler := &handlers.SettingsHandler{Service: d.Dashboard, Log: d.Log}
	rg.GET("/settings", settingsHandler.GetProfile)
	rg.PUT("/settings", settingsHandler.UpdateProfile)
}

func SetupLinkRoutes(rg *gin.RouterGroup, d Deps) {
	linkHandler := &handlers.LinkHandler{Links: d.Links, SandboxLinker: d.Sandbox, Log: d.Log}
	rg.POST("/link/token", linkHandler.CreateLinkToken)
	rg.POST("/link/exchange", linkHandler.Exchange)
	rg.POST("/link/sandbox", linkHandler.Sandbox)
}
