package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/LovationAdmin/budget-dashboard/config"
	"github.com/LovationAdmin/budget-dashboard/handlers"
	"github.com/LovationAdmin/budget-dashboard/middleware"
	"github.com/LovationAdmin/budget-dashboard/routes"
	"github.com/LovationAdmin/budget-dashboard/services"
	"github.com/LovationAdmin/budget-dashboard/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	logger, err := utils.NewLogger(cfg.Environment, cfg.LogLevel)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	backend, db, err := sessionBackend(cfg)
	if err != nil {
		logger.Fatal("Failed to set up session store", zap.Error(err))
	}
	if db != nil {
		defer db.Close()
	}

	session, err := services.NewSession(ctx, backend, logger)
	if err != nil {
		logger.Fatal("Failed to load session", zap.Error(err))
	}

	wsHandler := handlers.NewWSHandler(logger)
	session.Subscribe(wsHandler.PublishSession)

	events := services.NewEventLog(0)
	events.SetPublisher(wsHandler)

	api := services.NewAPIClient(cfg.APIBaseURL, session,
		services.WithTimeout(cfg.RequestTimeout),
		services.WithLogger(logger.Named("api")),
	)

	var sandbox services.Linker
	if cfg.Plaid.Enabled() {
		sandbox = services.NewPlaidSandboxLinker(cfg.Plaid, logger.Named("plaid"))
		logger.Info("Plaid sandbox linker enabled", zap.String("env", cfg.Plaid.Env))
	}

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, time.Minute)
	go loginLimiter.Run(ctx)

	router := routes.NewRouter(routes.Deps{
		API:            api,
		Dashboard:      services.NewDashboardService(api, events, cfg.Dashboard, cfg.Location, logger.Named("dashboard")),
		Links:          services.NewLinkService(api, events, logger.Named("link")),
		Sandbox:        sandbox,
		Events:         events,
		WS:             wsHandler,
		LoginLimiter:   loginLimiter,
		Log:            logger,
		AllowedOrigins: []string{cfg.FrontendURL},
		TOTPSecret:     cfg.LoginTOTPSecret,
	})

	logger.Info("Server starting",
		zap.String("port", cfg.Port),
		zap.String("api", cfg.APIBaseURL),
		zap.String("session_store", cfg.Session.Store),
		zap.Bool("authenticated", session.Snapshot().Authenticated()))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}
	if err := serve(ctx, srv, shutdownTimeout); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
	logger.Info("Server stopped")
}

const shutdownTimeout = 10 * time.Second

// serve runs srv until ctx is done, then drains in-flight requests.
func serve(ctx context.Context, srv *http.Server, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func sessionBackend(cfg *config.Config) (services.SessionBackend, *sql.DB, error) {
	if cfg.Session.Store == "memory" {
		return nil, nil, nil
	}

	var key []byte
	if cfg.Session.Secret != "" {
		var err error
		if key, err = utils.DeriveKey(cfg.Session.Secret); err != nil {
			return nil, nil, fmt.Errorf("failed to derive session key: %w", err)
		}
	}

	if cfg.Session.Store == "postgres" {
		db, err := config.InitDB(cfg.Session.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := config.RunMigrations(db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return services.NewPostgresSessionBackend(db, key), db, nil
	}

	return services.NewFileSessionBackend(cfg.Session.File, key), nil, nil
}
