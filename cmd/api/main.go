package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ledgerUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/ledger"
	machineUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/machine"
	reportUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/report"
	sessionUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/session"
	userUseCase "github.com/krishkpatil/gaming-cafe/internal/domain/usecase/user"

	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/handler"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/routes"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/auth"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/clock"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/database"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/database/migration"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/logger"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := validateConfig(cfg); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	appLogger := logger.NewZapLogger(cfg.IsProduction())
	defer func() {
		_ = appLogger.Flush()
	}()

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		Username:        cfg.Database.Username,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
		QueryTimeout:    cfg.Database.QueryTimeout,
		LogLevel:        cfg.Database.LogLevel,
	}

	conn, err := database.NewConnection(dbConfig)
	if err != nil {
		appLogger.Error("Failed to connect to database", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}
	defer func() {
		if err := conn.Close(); err != nil {
			appLogger.Error("Failed to close database connection", map[string]any{
				"error": err.Error(),
			})
		}
	}()

	if err := migration.NewManager(conn.DB, appLogger).MigrateAll(); err != nil {
		appLogger.Error("Failed to run migrations", map[string]any{
			"error": err.Error(),
		})
		os.Exit(1)
	}

	realClock := clock.NewRealClock()
	uow := database.NewUnitOfWork(conn.DB, appLogger)

	userService := userUseCase.NewService(uow, realClock, appLogger)
	ledgerService := ledgerUseCase.NewService(uow, realClock, appLogger)
	machineService := machineUseCase.NewService(uow, realClock, appLogger)
	sessionEngine := sessionUseCase.NewEngine(uow, realClock, appLogger)
	reportService := reportUseCase.NewService(uow, realClock, appLogger)

	if err := migration.CreateDefaultAdmin(context.Background(), userService, migration.AdminSeed{
		Username: cfg.Admin.Username,
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
	}); err != nil {
		appLogger.Error("Failed to create default admin", map[string]any{
			"error": err.Error(),
		})
	}

	tokenMaker := auth.NewTokenMaker(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL, realClock)

	handlers := routes.Handlers{
		Auth:        handler.NewAuthHandler(userService, tokenMaker, appLogger),
		User:        handler.NewUserHandler(userService, ledgerService, appLogger),
		Machine:     handler.NewMachineHandler(machineService, appLogger),
		Session:     handler.NewSessionHandler(sessionEngine, appLogger),
		Transaction: handler.NewTransactionHandler(ledgerService, appLogger),
		Dashboard:   handler.NewDashboardHandler(reportService, appLogger),
	}

	router := gin.New()
	routes.SetupMiddlewares(router, appLogger)
	routes.SetupRoutes(router, handlers, tokenMaker, appLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}

	go func() {
		appLogger.Info("Starting server", map[string]any{
			"addr": server.Addr,
			"env":  cfg.Environment,
		})

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Error("Failed to start server", map[string]any{
				"error": err.Error(),
			})
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", map[string]any{
			"error": err.Error(),
		})
	}

	appLogger.Info("Server exited gracefully", nil)
}

// validateConfig ensures all required configuration values are present
func validateConfig(cfg *config.Config) error {
	var missing []string

	if cfg.Server.Port == 0 {
		missing = append(missing, "server.port")
	}
	if cfg.Server.ShutdownTimeout == 0 {
		missing = append(missing, "server.shutdownTimeout")
	}
	if cfg.Database.Host == "" {
		missing = append(missing, "database.host (or GC_DB_HOST environment variable)")
	}
	if cfg.Database.Username == "" {
		missing = append(missing, "database.username (or GC_DB_USERNAME environment variable)")
	}
	if cfg.Database.Password == "" {
		missing = append(missing, "database.password (or GC_DB_PASSWORD environment variable)")
	}
	if cfg.Database.Database == "" {
		missing = append(missing, "database.database (or GC_DB_NAME environment variable)")
	}
	if cfg.Auth.TokenSecret == "" {
		missing = append(missing, "auth.tokenSecret (or GC_AUTH_TOKEN_SECRET environment variable)")
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}
	return nil
}
