package routes

import (
	"github.com/gin-gonic/gin"

	coreport "github.com/krishkpatil/gaming-cafe/internal/domain/port/core"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/handler"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/api/middleware"
	"github.com/krishkpatil/gaming-cafe/internal/infrastructure/adapter/auth"
)

// Handlers groups the handler instances wired into the router
type Handlers struct {
	Auth        *handler.AuthHandler
	User        *handler.UserHandler
	Machine     *handler.MachineHandler
	Session     *handler.SessionHandler
	Transaction *handler.TransactionHandler
	Dashboard   *handler.DashboardHandler
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	handlers Handlers,
	tokenMaker *auth.TokenMaker,
	logger coreport.Logger,
) {
	api := router.Group("/api")

	// Public routes
	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/signup", handlers.Auth.Signup)
		authRoutes.POST("/login", handlers.Auth.Login)
	}

	// Authenticated routes
	authed := api.Group("")
	authed.Use(middleware.RequireAuth(tokenMaker, logger))
	{
		authed.GET("/users/me", handlers.User.Profile)
		authed.GET("/users/:id/transactions", handlers.User.Transactions)

		authed.GET("/machines", handlers.Machine.List)
		authed.GET("/machines/:id", handlers.Machine.Get)

		authed.GET("/sessions", handlers.Session.List)
		authed.GET("/sessions/active", handlers.Session.ListActive)
	}

	// Operator routes
	admin := api.Group("")
	admin.Use(middleware.RequireAuth(tokenMaker, logger), middleware.RequireAdmin())
	{
		admin.GET("/users", handlers.User.List)
		admin.GET("/users/:id", handlers.User.Get)
		admin.POST("/users", handlers.User.Create)
		admin.DELETE("/users/:id", handlers.User.Delete)
		admin.POST("/users/:id/balance", handlers.User.AddBalance)

		admin.POST("/machines", handlers.Machine.Create)
		admin.PUT("/machines/:id", handlers.Machine.Update)
		admin.PATCH("/machines/:id/status", handlers.Machine.SetStatus)
		admin.DELETE("/machines/:id", handlers.Machine.Delete)

		admin.POST("/sessions/start", handlers.Session.Start)
		admin.POST("/sessions/:id/end", handlers.Session.End)

		admin.GET("/transactions", handlers.Transaction.List)
		admin.GET("/dashboard/stats", handlers.Dashboard.Stats)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
