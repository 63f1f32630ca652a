package handler

import (
	"shared-wallet-service/internal/adapter/http/middleware"
	"shared-wallet-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	UserSvc        ports.UserService
	WalletSvc      ports.WalletService
	AccessSvc      ports.AccessService
	TxSvc          ports.TransactionService
	TokenSvc       ports.TokenService
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Health check (deep — verifies the storage backend)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// Every API route runs through BearerAuth: it rejects bad tokens and
	// lets anonymous requests through for the services to judge.
	v1 := r.Group("/api/v1", middleware.BearerAuth(deps.TokenSvc, deps.Logger))

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	userHandler := NewUserHandler(deps.UserSvc)
	users := v1.Group("/users")
	{
		users.GET("", userHandler.List)
		users.GET("/resolve", userHandler.Resolve)
		users.GET("/:id", userHandler.Get)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc, deps.AccessSvc)
	txHandler := NewTransactionHandler(deps.TxSvc)
	wallets := v1.Group("/wallets")
	{
		wallets.POST("", walletHandler.Create)
		wallets.GET("", walletHandler.ListMine)
		wallets.GET("/all", walletHandler.ListAll)
		wallets.GET("/:id", walletHandler.Get)
		wallets.DELETE("/:id", walletHandler.Delete)
		wallets.POST("/:id/close", walletHandler.Close)
		wallets.POST("/:id/access", walletHandler.GrantAccess)
		wallets.DELETE("/:id/access/:userId", walletHandler.RevokeAccess)
		wallets.POST("/:id/transactions", txHandler.Create)
		wallets.GET("/:id/transactions", txHandler.ListByWallet)
	}

	transactions := v1.Group("/transactions")
	{
		transactions.GET("", txHandler.ListMine)
		transactions.GET("/:id", txHandler.Get)
		transactions.PATCH("/:id", txHandler.Update)
		transactions.DELETE("/:id", txHandler.Delete)
	}

	return r
}
