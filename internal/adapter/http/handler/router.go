package handler

import (
	"demo-bank/internal/adapter/http/middleware"
	"demo-bank/internal/adapter/http/web"
	"demo-bank/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	AccountSvc     ports.AccountService
	TransferSvc    ports.TransferService
	Cookie         *middleware.SessionCookie
	HealthCheckers []ports.HealthChecker
	CORSOrigins    []string
	MaxBodyBytes   int64
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(web.Templates())

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.CORS(deps.CORSOrigins))
	r.Use(middleware.MaxBodySize(deps.MaxBodyBytes))

	// Health check (deep, pings every configured store)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	// --- Public pages ---
	authHandler := NewAuthHandler(deps.AuthSvc, deps.Cookie, deps.Logger)
	r.GET("/", authHandler.Index)
	r.GET("/login", authHandler.LoginPage)
	r.POST("/login", authHandler.Login)
	r.GET("/logout", authHandler.Logout)

	// --- Session-authenticated routes ---
	guard := middleware.SessionGuard(deps.AuthSvc, deps.Cookie, deps.Logger)
	accountHandler := NewAccountHandler(deps.AccountSvc)
	transferHandler := NewTransferHandler(deps.TransferSvc)

	r.GET("/dashboard", guard, accountHandler.Dashboard)

	api := r.Group("/api", guard)
	{
		api.GET("/user-info", accountHandler.UserInfo)
		api.GET("/transactions", accountHandler.Transactions)
		api.POST("/transfer", transferHandler.Transfer)
	}

	return r
}
