package routes

import (
	"github.com/gin-gonic/gin"

	"gripinvest/internal/handlers"
	"gripinvest/internal/middleware"
	"gripinvest/internal/services"
)

func SetupRoutes(
	r *gin.Engine,
	rateLimit gin.HandlerFunc,
	auth services.AuthService,
	logs services.LogsService,
	alerts *services.AlertService,
	authHandler *handlers.AuthHandler,
	utilsHandler *handlers.UtilsHandler,
	productHandler *handlers.ProductHandler,
	investmentHandler *handlers.InvestmentHandler,
	portfolioHandler *handlers.PortfolioHandler,
	logsHandler *handlers.LogsHandler,
	profileHandler *handlers.ProfileHandler,
	adminHandler *handlers.AdminHandler,
	healthHandler *handlers.HealthHandler,
) *gin.Engine {

	txlog := middleware.TransactionLogger(logs, alerts)

	// ---- public
	r.GET("/healthz", healthHandler.Check)
	r.POST("/utils/password-strength", utilsHandler.PasswordStrength)
	r.GET("/products", productHandler.List)

	// credential endpoints sit behind the limiter; failed attempts are logged
	pub := r.Group("/auth", rateLimit, txlog)
	{
		pub.POST("/signup", authHandler.Signup)
		pub.POST("/login", authHandler.Login)
		pub.POST("/request-reset", authHandler.RequestReset)
		pub.POST("/reset-password", authHandler.ResetPassword)
	}

	// ---- protected
	r.Use(middleware.AuthMiddleware(auth))
	r.Use(txlog)

	r.GET("/auth/me", authHandler.Me)
	r.PUT("/profile", profileHandler.Update)

	// PRODUCTS
	products := r.Group("/products")
	{
		products.GET("/recommended", productHandler.Recommended)

		admin := products.Group("", middleware.RequireAdmin())
		{
			admin.POST("", productHandler.Create)
			admin.PUT("/:id", productHandler.Update)
			admin.DELETE("/:id", productHandler.Delete)
			admin.POST("/generate-description", productHandler.GenerateDescription)
		}
	}

	// INVESTMENTS
	investments := r.Group("/investments")
	{
		investments.POST("", investmentHandler.Invest)
		investments.GET("", investmentHandler.List)
		investments.GET("/:id/statement", investmentHandler.Statement)
	}

	r.GET("/portfolio/insights", portfolioHandler.Insights)
	r.GET("/transaction-logs", logsHandler.List)

	// ADMIN
	adm := r.Group("/admin", middleware.RequireAdmin())
	{
		adm.GET("/platform-stats", adminHandler.PlatformStats)
	}

	return r
}
