package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"gripinvest/internal/config"
	"gripinvest/internal/database"
	"gripinvest/internal/genai"
	"gripinvest/internal/handlers"
	"gripinvest/internal/metrics"
	"gripinvest/internal/middleware"
	"gripinvest/internal/pdf"
	"gripinvest/internal/repositories"
	"gripinvest/internal/routes"
	"gripinvest/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	_ "gripinvest/docs"
)

func Run() {
	cfg := config.LoadConfig()

	// === DB ===
	db, err := database.Open(cfg.Database.DSN, 10, 3*time.Second)
	if err != nil {
		log.Fatal("[app] database connect: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("[app] database close: %v", err)
		}
	}()

	if err := database.RunMigrations(cfg.Database.DSN); err != nil {
		log.Fatal("[app] migrations: ", err)
	}

	// === Redis (optional: limiter degrades to pass-through without it) ===
	var rdb *redis.Client
	if cfg.RateLimit.Enabled {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("[app] redis unavailable, rate limiting disabled: %v", err)
			rdb = nil
		}
		cancel()
	}

	// === Metrics ===
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// === AI (optional; every consumer has a fixed fallback) ===
	var ai genai.TextGenerator
	if cfg.Gemini.APIKey != "" {
		ai = &instrumentedGenerator{
			inner:   genai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout),
			metrics: collector,
		}
	} else {
		log.Println("[app] GEMINI_API_KEY not set, AI features run on fallbacks")
	}

	// === Repos ===
	userRepo := repositories.NewUserRepository(db)
	resetRepo := repositories.NewPasswordResetRepository(db)
	productRepo := repositories.NewProductRepository(db)
	investmentRepo := repositories.NewInvestmentRepository(db)
	logRepo := repositories.NewTransactionLogRepository(db)

	// === Services ===
	authService := services.NewAuthService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)

	userService := services.NewUserService(userRepo, authService, emailService)
	resetService := services.NewPasswordResetService(userRepo, resetRepo, emailService, authService, cfg.Server.ClientURL)
	productService := services.NewProductService(productRepo, ai)
	investmentService := services.NewInvestmentService(investmentRepo, userRepo, productRepo)
	portfolioService := services.NewPortfolioService(investmentRepo, ai)
	logsService := services.NewLogsService(logRepo, ai)
	statsService := services.NewStatsService(userRepo, productRepo, investmentRepo)
	alertService := services.NewAlertService(cfg.Telegram.BotToken, cfg.Telegram.AdminChatID)

	statementGen := pdf.NewStatementGenerator()

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userService, resetService)
	utilsHandler := handlers.NewUtilsHandler()
	productHandler := handlers.NewProductHandler(productService, userService)
	investmentHandler := handlers.NewInvestmentHandler(investmentService, userService, statementGen)
	portfolioHandler := handlers.NewPortfolioHandler(portfolioService)
	logsHandler := handlers.NewLogsHandler(logsService)
	profileHandler := handlers.NewProfileHandler(userService)
	adminHandler := handlers.NewAdminHandler(statsService)
	healthHandler := handlers.NewHealthHandler(db)

	// === Gin ===
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(middleware.Metrics(collector))

	router.GET("/metrics", gin.WrapH(metrics.Handler(registry)))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(
		router,
		middleware.RateLimit(cfg.RateLimit, rdb),
		authService,
		logsService,
		alertService,
		authHandler,
		utilsHandler,
		productHandler,
		investmentHandler,
		portfolioHandler,
		logsHandler,
		profileHandler,
		adminHandler,
		healthHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("[app] listening on %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("[app] server: ", err)
	}
}

// instrumentedGenerator counts failed generations so the fallback rate
// shows up on /metrics.
type instrumentedGenerator struct {
	inner   genai.TextGenerator
	metrics *metrics.Collector
}

func (g *instrumentedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	out, err := g.inner.Generate(ctx, prompt)
	if err != nil {
		g.metrics.RecordAIFallback()
	}
	return out, err
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
