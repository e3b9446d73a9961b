// @title           ProdSync API
// @version         1.0
// @description     Production-management backend connecting event producers to suppliers through projects, assets and quotes.

// @host      localhost:9000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "backend/docs"
	"backend/handlers"
	"backend/services"
	"backend/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func CORSConfig() cors.Config {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://localhost:9000",
	}
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = append(corsConfig.AllowOrigins, origin)
	}
	corsConfig.AllowCredentials = true
	corsConfig.AddAllowHeaders("Authorization")
	return corsConfig
}

func main() {
	db := storage.InitDB()
	defer db.Close()
	gormDB := storage.InitGormDB()

	emailService := services.NewEmailService(db)

	briefService, err := services.NewBriefService()
	if err != nil {
		log.Printf("Brief decomposition disabled: %v", err)
	}

	quoteStore := storage.NewQuoteStore(db)

	// Daily session cleanup.
	c := cron.New()
	if _, err := c.AddFunc("30 3 * * *", func() {
		if err := storage.CleanupExpiredSessions(storage.GetDB()); err != nil {
			log.Printf("Session cleanup failed: %v", err)
		}
	}); err != nil {
		log.Printf("Failed to schedule session cleanup: %v", err)
	}
	c.Start()
	defer c.Stop()

	r := gin.Default()
	r.Use(cors.New(CORSConfig()))

	// Auth
	r.POST("/api/login", handlers.LoginHandler(db))
	r.POST("/api/refresh-token", handlers.RefreshTokenHandler(db))
	r.POST("/api/validate-session", handlers.ValidateSession(db))
	r.POST("/api/logout", handlers.LogoutHandler(db))

	// Users
	r.POST("/api/create_user", handlers.CreateUser(db))
	r.GET("/api/user_fetch/:id", handlers.GetUser(db))

	// Projects
	r.POST("/api/project_create", handlers.CreateProject(db))
	r.GET("/api/projects", handlers.FetchAllProjects(db))
	r.GET("/api/project_fetch/:id", handlers.FetchProject(db))

	// Assets
	r.POST("/api/asset_create", handlers.CreateAsset(db))
	r.GET("/api/assets/:project_id", handlers.GetAssetsByProject(db))
	r.GET("/api/asset_fetch/:id", handlers.GetAsset(db))
	r.GET("/api/asset_qr/:asset_id", handlers.GenerateAssetQRCode(db))

	// Suppliers
	r.POST("/api/supplier_create", handlers.CreateSupplier(gormDB))
	r.PUT("/api/supplier_update/:id", handlers.UpdateSupplier(gormDB))
	r.GET("/api/suppliers", handlers.GetAllSuppliers(gormDB))
	r.GET("/api/supplier_fetch/:id", handlers.GetSupplier(gormDB))

	// Quotes
	r.POST("/api/quote_create", handlers.CreateQuote(db, emailService))
	r.GET("/api/quotes/:asset_id", handlers.GetQuotesByAsset(db))
	r.PUT("/api/quote_status/:id", handlers.UpdateQuoteStatus(db, emailService))

	// Comparison
	r.GET("/api/compare/:asset_id", handlers.GetQuoteComparison(quoteStore))
	r.GET("/api/compare/:asset_id/summary", handlers.GetQuoteSummary(quoteStore))

	// Dashboard
	r.GET("/api/dashboard/:project_id", handlers.GetProjectDashboard(db))

	// Exports
	r.GET("/api/export_comparison/:asset_id", handlers.ExportComparisonXLSX(quoteStore))
	r.GET("/api/comparison_pdf/:asset_id", handlers.ExportComparisonPDF(quoteStore))

	// Briefs
	r.POST("/api/brief_decompose", handlers.DecomposeBrief(briefService))

	// Activity logs
	r.GET("/api/activity_logs/:project_id", handlers.GetActivityLogs(gormDB))

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	port := os.Getenv("PORT")
	if port == "" {
		port = "9000"
	}
	portInt, err := strconv.Atoi(port)
	if err != nil || portInt < 0 || portInt > 65535 {
		log.Fatalf("Invalid PORT environment variable: %s", port)
	}

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exiting")
}
