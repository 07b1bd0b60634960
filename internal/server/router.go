// Package server assembles the HTTP router from services and handlers.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/Omkar-DesDev/Expense-Tracker/internal/docs" // Import swagger docs
	"github.com/Omkar-DesDev/Expense-Tracker/internal/handlers"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/middleware"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/services"
)

// Options tunes router behaviour that differs between deployments.
type Options struct {
	CORSOrigin    string
	EnableSwagger bool
}

// NewRouter wires every service and handler over db and returns the router.
func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	// Initialize services
	userService := services.NewUserService(db)
	expenseService := services.NewExpenseService(db)
	analyticsService := services.NewAnalyticsService(db)
	exportService := services.NewExportService(db, expenseService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService)
	expenseHandler := handlers.NewExpenseHandler(expenseService)
	dashboardHandler := handlers.NewDashboardHandler(expenseService, analyticsService)
	exportHandler := handlers.NewExportHandler(exportService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	if opts.CORSOrigin != "" {
		router.Use(middleware.CORS(opts.CORSOrigin))
	}

	if opts.EnableSwagger {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.RefreshToken)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/profile", authHandler.GetProfile)
	protected.GET("/categories", expenseHandler.ListCategories)
	protected.GET("/dashboard", dashboardHandler.GetDashboard)
	protected.GET("/export", exportHandler.Export)

	expenses := protected.Group("/expenses")
	expenses.GET("", expenseHandler.RedirectToDashboard)
	expenses.POST("", expenseHandler.CreateExpense)
	expenses.GET("/:id", expenseHandler.GetExpense)
	expenses.PUT("/:id", expenseHandler.UpdateExpense)
	expenses.DELETE("/:id", expenseHandler.DeleteExpense)

	return router
}
