package main

import (
	"fmt"
	"os"

	"github.com/Omkar-DesDev/Expense-Tracker/internal/config"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/database"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/logger"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/server"
	"github.com/Omkar-DesDev/Expense-Tracker/internal/validator"
)

// @title           Expense Tracker API
// @version         1.0
// @description     Personal expense tracker: record expenses, filter and sort them, view totals, and export CSV, XLSX or PDF.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConfig, err := database.NewConfig(appConfig)
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}
	defer func() {
		if err := dbManager.Close(); err != nil {
			log.Warnf("database close error: %v", err)
		}
	}()

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	validator.Register()

	router := server.NewRouter(dbManager.DB(), server.Options{
		CORSOrigin:    appConfig.CORSOrigin,
		EnableSwagger: appConfig.Env != "production",
	})

	log.Infof("Starting expense tracker on port %s (%s store)", appConfig.Port, dbConfig.Driver)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
