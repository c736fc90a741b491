package main

import (
	"log"

	"github.com/capasdev/redsocial/internal/router"
	"github.com/capasdev/redsocial/pkg/config"
	"github.com/capasdev/redsocial/validators"
	"github.com/labstack/echo/v4"
)

func main() {
	// Load configuration
	config.LoadEnv()
	cfg := config.Load("3310")

	// Initialize database connection
	db, err := config.InitPostgres(cfg.PostgresConnStr)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer config.ClosePostgres(db)

	// Create Echo instance
	e := echo.New()

	// Setup global middleware
	router.SetupMiddleware(e)

	// Setup routes and dependencies
	router.SetupUsuariosRoutes(e, cfg, db)

	// Validator
	e.Validator = validators.NewValidator()

	// Start server
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
