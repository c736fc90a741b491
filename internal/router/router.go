package router

import (
	"log"

	"github.com/capasdev/redsocial/internal/clients"
	"github.com/capasdev/redsocial/internal/handlers"
	"github.com/capasdev/redsocial/internal/middleware"
	"github.com/capasdev/redsocial/internal/models"
	"github.com/capasdev/redsocial/internal/repositories"
	"github.com/capasdev/redsocial/internal/timeline"
	"github.com/capasdev/redsocial/pkg/config"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupUsuariosRoutes wires the Usuarios service: accounts + authentication.
func SetupUsuariosRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB) {
	if err := pgdb.AutoMigrate(&models.Usuario{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for usuarios.")

	e.GET("/health", handlers.HealthCheck("usuarios"))

	userRepo := repositories.NewPostgresUserRepository(pgdb)

	base := e.Group("/redesSocial/usuarios")

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterPublicRoutes(base)

	protected := base.Group("", middleware.JWTAuth(cfg.JWTSecret))
	authHandler.RegisterSessionRoutes(protected)

	userHandler := handlers.NewUserHandler(userRepo)
	userHandler.RegisterUserRoutes(protected)
	log.Println("Usuarios routes configured.")
}

// SetupMensajesRoutes wires the Mensajes service: posts. Callers are
// verified by forwarding their token to Usuarios, so no local JWT
// middleware is installed.
func SetupMensajesRoutes(e *echo.Echo, cfg *config.Config, mgClient *mongo.Client) {
	e.GET("/health", handlers.HealthCheck("mensajes"))

	mensajeRepo := repositories.NewMongoMensajeRepository(mgClient.Database(cfg.MongoDatabase))
	usersClient := clients.NewHTTPUsersClient(cfg.UsuariosAPIURL, cfg.HTTPClientTimeout)

	messageHandler := handlers.NewMessageHandler(mensajeRepo, usersClient)
	base := e.Group("/redesSocial/mensajes")
	messageHandler.RegisterMensajeRoutes(base)
	log.Println("Mensajes routes configured.")
}

// SetupRelacionesRoutes wires the Relaciones service: follow edges plus
// the timeline composer fanning out to Mensajes.
func SetupRelacionesRoutes(e *echo.Echo, cfg *config.Config, pgdb *gorm.DB) {
	if err := pgdb.AutoMigrate(&models.Follow{}); err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for follows.")

	e.GET("/health", handlers.HealthCheck("relaciones"))

	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	usersClient := clients.NewHTTPUsersClient(cfg.UsuariosAPIURL, cfg.HTTPClientTimeout)
	messagesClient := clients.NewHTTPMessagesClient(cfg.MensajesAPIURL, cfg.HTTPClientTimeout)
	composer := timeline.NewComposer(usersClient, messagesClient, followRepo, cfg.HTTPClientTimeout)

	followHandler := handlers.NewFollowHandler(followRepo, usersClient, composer)
	base := e.Group("/redesSocial/follows")
	followHandler.RegisterFollowRoutes(base)
	log.Println("Relaciones routes configured.")
}
