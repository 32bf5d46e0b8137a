package router

import (
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/muntanyers/backend/internal/handlers"
	"github.com/muntanyers/backend/internal/middleware"
	"github.com/muntanyers/backend/internal/models"
	"github.com/muntanyers/backend/internal/repositories"
	"github.com/muntanyers/backend/internal/storage"
	"github.com/muntanyers/backend/pkg/config"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, db *gorm.DB, cfg *config.Config, logger *zap.Logger) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
		&models.Follow{},
		&models.Notification{},
	)
	if err != nil {
		return err
	}
	logger.Info("Auto-migrations completed for all models")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// Static pages and uploaded avatars
	e.Static("/", "public")

	// --- Initialize Repositories ---
	userRepo := repositories.NewUserRepository(db)
	postRepo := repositories.NewPostRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	likeRepo := repositories.NewLikeRepository(db)
	followRepo := repositories.NewFollowRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	avatarStore, err := storage.NewAvatarStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	// --- Unprotected routes for authentication ---
	authGroup := e.Group("/api")
	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	logger.Info("Auth routes configured")

	// --- Protected routes (require a session) ---
	api := e.Group("/api")
	api.Use(middleware.SessionAuthMiddleware(cfg.JWTSecret))

	userHandler := handlers.NewUserHandler(userRepo, avatarStore, logger)
	userHandler.RegisterUserRoutes(api)

	postHandler := handlers.NewPostHandler(postRepo)
	postHandler.RegisterPostRoutes(api)

	followHandler := handlers.NewFollowHandler(followRepo)
	followHandler.RegisterFollowRoutes(api)

	commentHandler := handlers.NewCommentHandler(commentRepo)
	commentHandler.RegisterCommentRoutes(api)

	likeHandler := handlers.NewLikeHandler(likeRepo)
	likeHandler.RegisterLikeRoutes(api)

	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	notificationHandler.RegisterNotificationRoutes(api)

	logger.Info("All routes configured")
	return nil
}
