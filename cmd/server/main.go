package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/connecthq/connect/internal/client"
	"github.com/connecthq/connect/internal/config"
	"github.com/connecthq/connect/internal/handler"
	"github.com/connecthq/connect/internal/kafka"
	"github.com/connecthq/connect/internal/middleware"
	"github.com/connecthq/connect/internal/repository"
	"github.com/connecthq/connect/internal/service"
	"github.com/connecthq/connect/internal/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set up logger
	logger, err := createLogger(cfg.Logging.Level)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	// Register custom binding rules before any request is handled
	validator.RegisterBindings()

	// Connect to database
	db, err := connectToDB(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis client (if enabled)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.URL,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logger.Warn("Failed to connect to Redis, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			logger.Info("Connected to Redis", zap.String("address", cfg.Redis.URL))
		}
	}

	// Initialize Kafka producer (if enabled)
	var producer *kafka.Producer
	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) > 0 {
		producer = kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.ClientID, logger)
		logger.Info("Initialized Kafka producer", zap.Strings("brokers", cfg.Kafka.Brokers))
	}
	eventTopic := cfg.Kafka.Topics["events"]

	// Create repositories
	userRepo := repository.NewUserRepository(db, logger)
	profileRepo := repository.NewProfileRepository(db, logger)
	requestRepo := repository.NewRequestRepository(db, logger)
	memberRepo := repository.NewMemberRepository(db, logger)
	convRepo := repository.NewConversationRepository(db, logger)
	notifRepo := repository.NewNotificationRepository(db, logger)
	tagRepo := repository.NewTagRepository(db, logger)
	schoolRepo := repository.NewSchoolRepository(db, logger)

	// Create clients
	mediaClient := client.NewMediaClient(cfg.Media.URL, cfg.Media.ServiceKey, logger)

	// Create services
	authService := service.NewAuthService(userRepo, profileRepo, cfg, logger)
	userService := service.NewUserService(userRepo, logger)
	profileService := service.NewProfileService(profileRepo, memberRepo, mediaClient, logger)
	requestService := service.NewRequestService(requestRepo, profileRepo, memberRepo, tagRepo, logger)
	notifService := service.NewNotificationService(notifRepo, logger)
	memberService := service.NewMemberService(memberRepo, requestRepo, profileRepo, notifService, producer, eventTopic, logger)
	messageService := service.NewMessageService(convRepo, profileRepo, notifService, producer, eventTopic, logger)
	tagService := service.NewTagService(tagRepo, redisClient, cfg.Redis.CacheDuration, logger)
	schoolService := service.NewSchoolService(schoolRepo, logger)

	// Create HTTP server
	router := setupRouter(
		cfg,
		redisClient,
		authService,
		userService,
		profileService,
		requestService,
		memberService,
		messageService,
		notifService,
		tagService,
		schoolService,
		logger,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if producer != nil {
		producer.Close()
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}

func createLogger(level string) (*zap.Logger, error) {
	var zapLevel zap.AtomicLevel
	switch level {
	case "debug":
		zapLevel = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapLevel = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapLevel = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		zapLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
	}

	config := zap.Config{
		Level:            zapLevel,
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}

func connectToDB(dbConfig config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbConfig.Host,
		dbConfig.Port,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.DBName,
		dbConfig.SSLMode,
	)

	db, err := sqlx.Connect("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	db.SetConnMaxLifetime(dbConfig.ConnMaxLifetime)

	return db, nil
}

func setupRouter(
	cfg *config.Config,
	redisClient *redis.Client,
	authService *service.AuthService,
	userService *service.UserService,
	profileService *service.ProfileService,
	requestService *service.RequestService,
	memberService *service.MemberService,
	messageService *service.MessageService,
	notifService *service.NotificationService,
	tagService *service.TagService,
	schoolService *service.SchoolService,
	logger *zap.Logger,
) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	v1 := router.Group("/api/v1")
	{
		// ==================== AUTH ROUTES ====================
		auth := v1.Group("/auth")
		{
			authHandler := handler.NewAuthHandler(authService, logger)

			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh-token", authHandler.RefreshToken)

			authProtected := auth.Group("")
			authProtected.Use(middleware.AuthMiddleware(authService, logger))
			authProtected.POST("/logout", authHandler.Logout)
		}

		// ==================== USER ROUTES ====================
		users := v1.Group("/users")
		{
			userHandler := handler.NewUserHandler(userService, logger)
			profileHandler := handler.NewProfileHandler(profileService, logger)
			requestHandler := handler.NewRequestHandler(requestService, logger)
			notifHandler := handler.NewNotificationHandler(notifService, logger)

			me := users.Group("/me")
			me.Use(middleware.AuthMiddleware(authService, logger))
			{
				me.GET("", userHandler.GetMe)
				me.PUT("", userHandler.UpdateMe)
				me.DELETE("", userHandler.DeactivateMe)
				me.PUT("/password", userHandler.ChangePassword)

				me.GET("/profile", profileHandler.GetMyProfile)
				me.PUT("/profile", profileHandler.UpdateMyProfile)
				me.POST("/profile/photo", profileHandler.UploadPhoto)
				me.DELETE("/profile/photo", profileHandler.DeletePhoto)

				me.GET("/requests", requestHandler.ListMine)

				me.GET("/notifications", notifHandler.List)
				me.GET("/notifications/count", notifHandler.CountUnread)
				me.PUT("/notifications/read", notifHandler.MarkAllRead)
				me.PUT("/notifications/:notificationID/read", notifHandler.MarkRead)
			}
		}

		// ==================== PUBLIC PROFILE ROUTES ====================
		profiles := v1.Group("/profiles")
		profiles.Use(middleware.OptionalAuthMiddleware(authService, logger))
		{
			profileHandler := handler.NewProfileHandler(profileService, logger)
			requestHandler := handler.NewRequestHandler(requestService, logger)

			// Contact visibility reacts to an optional token
			profiles.GET("/:id", profileHandler.GetProfile)
			profiles.GET("/:id/requests", requestHandler.ListByUser)
		}

		// ==================== REQUEST ROUTES ====================
		requests := v1.Group("/requests")
		{
			requestHandler := handler.NewRequestHandler(requestService, logger)
			memberHandler := handler.NewMemberHandler(memberService, logger)

			// Browsing works without a token; a token personalizes the ranking
			requests.GET("", middleware.OptionalAuthMiddleware(authService, logger), requestHandler.Browse)
			requests.GET("/:id", middleware.OptionalAuthMiddleware(authService, logger), requestHandler.Get)

			requestsProtected := requests.Group("")
			requestsProtected.Use(middleware.AuthMiddleware(authService, logger))
			{
				requestsProtected.POST("", requestHandler.Create)
				requestsProtected.PUT("/:id", requestHandler.Update)
				requestsProtected.DELETE("/:id", requestHandler.Delete)

				requestsProtected.POST("/:id/members", memberHandler.RequestJoin)
				requestsProtected.GET("/:id/members", memberHandler.ListMembers)
				requestsProtected.PUT("/:id/members/:memberID", memberHandler.Decide)
			}
		}

		// ==================== CONVERSATION ROUTES ====================
		conversations := v1.Group("/conversations")
		conversations.Use(middleware.AuthMiddleware(authService, logger))
		{
			messageHandler := handler.NewMessageHandler(messageService, logger)

			conversations.POST("", messageHandler.StartConversation)
			conversations.GET("", messageHandler.ListConversations)
			conversations.POST("/:id/messages", messageHandler.SendMessage)
			conversations.GET("/:id/messages", messageHandler.ListMessages)
			conversations.PUT("/:id/read", messageHandler.MarkRead)
		}

		// ==================== CATALOG ROUTES ====================
		tagHandler := handler.NewTagHandler(tagService, logger)
		schoolHandler := handler.NewSchoolHandler(schoolService, logger)

		catalogCache := middleware.Cache(redisClient, middleware.CacheConfig{
			Duration: cfg.Redis.CacheDuration,
			Prefix:   "catalog",
		}, logger)

		tags := v1.Group("/tags")
		tags.Use(catalogCache)
		{
			tags.GET("", tagHandler.List)
			tags.GET("/popular", tagHandler.ListPopular)
		}

		schools := v1.Group("/schools")
		schools.Use(catalogCache)
		{
			schools.GET("", schoolHandler.Search)
		}

		// ==================== ADMIN ROUTES ====================
		admin := v1.Group("/admin")
		{
			admin.Use(middleware.AuthMiddleware(authService, logger))
			admin.Use(middleware.RequireRole(userService, "admin"))

			userHandler := handler.NewUserHandler(userService, logger)

			admin.GET("/users", userHandler.List)
			admin.POST("/tags", tagHandler.Create)
		}
	}

	return router
}
