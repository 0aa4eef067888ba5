package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/healthassist/healthassist-go/internal/client"
	"github.com/healthassist/healthassist-go/internal/config"
	"github.com/healthassist/healthassist-go/internal/handler"
	"github.com/healthassist/healthassist-go/internal/middleware"
	"github.com/healthassist/healthassist-go/internal/rag"
	"github.com/healthassist/healthassist-go/internal/service"
	"github.com/healthassist/healthassist-go/internal/store"
	"github.com/healthassist/healthassist-go/pkg/logger"
	"github.com/healthassist/healthassist-go/pkg/redis"
	"go.uber.org/zap"
)

const (
	reminderInterval = time.Minute
	reminderWindow   = time.Hour
)

func main() {
	cfg, err := config.LoadConfig("configs/server.yaml")
	if err != nil {
		log.Fatalf("loading config failed: %v", err)
	}

	zapLogger, err := logger.NewLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("initializing logger failed: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("healthassist server starting...")

	sqliteStore, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		zapLogger.Fatal("opening database failed", zap.Error(err))
	}
	defer sqliteStore.Close()

	redisClient, err := redis.NewRedisClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("connecting to redis failed", zap.Error(err))
	}

	llmClient := client.NewGroqClient(
		cfg.Provider.BaseURL,
		cfg.Provider.APIKey,
		cfg.Provider.Model,
		time.Duration(cfg.Provider.TimeoutSeconds)*time.Second,
		zapLogger,
	)

	documentStore := rag.NewDefaultStore()

	classifier, err := service.NewClassifierService(cfg.Chat.ClassifierPolicy, llmClient, zapLogger)
	if err != nil {
		zapLogger.Fatal("creating classifier failed", zap.Error(err))
	}
	selector := service.NewSelectorService(llmClient, documentStore, zapLogger)
	composer := service.NewComposerService(llmClient, zapLogger)
	chatService := service.NewChatService(classifier, selector, composer, redisClient, zapLogger)

	sessionTTL := time.Duration(cfg.Auth.SessionTTLHours) * time.Hour
	authService := service.NewAuthService(sqliteStore, redisClient, sessionTTL, zapLogger)
	appointmentService := service.NewAppointmentService(sqliteStore, zapLogger)

	sessionService := service.NewSessionService(zapLogger)
	reminderService := service.NewReminderService(sqliteStore, sessionService, reminderInterval, reminderWindow, zapLogger)
	reminderService.Start()

	authHandler := handler.NewAuthHandler(authService, zapLogger)
	chatHandler := handler.NewChatHandler(chatService, zapLogger)
	appointmentHandler := handler.NewAppointmentHandler(appointmentService, zapLogger)
	wsHandler := handler.NewWebSocketHandler(sessionService, authService, zapLogger)

	r := gin.Default()
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Healthcare AI Backend is running successfully."})
	})
	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":       "UP",
			"service":      cfg.Server.Name,
			"online_users": sessionService.GetOnlineCount(),
			"documents":    documentStore.Count(),
		})
	})

	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/ws", wsHandler.HandleWebSocket)

	authorized := r.Group("/", middleware.Auth(authService, zapLogger))
	authorized.POST("/chat", chatHandler.Chat)
	authorized.POST("/appointments", appointmentHandler.Create)
	authorized.GET("/appointments", appointmentHandler.List)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("healthassist server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("classifierPolicy", cfg.Chat.ClassifierPolicy),
		zap.String("model", cfg.Provider.Model))

	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("server failed", zap.Error(err))
	}
}
