package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
	_ "time/tzdata"

	"finalproject_backend/internal/api"
	"finalproject_backend/internal/middleware"
	"finalproject_backend/internal/repository"
	"finalproject_backend/internal/service"
	"finalproject_backend/pkg/auth"
	"finalproject_backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	err = logger.Initialize(cfg.LogLevel, cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	zapLogger := logger.Logger()

	catalog, err := service.NewQuestCatalog(cfg.Quest.Definitions())
	if err != nil {
		zapLogger.Fatal("Failed to load quest catalog", zap.Error(err))
	}

	location, err := cfg.Quest.Location()
	if err != nil {
		zapLogger.Fatal("Failed to load quest timezone", zap.Error(err))
	}

	repo, err := repository.New(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize repository", zap.Error(err))
	}
	defer repo.Close()

	if cfg.Database.Migrate {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = repo.Migrate(ctx)
		cancel()
		if err != nil {
			zapLogger.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	var notifier service.RewardNotifier
	if cfg.Notifier.Enabled {
		n, err := service.NewTelegramRewardNotifier(service.NotifierConfig{
			Enabled:  true,
			BotToken: cfg.TelegramAuth.TelegramBotToken,
			Debug:    cfg.TelegramAuth.DebugMode,
		})
		if err != nil {
			zapLogger.Fatal("Failed to initialize reward notifier", zap.Error(err))
		}
		notifier = n
	}

	memberService := service.NewMemberService(repo)
	questService := service.NewQuestService(repo, catalog, notifier)
	reviewService := service.NewReviewService(repo)

	telegramAuth := auth.NewTelegramAuth(cfg.TelegramAuth.TelegramBotToken, cfg.TelegramAuth.DebugMode)
	if cfg.TelegramAuth.DebugMode {
		zapLogger.Warn("Telegram init data validation is disabled")
	}
	authz := middleware.NewAuthorization(memberService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID(), middleware.RequestLogger())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{
		http.MethodHead,
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
	}
	config.AllowHeaders = []string{"*"}
	config.ExposeHeaders = []string{middleware.RequestIDHeader}
	config.MaxAge = 12 * time.Hour

	router.Use(cors.New(config))

	a := router.Group("/api/v1")
	api.NewMemberRoutes(a, memberService, telegramAuth)
	clock := api.DayClock{Location: location}
	api.NewQuestRoutes(a, questService, telegramAuth, authz, clock)
	api.NewReviewRoutes(a, reviewService, questService, telegramAuth, authz, clock)

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	zapLogger.Info("Starting server",
		zap.String("addr", addr),
		zap.Int("quests", len(catalog.List())),
		zap.String("quest_timezone", location.String()))
	if err := router.Run(addr); err != nil {
		zapLogger.Fatal("Failed to start server", zap.Error(err))
	}
}
