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

	"topline/internal/curator/config"
	delivery "topline/internal/curator/delivery/http"
	_ "topline/internal/curator/docs"
	"topline/internal/curator/repository"
	"topline/internal/curator/service"
	"topline/pkg/logger"
	"topline/pkg/postgres"
	"topline/pkg/redis"
	"topline/pkg/telegram"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the curator service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Curator Service", logger.StringField("name", cfg.App.Name))

	// Initialize database
	postgresCfg := postgres.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		DBName:          cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	}
	db, err := postgres.NewDB(postgresCfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize database", logger.ErrorField(err))
	}
	if sqlDB, err := db.DB.DB(); err == nil {
		defer sqlDB.Close()
	}

	// Initialize Redis (optional list cache)
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient, err = redis.NewClient(redis.Config{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Redis", logger.ErrorField(err))
		}
		defer redisClient.Close()
	}

	// Initialize repositories
	articleRepo := repository.NewArticleRepository(db.DB)
	metricRepo := repository.NewMetricRepository(db.DB)
	runRepo := repository.NewIngestionRunRepository(db.DB)
	feedRepo := repository.NewFeedRepository(appLogger, cfg.Ingest.FetchTimeout)
	scraperRepo := repository.NewScraperRepository(appLogger)

	// Initialize AI provider; insights degrade to fallback content when no
	// provider is configured.
	var aiRepo repository.AIRepository
	switch cfg.AI.Provider {
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		aiRepo, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	case "":
		appLogger.Warn("No AI provider configured, insights will use fallback content")
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize Telegram notifier (optional)
	var notifier telegram.Notifier
	if cfg.Telegram.BotToken != "" {
		notifier, err = telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
	}

	// Initialize services
	guard := service.NewDuplicateGuard(articleRepo, appLogger, cfg.Ingest.TitleWindowDays)
	insightSvc := service.NewInsightService(aiRepo, appLogger)
	ingestSvc := service.NewIngestionService(cfg, appLogger, feedRepo, scraperRepo, articleRepo, runRepo, guard, insightSvc, notifier)
	var articleSvc service.ArticleService
	if redisClient != nil {
		articleSvc = service.NewArticleService(cfg, appLogger, articleRepo, redisClient.Client)
	} else {
		articleSvc = service.NewArticleService(cfg, appLogger, articleRepo, nil)
	}
	metricSvc := service.NewMetricService(cfg, appLogger, metricRepo)

	// Start in-process scheduler
	schedulerSvc := service.NewSchedulerService(cfg, appLogger, ingestSvc, metricSvc, articleSvc)
	if err := schedulerSvc.Start(ctx); err != nil {
		appLogger.Fatal("Failed to start scheduler", logger.ErrorField(err))
	}
	defer schedulerSvc.Stop()

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	ingestHandler := delivery.NewIngestHandler(ingestSvc, appLogger)
	ingestHandler.RegisterRoutes(e)

	articleHandler := delivery.NewArticleHandler(articleSvc, appLogger)
	articleHandler.RegisterRoutes(e.Group("/articles"))

	metricHandler := delivery.NewMetricHandler(metricSvc, appLogger)
	metricHandler.RegisterRoutes(e.Group("/metrics"))

	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("Failed to start server", logger.ErrorField(err))
		}
	}()

	appLogger.Info("Curator service started", logger.IntField("port", cfg.API.Port))

	<-ctx.Done()

	appLogger.Info("Shutting down curator service...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Failed to shut down server gracefully", logger.ErrorField(err))
	}
	appLogger.Info("Curator service stopped.")
}

func main() {
	rootCmd := &cobra.Command{Use: "curator-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing curator-service CLI: %s\n", err)
		os.Exit(1)
	}
}
