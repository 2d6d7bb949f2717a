/*
Copyright © 2025 yeabsiraa
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yeabsiraa/ragbot-be/config"
	"github.com/yeabsiraa/ragbot-be/database"
	"github.com/yeabsiraa/ragbot-be/handler"
	"github.com/yeabsiraa/ragbot-be/repository"
	"github.com/yeabsiraa/ragbot-be/service"
	"github.com/yeabsiraa/ragbot-be/types"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the chatbot backend server",
	Long:  `Starts the HTTP server that serves /create-bot, /query and the websocket streaming endpoint.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}

		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		log.Println("Successfully connected to Redis.")

		stateRepo := repository.NewBotStateRepo(redisClient)

		var botRepo repository.BotRepo
		if cfg.MongoURI != "" {
			mongoClient, err := database.NewMongoClient(cfg.MongoURI)
			if err != nil {
				log.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			if err := mongoClient.Ping(context.Background(), nil); err != nil {
				log.Fatalf("Failed to connect to MongoDB: %v", err)
			}
			botRepo = repository.NewBotRepo(mongoClient.Database("ragbot").Collection("bots"))
		}

		aiService := newAIService(cfg)

		ingestService := service.NewIngestService(weaviateDb, stateRepo, botRepo, types.LoaderConfig{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			CacheDir:     cfg.CacheDir,
		})
		queryService := service.NewQueryService(weaviateDb, stateRepo, aiService, cfg.RetrievalLimit)
		wsService := service.NewWebSocketService(queryService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler(cfg.AllowedOrigin)
		botHandler := handler.NewBotHandler(ingestService, queryService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.GET("/health", handler.HandleHealth)
		router.POST("/create-bot", botHandler.HandleCreateBot)
		router.POST("/query", botHandler.HandleQuery)
		router.GET("/ws/query", gin.WrapF(wsService.HandleQuery))

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func newAIService(cfg *config.Config) service.AIService {
	switch cfg.AIProvider {
	case "openai":
		return service.NewOpenAIService(cfg.AIEndpoint, cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature)
	default:
		gemini, err := service.NewGeminiService(cfg.GeminiKeys(), cfg.Model, cfg.Temperature)
		if err != nil {
			log.Fatalf("Failed to create Gemini service: %v", err)
		}
		return gemini
	}
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
