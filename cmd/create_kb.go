/*
Copyright © 2025 yeabsiraa
*/
package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"github.com/yeabsiraa/ragbot-be/config"
	"github.com/yeabsiraa/ragbot-be/database"
	"github.com/yeabsiraa/ragbot-be/repository"
	"github.com/yeabsiraa/ragbot-be/service"
	"github.com/yeabsiraa/ragbot-be/types"
)

// createKbCmd ingests sources into a knowledge base without going
// through the HTTP API, for bulk or scripted setups.
var createKbCmd = &cobra.Command{
	Use:   "create-kb",
	Short: "Ingest sources into a knowledge base from the command line",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		userID, _ := cmd.Flags().GetString("user")
		botID, _ := cmd.Flags().GetString("bot")
		kbID, _ := cmd.Flags().GetString("kb")
		botName, _ := cmd.Flags().GetString("name")
		webURLs, _ := cmd.Flags().GetStringArray("web")
		pdfs, _ := cmd.Flags().GetStringArray("pdf")
		csvs, _ := cmd.Flags().GetStringArray("csv")
		txts, _ := cmd.Flags().GetStringArray("txt")
		jsons, _ := cmd.Flags().GetStringArray("json")
		promptTemplate, _ := cmd.Flags().GetString("prompt-template")
		reinit, _ := cmd.Flags().GetBool("reinit")

		weaviateDb, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
		if err != nil {
			log.Fatalf("Failed to connect to Weaviate database: %v", err)
		}
		if reinit {
			if err := weaviateDb.ReInit(); err != nil {
				log.Fatalf("Failed to reinitialize Weaviate database: %v", err)
			}
		}

		redisClient, err := database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		stateRepo := repository.NewBotStateRepo(redisClient)

		ingestService := service.NewIngestService(weaviateDb, stateRepo, nil, types.LoaderConfig{
			ChunkSize:    cfg.ChunkSize,
			ChunkOverlap: cfg.ChunkOverlap,
			CacheDir:     cfg.CacheDir,
		})

		ts, err := ingestService.CreateBot(context.Background(), &types.CreateBotRequest{
			UserID:         userID,
			BotID:          botID,
			KbID:           kbID,
			BotName:        botName,
			WebURL:         webURLs,
			PDF:            pdfs,
			CSV:            csvs,
			TXT:            txts,
			JSON:           jsons,
			PromptTemplate: promptTemplate,
		})
		if err != nil {
			log.Fatalf("Ingestion failed: %v", err)
		}
		log.Printf("Knowledge base %s refreshed at %d", kbID, ts.Unix())
	},
}

func init() {
	rootCmd.AddCommand(createKbCmd)

	createKbCmd.Flags().String("user", "", "user id owning the bot")
	createKbCmd.Flags().String("bot", "", "bot id")
	createKbCmd.Flags().String("kb", "", "knowledge base id")
	createKbCmd.Flags().String("name", "", "bot display name")
	createKbCmd.Flags().StringArray("web", nil, "web page URLs to ingest")
	createKbCmd.Flags().StringArray("pdf", nil, "PDF paths or URLs to ingest")
	createKbCmd.Flags().StringArray("csv", nil, "CSV paths or URLs to ingest")
	createKbCmd.Flags().StringArray("txt", nil, "text file paths to ingest")
	createKbCmd.Flags().StringArray("json", nil, "JSON file paths to ingest")
	createKbCmd.Flags().String("prompt-template", "", "system prompt override for the bot")
	createKbCmd.Flags().Bool("reinit", false, "drop and recreate the vector schema first")

	createKbCmd.MarkFlagRequired("user")
	createKbCmd.MarkFlagRequired("bot")
	createKbCmd.MarkFlagRequired("kb")
}
