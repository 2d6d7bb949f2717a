package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/yeabsiraa/ragbot-be/database"
	"github.com/yeabsiraa/ragbot-be/loader"
	"github.com/yeabsiraa/ragbot-be/repository"
	"github.com/yeabsiraa/ragbot-be/types"
)

// ErrNoDocuments is returned when every supplied source failed to
// produce chunks; the endpoint maps it to a 400.
var ErrNoDocuments = errors.New("no valid documents provided")

// IngestService fans the sources of a create-bot request through the
// per-format loaders and replaces the knowledge base content in the
// vector store. Individual source failures are logged and skipped, so a
// partial ingestion yields fewer documents instead of an error.
type IngestService struct {
	store database.VectorStore
	state repository.BotStateRepo
	bots  repository.BotRepo

	web  loader.Loader
	pdf  loader.Loader
	csv  loader.Loader
	json loader.Loader
	txt  loader.Loader
}

func NewIngestService(
	store database.VectorStore,
	state repository.BotStateRepo,
	bots repository.BotRepo,
	cfg types.LoaderConfig,
) *IngestService {
	return &IngestService{
		store: store,
		state: state,
		bots:  bots,
		web:   loader.NewWebLoader(cfg),
		pdf:   loader.NewPDFLoader(cfg),
		csv:   loader.NewCSVLoader(cfg, ','),
		json:  loader.NewJSONLoader(cfg),
		txt:   loader.NewTxtLoader(cfg),
	}
}

// CreateBot ingests all sources of the request into the knowledge base
// and records per-bot state. Returns the refresh timestamp.
func (s *IngestService) CreateBot(ctx context.Context, req *types.CreateBotRequest) (time.Time, error) {
	chunks := s.loadAll(ctx, req)
	if len(chunks) == 0 {
		return time.Time{}, ErrNoDocuments
	}

	// Re-ingesting replaces the kb instead of stacking duplicates.
	if err := s.store.DeleteKnowledgeBase(ctx, req.KbID); err != nil {
		log.Printf("Failed to clear kb %s before refresh: %v", req.KbID, err)
	}
	if err := s.store.BatchInsertChunks(ctx, req.KbID, chunks); err != nil {
		return time.Time{}, err
	}

	now := time.Now()
	if err := s.state.SetLastRefresh(ctx, req.UserID, req.BotID, req.KbID, now); err != nil {
		return time.Time{}, err
	}
	if req.PromptTemplate != "" {
		if err := s.state.SetPromptTemplate(ctx, req.UserID, req.BotID, req.PromptTemplate); err != nil {
			return time.Time{}, err
		}
	}

	if s.bots != nil {
		temperature := 0.7
		if req.Temperature != nil {
			temperature = *req.Temperature
		}
		profile := &types.BotProfile{
			UserID:       req.UserID,
			BotID:        req.BotID,
			BotName:      req.BotName,
			Theme:        req.Theme,
			ProfileImage: req.ProfileImage,
			Model:        req.Model,
			Temperature:  temperature,
		}
		if err := s.bots.UpsertBot(ctx, profile); err != nil {
			log.Printf("Failed to save bot profile %s/%s: %v", req.UserID, req.BotID, err)
		}
	}

	return now, nil
}

func (s *IngestService) loadAll(ctx context.Context, req *types.CreateBotRequest) []types.DocumentChunk {
	var chunks []types.DocumentChunk

	groups := []struct {
		loader  loader.Loader
		sources []string
	}{
		{s.web, req.WebURL},
		{s.pdf, req.PDF},
		{s.csv, req.CSV},
		{s.txt, req.TXT},
		{s.json, req.JSON},
	}
	for _, group := range groups {
		for _, source := range group.sources {
			loaded, err := group.loader.Load(ctx, source, true)
			if err != nil {
				log.Printf("Failed to load %s: %v", source, err)
				continue
			}
			chunks = append(chunks, loaded...)
		}
	}
	return chunks
}
