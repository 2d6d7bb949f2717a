package database

import (
	"context"

	"github.com/yeabsiraa/ragbot-be/types"
)

// VectorStore defines the vector index operations the backend needs.
// Knowledge bases are partitions of one shared index, selected by a
// kbId filter at query time.
type VectorStore interface {
	// BatchInsertChunks stamps every chunk with the knowledge base id
	// and inserts them in batches.
	BatchInsertChunks(ctx context.Context, kbID string, chunks []types.DocumentChunk) error

	// SearchSimilar returns the chunks nearest to query within one
	// knowledge base.
	SearchSimilar(ctx context.Context, query, kbID string, limit int) ([]types.DocumentChunk, error)

	// DeleteKnowledgeBase removes every chunk belonging to a knowledge
	// base, so re-ingesting replaces instead of duplicating.
	DeleteKnowledgeBase(ctx context.Context, kbID string) error
}
