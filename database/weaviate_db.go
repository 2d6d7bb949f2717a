package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/weaviate/weaviate-go-client/v4/weaviate"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/auth"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/filters"
	"github.com/weaviate/weaviate-go-client/v4/weaviate/graphql"
	"github.com/weaviate/weaviate/entities/models"
	"github.com/yeabsiraa/ragbot-be/config"
	"github.com/yeabsiraa/ragbot-be/types"
)

const BATCH_SIZE = 200

var (
	CHUNK_CLASS        = "DocumentChunk"
	CHUNK_CLASS_OBJECT = &models.Class{
		Class: CHUNK_CLASS,
		Properties: []*models.Property{
			{Name: "content", DataType: []string{"text"}},
			{Name: "source", DataType: []string{"text"}},
			{Name: "sourceUrl", DataType: []string{"text"}},
			{Name: "kbId", DataType: []string{"text"}},
			{Name: "createdAt", DataType: []string{"int"}},
		},
		VectorIndexType: "hnsw",
	}
)

// WeaviateStore wraps the Weaviate vector index. Embedding is done
// server-side by the configured text2vec module, so chunks are inserted
// and queried as plain text.
type WeaviateStore struct {
	client *weaviate.Client
}

func NewWeaviateStore(config config.WeaviateStoreConfig) (*WeaviateStore, error) {
	var scheme string
	if strings.Contains(config.Host, "https") {
		scheme = "https"
	} else {
		scheme = "http"
	}
	host := strings.TrimPrefix(config.Host, scheme+"://")
	cfg := weaviate.Config{
		Host:   host,
		Scheme: scheme,
	}
	if config.APIKey != "" {
		cfg.AuthConfig = auth.ApiKey{
			Value: config.APIKey,
		}
		cfg.Headers = map[string]string{
			"X-Weaviate-Api-Key":     config.APIKey,
			"X-Weaviate-Cluster-Url": fmt.Sprintf("%s://%s", scheme, host),
		}
	}
	CHUNK_CLASS_OBJECT.Vectorizer = config.Text2Vec
	CHUNK_CLASS_OBJECT.ModuleConfig = config.ModuleConfig
	client, err := weaviate.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create weaviate client: %v", err)
	}

	schema, err := client.Schema().Getter().Do(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get schema: %v", err)
	}

	hasChunkClass := false
	for _, class := range schema.Classes {
		if class.Class == CHUNK_CLASS {
			hasChunkClass = true
			break
		}
	}
	// Create the chunk class if it doesn't exist
	if !hasChunkClass {
		err = client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to create DocumentChunk class: %v", err)
		}
	}
	return &WeaviateStore{
		client: client,
	}, nil
}

func (s *WeaviateStore) ReInit() error {
	err := s.client.Schema().ClassDeleter().WithClassName(CHUNK_CLASS).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to delete DocumentChunk class: %v", err)
	}

	err = s.client.Schema().ClassCreator().WithClass(CHUNK_CLASS_OBJECT).Do(context.Background())
	if err != nil {
		return fmt.Errorf("failed to create DocumentChunk class: %v", err)
	}
	return nil
}

func (s *WeaviateStore) BatchInsertChunks(ctx context.Context, kbID string, chunks []types.DocumentChunk) error {
	createdAt := time.Now().Unix()
	total := len(chunks)
	for i := 0; i < total; i += BATCH_SIZE {
		end := i + BATCH_SIZE
		if end > total {
			end = total
		}

		batcher := s.client.Batch().ObjectsBatcher()
		for j := i; j < end; j++ {
			batcher = batcher.WithObjects(&models.Object{
				Class: CHUNK_CLASS,
				Properties: map[string]interface{}{
					"content":   chunks[j].Content,
					"source":    chunks[j].Metadata.Source,
					"sourceUrl": chunks[j].Metadata.SourceURL,
					"kbId":      kbID,
					"createdAt": createdAt,
				},
			})
		}

		_, err := batcher.Do(ctx)
		if err != nil {
			return fmt.Errorf("failed to insert batch %d-%d: %v", i, end, err)
		}

		log.Printf("Inserted batch %d-%d of %d chunks into kb %s", i, end, total, kbID)
	}

	return nil
}

func (s *WeaviateStore) SearchSimilar(ctx context.Context, query, kbID string, limit int) ([]types.DocumentChunk, error) {
	fields := []graphql.Field{
		{Name: "content"},
		{Name: "source"},
		{Name: "sourceUrl"},
		{Name: "kbId"},
		{Name: "createdAt"},
		{Name: "_additional", Fields: []graphql.Field{{Name: "distance"}, {Name: "id"}}},
	}

	nearText := s.client.GraphQL().NearTextArgBuilder().
		WithConcepts([]string{query})

	getBuilder := s.client.GraphQL().Get().
		WithClassName(CHUNK_CLASS).
		WithFields(fields...).
		WithNearText(nearText).
		WithWhere(kbFilter(kbID))
	if limit > 0 {
		getBuilder = getBuilder.WithLimit(limit)
	}

	result, err := getBuilder.Do(ctx)
	if err != nil {
		return nil, err
	}
	if result.Errors != nil {
		return nil, fmt.Errorf("search failed: %v", result.Errors[0].Message)
	}

	return chunksFromResponse(result.Data), nil
}

// chunksFromResponse unpacks the Get result of a nearText query.
// Anything missing or oddly shaped yields no chunks instead of a panic.
func chunksFromResponse(data map[string]models.JSONObject) []types.DocumentChunk {
	get, ok := data["Get"].(map[string]interface{})
	if !ok {
		return nil
	}
	items, ok := get[CHUNK_CLASS].([]interface{})
	if !ok {
		return nil
	}

	var chunks []types.DocumentChunk
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		chunk := types.DocumentChunk{
			Metadata: types.DocumentMetadata{},
		}
		if content, ok := obj["content"].(string); ok {
			chunk.Content = content
		}
		if source, ok := obj["source"].(string); ok {
			chunk.Metadata.Source = source
		}
		if sourceURL, ok := obj["sourceUrl"].(string); ok {
			chunk.Metadata.SourceURL = sourceURL
		}
		chunks = append(chunks, chunk)
	}
	return chunks
}

func (s *WeaviateStore) DeleteKnowledgeBase(ctx context.Context, kbID string) error {
	result, err := s.client.Batch().ObjectsBatchDeleter().
		WithClassName(CHUNK_CLASS).
		WithWhere(kbFilter(kbID)).
		WithOutput("minimal").
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete kb %s: %v", kbID, err)
	}
	if result != nil && result.Results != nil {
		log.Printf("Deleted %d chunks from kb %s", result.Results.Successful, kbID)
	}
	return nil
}

func kbFilter(kbID string) *filters.WhereBuilder {
	return filters.Where().
		WithPath([]string{"kbId"}).
		WithOperator(filters.Equal).
		WithValueString(kbID)
}
