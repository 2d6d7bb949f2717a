package loader

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/yeabsiraa/ragbot-be/types"
)

// TxtLoader reads a plain text file whole and chunks it.
type TxtLoader struct {
	cfg   types.LoaderConfig
	cache *diskCache
}

func NewTxtLoader(cfg types.LoaderConfig) *TxtLoader {
	cfg = normalizeConfig(cfg)
	return &TxtLoader{
		cfg:   cfg,
		cache: newDiskCache(cfg.CacheDir, "txt"),
	}
}

func (l *TxtLoader) Load(ctx context.Context, source string, refresh bool) ([]types.DocumentChunk, error) {
	if !refresh {
		if chunks, ok := l.cache.read(source); ok {
			log.Printf("Loaded text %s from cache.", source)
			return chunks, nil
		}
	}

	log.Printf("Reading text file: %s", source)
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read text file %s: %w", source, err)
	}

	pieces := SplitText(string(data), l.cfg.ChunkSize, l.cfg.ChunkOverlap)
	chunks := make([]types.DocumentChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, types.DocumentChunk{
			Content:  piece,
			Metadata: types.DocumentMetadata{Source: source},
		})
	}

	l.cache.write(source, chunks)
	log.Printf("Cached processed text %s (%d chunks).", source, len(chunks))
	return chunks, nil
}
