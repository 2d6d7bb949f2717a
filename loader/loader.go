package loader

import (
	"context"

	"github.com/yeabsiraa/ragbot-be/types"
)

// Loader turns one source identifier (URL or local path) into document
// chunks. Implementations cache their output on disk keyed by a hash of
// the source identifier; refresh forces the cache to be bypassed and
// rewritten.
type Loader interface {
	Load(ctx context.Context, source string, refresh bool) ([]types.DocumentChunk, error)
}

const (
	defaultChunkSize    = 1000
	defaultChunkOverlap = 200
)

func normalizeConfig(cfg types.LoaderConfig) types.LoaderConfig {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = defaultChunkSize
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		cfg.ChunkOverlap = defaultChunkOverlap
	}
	if cfg.CacheDir == "" {
		cfg.CacheDir = ".cache"
	}
	return cfg
}
