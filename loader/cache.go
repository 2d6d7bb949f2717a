package loader

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/yeabsiraa/ragbot-be/types"
	"github.com/yeabsiraa/ragbot-be/utils"
)

// diskCache memoizes processed chunk lists on disk, one JSON file per
// source named by the md5 of the source identifier. Read failures fall
// through to reprocessing and write failures are logged, never fatal, so
// a broken cache can only cost time.
type diskCache struct {
	dir string
}

func newDiskCache(root, format string) *diskCache {
	return &diskCache{dir: filepath.Join(root, format)}
}

func (c *diskCache) path(key string) string {
	return filepath.Join(c.dir, utils.CacheKey(key)+".json")
}

func (c *diskCache) read(key string) ([]types.DocumentChunk, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var chunks []types.DocumentChunk
	if err := json.Unmarshal(data, &chunks); err != nil {
		log.Printf("Cache load failed: %v. Reloading.", err)
		return nil, false
	}
	return chunks, true
}

func (c *diskCache) write(key string, chunks []types.DocumentChunk) {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		log.Printf("Failed to create cache directory %s: %v", c.dir, err)
		return
	}

	data, err := json.Marshal(chunks)
	if err != nil {
		log.Printf("Failed to encode cache data: %v", err)
		return
	}
	if err := os.WriteFile(c.path(key), data, 0644); err != nil {
		log.Printf("Failed to cache data: %v", err)
	}
}
