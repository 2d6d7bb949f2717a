package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/yeabsiraa/ragbot-be/types"
)

// JSONLoader flattens a JSON object (or array of objects) into dotted
// key/value rows before chunking.
type JSONLoader struct {
	cfg   types.LoaderConfig
	cache *diskCache
}

func NewJSONLoader(cfg types.LoaderConfig) *JSONLoader {
	cfg = normalizeConfig(cfg)
	return &JSONLoader{
		cfg:   cfg,
		cache: newDiskCache(cfg.CacheDir, "json"),
	}
}

func (l *JSONLoader) Load(ctx context.Context, source string, refresh bool) ([]types.DocumentChunk, error) {
	if !refresh {
		if chunks, ok := l.cache.read(source); ok {
			log.Printf("Loaded JSON %s from cache.", source)
			return chunks, nil
		}
	}

	log.Printf("Reading JSON file: %s", source)
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read json %s: %w", source, err)
	}

	rows, err := renderJSONRows(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse json %s: %w", source, err)
	}

	pieces := SplitText(strings.Join(rows, "\n"), l.cfg.ChunkSize, l.cfg.ChunkOverlap)
	chunks := make([]types.DocumentChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, types.DocumentChunk{
			Content:  piece,
			Metadata: types.DocumentMetadata{Source: source},
		})
	}

	l.cache.write(source, chunks)
	log.Printf("Cached processed JSON %s (%d chunks).", source, len(chunks))
	return chunks, nil
}

func renderJSONRows(data []byte) ([]string, error) {
	var parsed interface{}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, err
	}

	var entries []map[string]interface{}
	switch v := parsed.(type) {
	case map[string]interface{}:
		entries = []map[string]interface{}{v}
	case []interface{}:
		for _, item := range v {
			obj, ok := item.(map[string]interface{})
			if !ok {
				return nil, fmt.Errorf("expected array of objects, got %T", item)
			}
			entries = append(entries, obj)
		}
	default:
		return nil, fmt.Errorf("expected object or array of objects, got %T", parsed)
	}

	rows := make([]string, 0, len(entries))
	for _, entry := range entries {
		flat := map[string]interface{}{}
		flattenJSON(entry, "", flat)

		keys := make([]string, 0, len(flat))
		for k := range flat {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s: %v", k, flat[k]))
		}
		rows = append(rows, strings.Join(pairs, ", "))
	}
	return rows, nil
}

// flattenJSON collapses nested objects into a single level with dotted
// keys; non-object values are kept as-is.
func flattenJSON(obj map[string]interface{}, prefix string, out map[string]interface{}) {
	for k, v := range obj {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flattenJSON(nested, key, out)
		} else {
			out[key] = v
		}
	}
}
