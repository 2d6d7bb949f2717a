package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/yeabsiraa/ragbot-be/types"
)

// CSVLoader reads a CSV file from a local path or URL and renders each
// row as "header: value" pairs before chunking, so retrieval sees the
// column names next to their values. The delimiter is part of the cache
// key: the same file read with a different delimiter is a different
// source.
type CSVLoader struct {
	cfg       types.LoaderConfig
	cache     *diskCache
	client    *http.Client
	delimiter rune
}

func NewCSVLoader(cfg types.LoaderConfig, delimiter rune) *CSVLoader {
	cfg = normalizeConfig(cfg)
	if delimiter == 0 {
		delimiter = ','
	}
	return &CSVLoader{
		cfg:       cfg,
		cache:     newDiskCache(cfg.CacheDir, "csv"),
		client:    &http.Client{Timeout: 30 * time.Second},
		delimiter: delimiter,
	}
}

func (l *CSVLoader) cacheKey(source string) string {
	return fmt.Sprintf("%s_%c", source, l.delimiter)
}

func (l *CSVLoader) Load(ctx context.Context, source string, refresh bool) ([]types.DocumentChunk, error) {
	key := l.cacheKey(source)
	if !refresh {
		if chunks, ok := l.cache.read(key); ok {
			log.Printf("Loaded CSV %s from cache.", source)
			return chunks, nil
		}
	}

	log.Printf("Reading CSV file: %s", source)
	reader, closer, err := l.open(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("failed to read csv %s: %w", source, err)
	}
	defer closer()

	rows, err := renderCSVRows(reader, l.delimiter)
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv %s: %w", source, err)
	}

	pieces := SplitText(strings.Join(rows, "\n"), l.cfg.ChunkSize, l.cfg.ChunkOverlap)
	chunks := make([]types.DocumentChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, types.DocumentChunk{
			Content:  piece,
			Metadata: types.DocumentMetadata{Source: source},
		})
	}

	l.cache.write(key, chunks)
	log.Printf("Cached processed CSV %s (%d chunks).", source, len(chunks))
	return chunks, nil
}

func (l *CSVLoader) open(ctx context.Context, source string) (io.Reader, func(), error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, nil, err
		}
		resp, err := l.client.Do(req)
		if err != nil {
			return nil, nil, err
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, nil, fmt.Errorf("fetch returned status %d", resp.StatusCode)
		}
		return resp.Body, func() { resp.Body.Close() }, nil
	}

	f, err := os.Open(source)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// renderCSVRows converts every record after the header into a
// "h1: v1, h2: v2" line, preserving header order.
func renderCSVRows(r io.Reader, delimiter rune) ([]string, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}

	var rows []string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		pairs := make([]string, 0, len(record))
		for i, value := range record {
			if i >= len(header) {
				break
			}
			pairs = append(pairs, fmt.Sprintf("%s: %s", header[i], value))
		}
		rows = append(rows, strings.Join(pairs, ", "))
	}
	return rows, nil
}
