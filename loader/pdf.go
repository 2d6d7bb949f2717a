package loader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/yeabsiraa/ragbot-be/types"
)

// PDFLoader extracts text from a PDF given as a URL or a local path.
type PDFLoader struct {
	cfg    types.LoaderConfig
	cache  *diskCache
	client *http.Client
}

func NewPDFLoader(cfg types.LoaderConfig) *PDFLoader {
	cfg = normalizeConfig(cfg)
	return &PDFLoader{
		cfg:    cfg,
		cache:  newDiskCache(cfg.CacheDir, "pdfs"),
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func (l *PDFLoader) Load(ctx context.Context, source string, refresh bool) ([]types.DocumentChunk, error) {
	if !refresh {
		if chunks, ok := l.cache.read(source); ok {
			log.Printf("Loaded %s from cache.", source)
			return chunks, nil
		}
	}

	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		data, err = l.download(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf %s: %w", source, err)
	}

	text, err := extractPDFText(data)
	if err != nil {
		return nil, fmt.Errorf("failed to extract text from %s: %w", source, err)
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("extracted text from %s is empty", source)
	}

	pieces := SplitText(text, l.cfg.ChunkSize, l.cfg.ChunkOverlap)
	chunks := make([]types.DocumentChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, types.DocumentChunk{
			Content:  piece,
			Metadata: types.DocumentMetadata{Source: source},
		})
	}

	l.cache.write(source, chunks)
	log.Printf("Cached processed PDF %s (%d chunks).", source, len(chunks))
	return chunks, nil
}

func (l *PDFLoader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download returned status %d", resp.StatusCode)
	}
	log.Printf("Downloaded PDF from: %s", url)
	return io.ReadAll(resp.Body)
}

// extractPDFText pulls text page by page, joining pages with blank
// lines. Pages that fail to decode are skipped with a log line so one
// broken page cannot sink a whole document.
func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var pages []string
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("Warning: failed to extract text from page %d: %v", pageNum, err)
			continue
		}
		if text = strings.TrimSpace(text); text != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}
