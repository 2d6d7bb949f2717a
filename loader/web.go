package loader

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/yeabsiraa/ragbot-be/types"
	"github.com/yeabsiraa/ragbot-be/utils"
)

// WebLoader fetches a web page and extracts structured text: headings,
// paragraphs, list items and links (preserved as markdown).
type WebLoader struct {
	cfg    types.LoaderConfig
	cache  *diskCache
	client *http.Client
}

func NewWebLoader(cfg types.LoaderConfig) *WebLoader {
	cfg = normalizeConfig(cfg)
	return &WebLoader{
		cfg:    cfg,
		cache:  newDiskCache(cfg.CacheDir, "documents"),
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

func (l *WebLoader) Load(ctx context.Context, url string, refresh bool) ([]types.DocumentChunk, error) {
	if !refresh {
		if chunks, ok := l.cache.read(url); ok {
			log.Printf("Loaded %s from cache.", url)
			return chunks, nil
		}
	}

	log.Printf("Fetching data from: %s", url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid url %s: %w", url, err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", url, err)
	}

	text := extractStructuredText(doc)
	text = utils.FixURLsInText(text, utils.GetOrigin(url))

	pieces := SplitText(text, l.cfg.ChunkSize, l.cfg.ChunkOverlap)
	if len(pieces) == 0 {
		return nil, fmt.Errorf("no text extracted from %s", url)
	}
	log.Printf("Split %s into %d chunks.", url, len(pieces))

	chunks := make([]types.DocumentChunk, 0, len(pieces))
	for _, piece := range pieces {
		chunks = append(chunks, types.DocumentChunk{
			Content:  piece,
			Metadata: types.DocumentMetadata{Source: url, SourceURL: url},
		})
	}

	l.cache.write(url, chunks)
	return chunks, nil
}

// extractStructuredText walks headings, paragraphs, list items and links
// in document order, underlining headings and keeping links as
// markdown so they survive chunking.
func extractStructuredText(doc *goquery.Document) string {
	var parts []string

	doc.Find("h1, h2, h3, h4, h5, h6, p, li, a").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		switch name := goquery.NodeName(s); name {
		case "p":
			if text != "" {
				parts = append(parts, text)
			}
		case "li":
			if text != "" {
				parts = append(parts, "- "+text)
			}
		case "a":
			href, ok := s.Attr("href")
			if ok && text != "" {
				parts = append(parts, fmt.Sprintf("[%s](%s)", text, href))
			}
		default: // headings
			if text != "" {
				parts = append(parts, "\n"+text+"\n"+strings.Repeat("=", len(text)))
			}
		}
	})

	return strings.Join(parts, "\n\n")
}
