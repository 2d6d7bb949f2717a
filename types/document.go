package types

// DocumentChunk is a bounded-length slice of extracted text with its
// provenance metadata. Chunks are immutable once produced by a loader:
// the same chunk value is written to the on-disk cache and to the
// vector index.
type DocumentChunk struct {
	Content  string           `json:"content"`
	Metadata DocumentMetadata `json:"metadata"`
}

// DocumentMetadata carries the provenance of a chunk.
type DocumentMetadata struct {
	Source    string `json:"source"`
	SourceURL string `json:"source_url,omitempty"`
}

// LoaderConfig contains configuration options shared by all ingestion loaders.
type LoaderConfig struct {
	ChunkSize    int    // Maximum size for text chunks
	ChunkOverlap int    // Size of overlap between chunks
	CacheDir     string // Root directory for per-format chunk caches
}
