package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetOrigin(t *testing.T) {
	assert.Equal(t, "https://shop.example.com", GetOrigin("https://shop.example.com/products?page=2"))
	assert.Equal(t, "http://localhost:8080", GetOrigin("http://localhost:8080/docs"))
}

func TestFixURLsInText(t *testing.T) {
	text := "see [docs](https://shop.example.comhttps://shop.example.com/docs) for details"
	fixed := FixURLsInText(text, "https://shop.example.com/")

	assert.NotContains(t, fixed, "comhttps")
}

func TestFixURLsInTextLeavesCleanLinksAlone(t *testing.T) {
	text := "visit https://shop.example.com/docs and https://other.example.org/page"
	assert.Equal(t, text, FixURLsInText(text, "https://shop.example.com"))
}

func TestCacheKeyStable(t *testing.T) {
	assert.Equal(t, CacheKey("https://a.com"), CacheKey("https://a.com"))
	assert.NotEqual(t, CacheKey("https://a.com"), CacheKey("https://b.com"))
	assert.Len(t, CacheKey("anything"), 32)
}
