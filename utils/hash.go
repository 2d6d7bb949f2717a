package utils

import (
	"crypto/md5"
	"encoding/hex"
)

// CacheKey derives the content-addressed cache key for a source
// identifier. Identical identifiers always map to the same key, which is
// what makes the loader caches idempotent.
func CacheKey(source string) string {
	sum := md5.Sum([]byte(source))
	return hex.EncodeToString(sum[:])
}
