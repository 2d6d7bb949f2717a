package loader

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabsiraa/ragbot-be/types"
)

func TestJSONLoaderFlattensNestedObjects(t *testing.T) {
	dir := t.TempDir()
	source := writeTempFile(t, dir, "bot.json",
		`{"name": "support", "owner": {"id": "u1", "contact": {"email": "a@b.c"}}}`)

	l := NewJSONLoader(types.LoaderConfig{CacheDir: filepath.Join(dir, "cache")})

	chunks, err := l.Load(context.Background(), source, false)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	content := chunks[0].Content
	assert.Contains(t, content, "name: support")
	assert.Contains(t, content, "owner.id: u1")
	assert.Contains(t, content, "owner.contact.email: a@b.c")
}

func TestJSONLoaderArrayOfObjects(t *testing.T) {
	dir := t.TempDir()
	source := writeTempFile(t, dir, "faq.json",
		`[{"q": "hours?", "a": "9-5"}, {"q": "address?", "a": "main st"}]`)

	l := NewJSONLoader(types.LoaderConfig{CacheDir: filepath.Join(dir, "cache")})

	chunks, err := l.Load(context.Background(), source, false)
	require.NoError(t, err)
	require.Len(t, chunks, 1)

	content := chunks[0].Content
	assert.Contains(t, content, "a: 9-5, q: hours?")
	assert.Contains(t, content, "a: main st, q: address?")
}

func TestJSONLoaderRejectsScalarRoot(t *testing.T) {
	dir := t.TempDir()
	source := writeTempFile(t, dir, "bad.json", `"just a string"`)

	l := NewJSONLoader(types.LoaderConfig{CacheDir: filepath.Join(dir, "cache")})

	_, err := l.Load(context.Background(), source, false)
	assert.Error(t, err)
}

func TestJSONLoaderInvalidJSON(t *testing.T) {
	dir := t.TempDir()
	source := writeTempFile(t, dir, "bad.json", `{"unclosed": `)

	l := NewJSONLoader(types.LoaderConfig{CacheDir: filepath.Join(dir, "cache")})

	_, err := l.Load(context.Background(), source, false)
	assert.Error(t, err)
}
