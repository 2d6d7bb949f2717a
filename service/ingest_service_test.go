package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabsiraa/ragbot-be/repository"
	"github.com/yeabsiraa/ragbot-be/types"
)

type recordingStore struct {
	inserted  map[string][]types.DocumentChunk
	deleted   []string
	insertErr error
}

func newRecordingStore() *recordingStore {
	return &recordingStore{inserted: map[string][]types.DocumentChunk{}}
}

func (r *recordingStore) BatchInsertChunks(ctx context.Context, kbID string, chunks []types.DocumentChunk) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.inserted[kbID] = append(r.inserted[kbID], chunks...)
	return nil
}

func (r *recordingStore) SearchSimilar(ctx context.Context, query, kbID string, limit int) ([]types.DocumentChunk, error) {
	return nil, nil
}

func (r *recordingStore) DeleteKnowledgeBase(ctx context.Context, kbID string) error {
	r.deleted = append(r.deleted, kbID)
	return nil
}

func newIngestFixture(t *testing.T) (*IngestService, *recordingStore, repository.BotStateRepo, string) {
	t.Helper()
	mr := miniredis.RunT(t)
	state := repository.NewBotStateRepo(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	store := newRecordingStore()

	dir := t.TempDir()
	svc := NewIngestService(store, state, nil, types.LoaderConfig{
		CacheDir: filepath.Join(dir, "cache"),
	})
	return svc, store, state, dir
}

func createReq(txtPaths ...string) *types.CreateBotRequest {
	return &types.CreateBotRequest{
		UserID:  "u1",
		BotID:   "b1",
		KbID:    "kb1",
		BotName: "support-bot",
		TXT:     txtPaths,
	}
}

func TestCreateBotNoDocuments(t *testing.T) {
	svc, _, _, _ := newIngestFixture(t)

	_, err := svc.CreateBot(context.Background(), createReq())
	assert.ErrorIs(t, err, ErrNoDocuments)
}

func TestCreateBotAllSourcesFailing(t *testing.T) {
	svc, store, _, _ := newIngestFixture(t)

	// Broken sources degrade to zero documents, which is a 400-class
	// error, not a 500.
	_, err := svc.CreateBot(context.Background(), createReq("/missing/a.txt", "/missing/b.txt"))
	assert.ErrorIs(t, err, ErrNoDocuments)
	assert.Empty(t, store.inserted)
}

func TestCreateBotIngestsAndRecordsState(t *testing.T) {
	svc, store, state, dir := newIngestFixture(t)
	ctx := context.Background()

	source := filepath.Join(dir, "facts.txt")
	require.NoError(t, os.WriteFile(source, []byte("the store opens at nine"), 0644))

	req := createReq(source)
	req.PromptTemplate = "You are a store assistant."

	ts, err := svc.CreateBot(ctx, req)
	require.NoError(t, err)
	assert.False(t, ts.IsZero())

	require.Len(t, store.inserted["kb1"], 1)
	assert.Equal(t, "the store opens at nine", store.inserted["kb1"][0].Content)
	assert.Equal(t, []string{"kb1"}, store.deleted, "kb is cleared before re-insert")

	lastRefresh, err := state.GetLastRefresh(ctx, "u1", "b1", "kb1")
	require.NoError(t, err)
	assert.Equal(t, ts.Unix(), lastRefresh.Unix())

	template, err := state.GetPromptTemplate(ctx, "u1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "You are a store assistant.", template)
}

func TestCreateBotPartialFailureDegrades(t *testing.T) {
	svc, store, _, dir := newIngestFixture(t)

	good := filepath.Join(dir, "good.txt")
	require.NoError(t, os.WriteFile(good, []byte("useful content"), 0644))

	_, err := svc.CreateBot(context.Background(), createReq(good, "/missing/bad.txt"))
	require.NoError(t, err)
	assert.Len(t, store.inserted["kb1"], 1)
}

func TestCreateBotInsertErrorPropagates(t *testing.T) {
	svc, store, _, dir := newIngestFixture(t)
	store.insertErr = errors.New("weaviate down")

	source := filepath.Join(dir, "facts.txt")
	require.NoError(t, os.WriteFile(source, []byte("content"), 0644))

	_, err := svc.CreateBot(context.Background(), createReq(source))
	assert.EqualError(t, err, "weaviate down")
}

func TestCreateBotSkipsPromptTemplateWhenEmpty(t *testing.T) {
	svc, _, state, dir := newIngestFixture(t)
	ctx := context.Background()

	source := filepath.Join(dir, "facts.txt")
	require.NoError(t, os.WriteFile(source, []byte("content"), 0644))

	_, err := svc.CreateBot(ctx, createReq(source))
	require.NoError(t, err)

	template, err := state.GetPromptTemplate(ctx, "u1", "b1")
	require.NoError(t, err)
	assert.Empty(t, template)
}
