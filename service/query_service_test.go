package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabsiraa/ragbot-be/repository"
	"github.com/yeabsiraa/ragbot-be/types"
)

type fakeVectorStore struct {
	chunks    []types.DocumentChunk
	searchErr error
	lastQuery string
	lastKbID  string
	lastLimit int
}

func (f *fakeVectorStore) BatchInsertChunks(ctx context.Context, kbID string, chunks []types.DocumentChunk) error {
	return nil
}

func (f *fakeVectorStore) SearchSimilar(ctx context.Context, query, kbID string, limit int) ([]types.DocumentChunk, error) {
	f.lastQuery, f.lastKbID, f.lastLimit = query, kbID, limit
	return f.chunks, f.searchErr
}

func (f *fakeVectorStore) DeleteKnowledgeBase(ctx context.Context, kbID string) error {
	return nil
}

type fakeAI struct {
	answer     string
	err        error
	lastSystem string
	lastInput  string
	lastTurns  int
}

func (f *fakeAI) Chat(ctx context.Context, system string, history []types.Message, input string) (string, error) {
	f.lastSystem, f.lastInput, f.lastTurns = system, input, len(history)
	return f.answer, f.err
}

func (f *fakeAI) ChatStream(ctx context.Context, system string, history []types.Message, input string, handler types.StreamHandler) error {
	f.lastSystem, f.lastInput, f.lastTurns = system, input, len(history)
	if f.err != nil {
		return f.err
	}
	for _, r := range f.answer {
		handler(string(r))
	}
	return nil
}

func newQueryFixture(t *testing.T) (*QueryService, *fakeVectorStore, *fakeAI, repository.BotStateRepo) {
	t.Helper()
	mr := miniredis.RunT(t)
	state := repository.NewBotStateRepo(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	store := &fakeVectorStore{chunks: []types.DocumentChunk{{Content: "order tracking info"}}}
	ai := &fakeAI{answer: "You can track orders in your account."}
	return NewQueryService(store, state, ai, 5), store, ai, state
}

func queryReq() *types.QueryRequest {
	return &types.QueryRequest{
		UserID:    "u1",
		BotID:     "b1",
		KbID:      "kb1",
		SessionID: "s1",
		InputText: "how do I track my order?",
	}
}

func TestAnswerRetrievesScopedContext(t *testing.T) {
	svc, store, ai, _ := newQueryFixture(t)

	answer, err := svc.Answer(context.Background(), queryReq())
	require.NoError(t, err)
	assert.Equal(t, "You can track orders in your account.", answer)

	assert.Equal(t, "how do I track my order?", store.lastQuery)
	assert.Equal(t, "kb1", store.lastKbID)
	assert.Equal(t, 5, store.lastLimit)
	assert.Contains(t, ai.lastSystem, "order tracking info")
}

func TestAnswerGrowsSessionMemory(t *testing.T) {
	svc, _, ai, state := newQueryFixture(t)
	ctx := context.Background()

	_, err := svc.Answer(ctx, queryReq())
	require.NoError(t, err)

	history, err := state.LoadMemory(ctx, "u1", "b1", "kb1", "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, types.Message{Role: types.RoleUser, Content: "how do I track my order?"}, history[0])
	assert.Equal(t, types.Message{Role: types.RoleAssistant, Content: "You can track orders in your account."}, history[1])

	// Second turn sees the first turn as history.
	_, err = svc.Answer(ctx, queryReq())
	require.NoError(t, err)
	assert.Equal(t, 2, ai.lastTurns)

	history, err = state.LoadMemory(ctx, "u1", "b1", "kb1", "s1")
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestAnswerUsesPromptOverride(t *testing.T) {
	svc, _, ai, state := newQueryFixture(t)
	ctx := context.Background()

	require.NoError(t, state.SetPromptTemplate(ctx, "u1", "b1", "You are Yeb, a shopping guide."))

	_, err := svc.Answer(ctx, queryReq())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ai.lastSystem, "You are Yeb, a shopping guide."))
}

func TestAnswerPropagatesSearchError(t *testing.T) {
	svc, store, _, state := newQueryFixture(t)
	store.searchErr = errors.New("index unavailable")

	_, err := svc.Answer(context.Background(), queryReq())
	require.Error(t, err)

	// A failed query must not grow the memory.
	history, err2 := state.LoadMemory(context.Background(), "u1", "b1", "kb1", "s1")
	require.NoError(t, err2)
	assert.Nil(t, history)
}

func TestAnswerPropagatesModelError(t *testing.T) {
	svc, _, ai, _ := newQueryFixture(t)
	ai.err = errors.New("quota exceeded")

	_, err := svc.Answer(context.Background(), queryReq())
	assert.EqualError(t, err, "quota exceeded")
}

func TestAnswerStreamAssemblesAndRemembers(t *testing.T) {
	svc, _, _, state := newQueryFixture(t)
	ctx := context.Background()

	var deltas []string
	answer, err := svc.AnswerStream(ctx, queryReq(), func(delta string) {
		deltas = append(deltas, delta)
	})
	require.NoError(t, err)
	assert.Equal(t, "You can track orders in your account.", answer)
	assert.Equal(t, answer, strings.Join(deltas, ""))

	history, err := state.LoadMemory(ctx, "u1", "b1", "kb1", "s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, answer, history[1].Content)
}
