package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabsiraa/ragbot-be/types"
)

func newTestRepo(t *testing.T) (BotStateRepo, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewBotStateRepo(client), mr
}

func TestLastRefreshKeyFormat(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	ts := time.Unix(1700000000, 0)
	require.NoError(t, repo.SetLastRefresh(ctx, "u1", "b1", "kb1", ts))

	raw, err := mr.Get("last_refresh:u1:b1:kb1")
	require.NoError(t, err)
	assert.Equal(t, "1700000000", raw)

	got, err := repo.GetLastRefresh(ctx, "u1", "b1", "kb1")
	require.NoError(t, err)
	assert.Equal(t, ts, got)
}

func TestLastRefreshMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	got, err := repo.GetLastRefresh(context.Background(), "u1", "b1", "kb1")
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestPromptTemplateRoundTrip(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	template, err := repo.GetPromptTemplate(ctx, "u1", "b1")
	require.NoError(t, err)
	assert.Empty(t, template, "missing override reads as empty")

	require.NoError(t, repo.SetPromptTemplate(ctx, "u1", "b1", "You are a pirate."))
	assert.True(t, mr.Exists("prompt_template:u1:b1"))

	template, err = repo.GetPromptTemplate(ctx, "u1", "b1")
	require.NoError(t, err)
	assert.Equal(t, "You are a pirate.", template)
}

func TestMemoryRoundTrip(t *testing.T) {
	repo, mr := newTestRepo(t)
	ctx := context.Background()

	messages, err := repo.LoadMemory(ctx, "u1", "b1", "kb1", "s1")
	require.NoError(t, err)
	assert.Nil(t, messages, "fresh session has no memory")

	history := []types.Message{
		{Role: types.RoleUser, Content: "hello"},
		{Role: types.RoleAssistant, Content: "hi there"},
	}
	require.NoError(t, repo.SaveMemory(ctx, "u1", "b1", "kb1", "s1", history))
	assert.True(t, mr.Exists("memory:u1:b1:kb1:s1"))

	loaded, err := repo.LoadMemory(ctx, "u1", "b1", "kb1", "s1")
	require.NoError(t, err)
	assert.Equal(t, history, loaded)
}

func TestMemoryIsScopedPerSession(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.SaveMemory(ctx, "u1", "b1", "kb1", "s1",
		[]types.Message{{Role: types.RoleUser, Content: "first session"}}))

	other, err := repo.LoadMemory(ctx, "u1", "b1", "kb1", "s2")
	require.NoError(t, err)
	assert.Nil(t, other)

	otherKb, err := repo.LoadMemory(ctx, "u1", "b1", "kb2", "s1")
	require.NoError(t, err)
	assert.Nil(t, otherKb)
}

func TestMemoryLastWriteWins(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := []types.Message{{Role: types.RoleUser, Content: "one"}}
	second := []types.Message{{Role: types.RoleUser, Content: "two"}}

	require.NoError(t, repo.SaveMemory(ctx, "u1", "b1", "kb1", "s1", first))
	require.NoError(t, repo.SaveMemory(ctx, "u1", "b1", "kb1", "s1", second))

	loaded, err := repo.LoadMemory(ctx, "u1", "b1", "kb1", "s1")
	require.NoError(t, err)
	assert.Equal(t, second, loaded)
}

func TestMemoryCorruptPayload(t *testing.T) {
	repo, mr := newTestRepo(t)

	require.NoError(t, mr.Set("memory:u1:b1:kb1:s1", "{not json"))

	_, err := repo.LoadMemory(context.Background(), "u1", "b1", "kb1", "s1")
	assert.Error(t, err)
}
