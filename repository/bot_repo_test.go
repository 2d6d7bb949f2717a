package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeabsiraa/ragbot-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

func TestPrepareProfileKeepsExistingIdentity(t *testing.T) {
	existing := &types.BotProfile{ID: "id-1", CreatedAt: 100}
	bot := &types.BotProfile{UserID: "u1", BotID: "b1"}

	require.NoError(t, prepareProfile(bot, existing, nil, 200))
	assert.Equal(t, "id-1", bot.ID)
	assert.Equal(t, int64(100), bot.CreatedAt)
	assert.Equal(t, int64(200), bot.UpdatedAt)
}

func TestPrepareProfileMintsIdentityForNewBot(t *testing.T) {
	bot := &types.BotProfile{UserID: "u1", BotID: "b1"}

	require.NoError(t, prepareProfile(bot, nil, mongo.ErrNoDocuments, 200))
	assert.NotEmpty(t, bot.ID)
	assert.Equal(t, int64(200), bot.CreatedAt)
	assert.Equal(t, int64(200), bot.UpdatedAt)
}

func TestPrepareProfilePropagatesLookupFailure(t *testing.T) {
	bot := &types.BotProfile{UserID: "u1", BotID: "b1"}
	lookupErr := errors.New("connection reset by peer")

	err := prepareProfile(bot, nil, lookupErr, 200)
	require.ErrorIs(t, err, lookupErr)
	assert.Empty(t, bot.ID, "no identity minted when the lookup failed")
	assert.Zero(t, bot.CreatedAt)
}
