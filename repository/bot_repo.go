package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/yeabsiraa/ragbot-be/types"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type BotRepo interface {
	UpsertBot(ctx context.Context, bot *types.BotProfile) error
	GetBot(ctx context.Context, userID, botID string) (*types.BotProfile, error)
	ListBots(ctx context.Context, userID string) ([]*types.BotProfile, error)
	DeleteBot(ctx context.Context, userID, botID string) error
}

type botRepo struct {
	collection *mongo.Collection
}

func NewBotRepo(collection *mongo.Collection) BotRepo {
	return &botRepo{
		collection: collection,
	}
}

func (r *botRepo) UpsertBot(ctx context.Context, bot *types.BotProfile) error {
	existing, err := r.GetBot(ctx, bot.UserID, bot.BotID)
	if err := prepareProfile(bot, existing, err, time.Now().Unix()); err != nil {
		return err
	}

	_, err = r.collection.ReplaceOne(ctx,
		map[string]string{"user_id": bot.UserID, "bot_id": bot.BotID},
		bot,
		options.Replace().SetUpsert(true),
	)
	return err
}

// prepareProfile fills the identity fields before a replace: an
// existing document keeps its id and creation time, a missing one gets
// fresh ones, and any other lookup failure aborts the upsert so a
// transient error cannot overwrite a live profile with a new identity.
func prepareProfile(bot *types.BotProfile, existing *types.BotProfile, lookupErr error, now int64) error {
	switch {
	case lookupErr == nil && existing != nil:
		bot.ID = existing.ID
		bot.CreatedAt = existing.CreatedAt
	case errors.Is(lookupErr, mongo.ErrNoDocuments):
		bot.ID = uuid.New().String()
		bot.CreatedAt = now
	default:
		return lookupErr
	}
	bot.UpdatedAt = now
	return nil
}

func (r *botRepo) GetBot(ctx context.Context, userID, botID string) (*types.BotProfile, error) {
	var bot types.BotProfile
	err := r.collection.FindOne(ctx, map[string]string{"user_id": userID, "bot_id": botID}).Decode(&bot)
	if err != nil {
		return nil, err
	}
	return &bot, nil
}

func (r *botRepo) ListBots(ctx context.Context, userID string) ([]*types.BotProfile, error) {
	cursor, err := r.collection.Find(ctx, map[string]string{"user_id": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bots []*types.BotProfile
	for cursor.Next(ctx) {
		var bot types.BotProfile
		if err := cursor.Decode(&bot); err != nil {
			return nil, err
		}
		bots = append(bots, &bot)
	}
	return bots, nil
}

func (r *botRepo) DeleteBot(ctx context.Context, userID, botID string) error {
	_, err := r.collection.DeleteOne(ctx, map[string]string{"user_id": userID, "bot_id": botID})
	return err
}
