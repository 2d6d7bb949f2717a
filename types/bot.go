package types

// BotProfile stores the presentation fields of a bot. The knowledge base
// itself lives in the vector index; the profile only carries what the
// frontend needs to render the bot.
type BotProfile struct {
	ID           string  `bson:"_id" json:"id"`
	UserID       string  `bson:"user_id" json:"user_id"`
	BotID        string  `bson:"bot_id" json:"bot_id"`
	BotName      string  `bson:"bot_name" json:"bot_name"`
	Theme        string  `bson:"theme" json:"theme"`
	ProfileImage string  `bson:"profile_image" json:"profile_image"`
	Model        string  `bson:"model" json:"model"`
	Temperature  float64 `bson:"temperature" json:"temperature"`
	CreatedAt    int64   `bson:"created_at" json:"created_at"`
	UpdatedAt    int64   `bson:"updated_at" json:"updated_at"`
}
