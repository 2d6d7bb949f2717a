package types

// CreateBotRequest is the body of POST /create-bot. Each source list is
// optional; at least one source must yield documents or the request is
// rejected with a 400.
type CreateBotRequest struct {
	UserID         string   `json:"user_id" binding:"required"`
	BotID          string   `json:"bot_id" binding:"required"`
	KbID           string   `json:"kb_id" binding:"required"`
	CSV            []string `json:"csv"`
	PDF            []string `json:"pdf"`
	TXT            []string `json:"txt"`
	JSON           []string `json:"json"`
	WebURL         []string `json:"web_url" binding:"omitempty,dive,url"`
	PromptTemplate string   `json:"prompt_template"`
	Temperature    *float64 `json:"temperature" binding:"omitempty,gte=0,lte=1"`
	Theme          string   `json:"theme"`
	BotName        string   `json:"bot_name" binding:"required"`
	ProfileImage   string   `json:"profile_image" binding:"omitempty,url"`
	Model          string   `json:"model"`
}

// QueryRequest is the body of POST /query.
type QueryRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	BotID     string `json:"bot_id" binding:"required"`
	KbID      string `json:"kb_id" binding:"required"`
	SessionID string `json:"session_id" binding:"required"`
	InputText string `json:"input_text" binding:"required"`
}
