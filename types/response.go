package types

type CreateBotResponse struct {
	Status      string `json:"status"`
	LastRefresh int64  `json:"last_refresh"`
}

type QueryResponse struct {
	Status string `json:"status"`
	Answer string `json:"answer"`
}

type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
