package types

const (
	TypeWebsocketPing  = "ping"
	TypeWebsocketPong  = "pong"
	TypeWebsocketChat  = "chat"
	TypeWebsocketDone  = "done"
	TypeWebsocketError = "error"
)

type WebSocketRequest struct {
	Type    string       `json:"type"`
	Payload QueryRequest `json:"payload"`
}

type WebSocketResponse struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// WebSocketChatResponse carries one streamed answer delta.
type WebSocketChatResponse struct {
	Delta string `json:"delta"`
}
