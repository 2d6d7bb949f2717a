package service

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeabsiraa/ragbot-be/types"
)

// WebSocketService streams query answers delta by delta over a
// websocket connection. Each chat message on the socket is a full query
// request; memory semantics are identical to the HTTP endpoint.
type WebSocketService struct {
	query    *QueryService
	upgrader websocket.Upgrader
}

func NewWebSocketService(query *QueryService) *WebSocketService {
	return &WebSocketService{
		query: query,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true // Allow all origins (adjust for production)
			},
		},
	}
}

func (s *WebSocketService) HandleQuery(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(512 * 1024) // 512KB max message size
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))

		var req types.WebSocketRequest
		if err := json.Unmarshal(payload, &req); err != nil {
			s.send(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "invalid request: " + err.Error(),
			})
			continue
		}

		switch req.Type {
		case types.TypeWebsocketPing:
			s.send(conn, types.WebSocketResponse{Type: types.TypeWebsocketPong})
		case types.TypeWebsocketChat:
			s.handleChat(conn, r, &req.Payload)
		default:
			s.send(conn, types.WebSocketResponse{
				Type:    types.TypeWebsocketError,
				Payload: "unknown message type: " + req.Type,
			})
		}
	}
}

func (s *WebSocketService) handleChat(conn *websocket.Conn, r *http.Request, req *types.QueryRequest) {
	_, err := s.query.AnswerStream(r.Context(), req, func(delta string) {
		s.send(conn, types.WebSocketResponse{
			Type:    types.TypeWebsocketChat,
			Payload: types.WebSocketChatResponse{Delta: delta},
		})
	})
	if err != nil {
		s.send(conn, types.WebSocketResponse{
			Type:    types.TypeWebsocketError,
			Payload: err.Error(),
		})
		return
	}
	s.send(conn, types.WebSocketResponse{Type: types.TypeWebsocketDone})
}

func (s *WebSocketService) send(conn *websocket.Conn, resp types.WebSocketResponse) {
	if err := conn.WriteJSON(resp); err != nil {
		log.Println("WebSocket write error:", err)
	}
}
