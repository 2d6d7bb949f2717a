package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeabsiraa/ragbot-be/service"
	"github.com/yeabsiraa/ragbot-be/types"
)

// Ingestor builds or refreshes a knowledge base from a create-bot
// request.
type Ingestor interface {
	CreateBot(ctx context.Context, req *types.CreateBotRequest) (time.Time, error)
}

// Answerer produces an answer for a query request.
type Answerer interface {
	Answer(ctx context.Context, req *types.QueryRequest) (string, error)
}

type BotHandler struct {
	ingest Ingestor
	query  Answerer
}

func NewBotHandler(ingest Ingestor, query Answerer) *BotHandler {
	return &BotHandler{
		ingest: ingest,
		query:  query,
	}
}

// HandleCreateBot implements POST /create-bot. A request whose sources
// all fail to produce documents is a 400; any downstream failure
// surfaces as a 500 with the error text.
func (h *BotHandler) HandleCreateBot(c *gin.Context) {
	var req types.CreateBotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	ts, err := h.ingest.CreateBot(c.Request.Context(), &req)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrNoDocuments) {
			status = http.StatusBadRequest
		}
		c.JSON(status, types.ErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.CreateBotResponse{
		Status:      "success",
		LastRefresh: ts.Unix(),
	})
}

// HandleQuery implements POST /query.
func (h *BotHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	answer, err := h.query.Answer(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Status: "error", Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.QueryResponse{
		Status: "success",
		Answer: answer,
	})
}
