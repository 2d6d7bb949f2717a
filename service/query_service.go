package service

import (
	"context"
	"strings"

	"github.com/yeabsiraa/ragbot-be/database"
	"github.com/yeabsiraa/ragbot-be/repository"
	"github.com/yeabsiraa/ragbot-be/types"
)

// QueryService answers a user query against one knowledge base: load
// the session memory, retrieve kb-scoped context, invoke the model and
// write the grown memory back. Memory writes are last-write-wins across
// concurrent sessions on the same key.
type QueryService struct {
	store database.VectorStore
	state repository.BotStateRepo
	ai    AIService
	limit int
}

func NewQueryService(store database.VectorStore, state repository.BotStateRepo, ai AIService, retrievalLimit int) *QueryService {
	if retrievalLimit <= 0 {
		retrievalLimit = 5
	}
	return &QueryService{
		store: store,
		state: state,
		ai:    ai,
		limit: retrievalLimit,
	}
}

func (s *QueryService) Answer(ctx context.Context, req *types.QueryRequest) (string, error) {
	system, history, err := s.prepare(ctx, req)
	if err != nil {
		return "", err
	}

	answer, err := s.ai.Chat(ctx, system, history, req.InputText)
	if err != nil {
		return "", err
	}

	return answer, s.remember(ctx, req, history, answer)
}

// AnswerStream behaves like Answer but forwards deltas to handler as
// they arrive; memory is saved once the full answer is assembled.
func (s *QueryService) AnswerStream(ctx context.Context, req *types.QueryRequest, handler types.StreamHandler) (string, error) {
	system, history, err := s.prepare(ctx, req)
	if err != nil {
		return "", err
	}

	var full strings.Builder
	err = s.ai.ChatStream(ctx, system, history, req.InputText, func(delta string) {
		full.WriteString(delta)
		handler(delta)
	})
	if err != nil {
		return "", err
	}

	answer := full.String()
	return answer, s.remember(ctx, req, history, answer)
}

func (s *QueryService) prepare(ctx context.Context, req *types.QueryRequest) (string, []types.Message, error) {
	history, err := s.state.LoadMemory(ctx, req.UserID, req.BotID, req.KbID, req.SessionID)
	if err != nil {
		return "", nil, err
	}

	template, err := s.state.GetPromptTemplate(ctx, req.UserID, req.BotID)
	if err != nil {
		return "", nil, err
	}

	contextChunks, err := s.store.SearchSimilar(ctx, req.InputText, req.KbID, s.limit)
	if err != nil {
		return "", nil, err
	}

	return BuildSystemPrompt(template, contextChunks), history, nil
}

func (s *QueryService) remember(ctx context.Context, req *types.QueryRequest, history []types.Message, answer string) error {
	history = append(history,
		types.Message{Role: types.RoleUser, Content: req.InputText},
		types.Message{Role: types.RoleAssistant, Content: answer},
	)
	return s.state.SaveMemory(ctx, req.UserID, req.BotID, req.KbID, req.SessionID, history)
}
