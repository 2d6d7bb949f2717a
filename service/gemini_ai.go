package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/yeabsiraa/ragbot-be/types"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// GeminiService talks to the Gemini API. It rotates between the
// configured API keys when a request fails, which rides out per-key
// quota exhaustion.
type GeminiService struct {
	apiKeys     []string
	currentKey  int
	client      *genai.Client
	modelName   string
	temperature float32
	mu          sync.Mutex
}

func NewGeminiService(apiKeys []string, modelName string, temperature float32) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}

	service := &GeminiService{
		apiKeys:     apiKeys,
		currentKey:  0,
		modelName:   modelName,
		temperature: temperature,
	}

	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

// newSession builds a fresh model and chat session. The system prompt
// changes per bot, so the model cannot be shared across calls.
func (s *GeminiService) newSession(system string, history []types.Message) *genai.ChatSession {
	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(s.temperature)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Role == types.RoleAssistant {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Parts: []genai.Part{genai.Text(msg.Content)},
			Role:  role,
		})
	}

	chat := model.StartChat()
	chat.History = contents
	return chat
}

func (s *GeminiService) Chat(ctx context.Context, system string, history []types.Message, input string) (string, error) {
	chat := s.newSession(system, history)
	resp, err := chat.SendMessage(ctx, genai.Text(input))
	if err != nil {
		// Try rotating API key if there's an error
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		chat = s.newSession(system, history)
		resp, err = chat.SendMessage(ctx, genai.Text(input))
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					content += string(text)
				}
			}
		}
	}
	return content, nil
}

func (s *GeminiService) ChatStream(ctx context.Context, system string, history []types.Message, input string, handler types.StreamHandler) error {
	chat := s.newSession(system, history)
	iter := chat.SendMessageStream(ctx, genai.Text(input))

	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			// Try the next key once before giving up
			if err := s.rotateAPIKey(); err != nil {
				return err
			}
			chat = s.newSession(system, history)
			iter = chat.SendMessageStream(ctx, genai.Text(input))
			resp, err = iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
		}

		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					handler(string(text))
				}
			}
		}
	}
	return nil
}
