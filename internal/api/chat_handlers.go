package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/service"
)

func (s *Server) registerChatRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "chat",
		Method:      http.MethodPost,
		Path:        "/api/chat",
		Summary:     "Chat with reading partner",
		Description: "Sends a message to the AI reading partner grounded in the book's notes and ideas",
		Tags:        []string{"Chat"},
	}, s.handleChat)

	huma.Register(s.api, huma.Operation{
		OperationID: "chatHistory",
		Method:      http.MethodGet,
		Path:        "/api/chat/history",
		Summary:     "Conversation history",
		Description: "Returns a book's recorded conversation, oldest first",
		Tags:        []string{"Chat"},
	}, s.handleChatHistory)

	huma.Register(s.api, huma.Operation{
		OperationID: "suggestWriting",
		Method:      http.MethodPost,
		Path:        "/api/chat/suggest",
		Summary:     "Writing suggestion",
		Description: "Continues a draft in the writer's direction using the book's idea cards",
		Tags:        []string{"Chat"},
	}, s.handleSuggest)
}

// === DTOs ===

// ChatInput wraps the chat request for Huma.
type ChatInput struct {
	Body service.ChatRequest
}

// ChatResponse carries the reading partner's reply.
type ChatResponse struct {
	Reply string `json:"reply" doc:"Assistant reply"`
}

// ChatOutput wraps the chat response for Huma.
type ChatOutput struct {
	Body ChatResponse
}

// ChatHistoryInput contains parameters for fetching history.
type ChatHistoryInput struct {
	BookID string `query:"book_id" required:"true" doc:"Book ID"`
	Limit  int    `query:"limit" doc:"Maximum turns to return (default 40)"`
}

// TurnResponse contains one conversation turn in API responses.
type TurnResponse struct {
	Role      string    `json:"role" doc:"Turn author: user or assistant"`
	Content   string    `json:"content" doc:"Turn content"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// ChatHistoryOutput wraps the history response for Huma.
type ChatHistoryOutput struct {
	Body []TurnResponse
}

// SuggestInput wraps the suggest request for Huma.
type SuggestInput struct {
	Body service.SuggestRequest
}

// SuggestResponse carries the writing suggestion.
type SuggestResponse struct {
	Suggestion string `json:"suggestion" doc:"Suggested continuation"`
}

// SuggestOutput wraps the suggest response for Huma.
type SuggestOutput struct {
	Body SuggestResponse
}

// === Handlers ===

func (s *Server) handleChat(ctx context.Context, input *ChatInput) (*ChatOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	reply, err := s.services.Chat.Chat(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ChatOutput{Body: ChatResponse{Reply: reply}}, nil
}

func (s *Server) handleChatHistory(ctx context.Context, input *ChatHistoryInput) (*ChatHistoryOutput, error) {
	turns, err := s.services.Chat.History(ctx, input.BookID, input.Limit)
	if err != nil {
		return nil, err
	}

	resp := make([]TurnResponse, len(turns))
	for i, t := range turns {
		resp[i] = TurnResponse{
			Role:      t.Role,
			Content:   t.Content,
			CreatedAt: t.CreatedAt,
		}
	}

	return &ChatHistoryOutput{Body: resp}, nil
}

func (s *Server) handleSuggest(ctx context.Context, input *SuggestInput) (*SuggestOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	suggestion, err := s.services.Chat.Suggest(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &SuggestOutput{Body: SuggestResponse{Suggestion: suggestion}}, nil
}
