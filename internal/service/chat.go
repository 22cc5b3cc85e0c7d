package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/id"
	"github.com/writeflowapp/writeflow-server/internal/llm"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

// defaultHistoryLimit caps history reads when the caller gives no limit.
const defaultHistoryLimit = 40

// ChatService runs the AI reading partner and writing suggestions.
type ChatService struct {
	store     *sqlite.Store
	engine    *synthesis.Engine
	assembler *ContextAssembler
	logger    *slog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(store *sqlite.Store, engine *synthesis.Engine, assembler *ContextAssembler, logger *slog.Logger) *ChatService {
	return &ChatService{store: store, engine: engine, assembler: assembler, logger: logger}
}

// ChatTurn is one prior exchange supplied by the client.
type ChatTurn struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

// ChatRequest holds a reading-partner message.
type ChatRequest struct {
	BookID      string     `json:"book_id" validate:"required"`
	Message     string     `json:"message" validate:"required"`
	History     []ChatTurn `json:"conversation_history,omitempty" validate:"dive"`
	LibraryMode bool       `json:"library_mode,omitempty"`
}

// Chat generates a reading-partner reply grounded in the book's notes
// and idea cards, then records the exchange. A failed record is logged
// but never costs the caller the reply.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (string, error) {
	cc, err := s.assembler.ChatContext(ctx, req.BookID, req.LibraryMode)
	if err != nil {
		return "", err
	}

	history := make([]llm.Message, len(req.History))
	for i, t := range req.History {
		history[i] = llm.Message{Role: t.Role, Content: t.Content}
	}

	reply, err := s.engine.ChatReply(ctx, synthesis.ChatInput{
		BookTitle:   cc.Book.Title,
		Author:      cc.Book.Author,
		Notes:       cc.Notes,
		IdeaCards:   ideaRefs(cc.Ideas),
		History:     history,
		UserMessage: req.Message,
		Library:     cc.Library,
	})
	if err != nil {
		return "", err
	}

	if err := s.recordExchange(ctx, req.BookID, req.Message, reply); err != nil {
		s.logger.Warn("record conversation failed", "book_id", req.BookID, "error", err)
	}

	return reply, nil
}

// recordExchange appends the user message and assistant reply as a pair.
func (s *ChatService) recordExchange(ctx context.Context, bookID, message, reply string) error {
	userID, err := id.Generate("turn")
	if err != nil {
		return err
	}
	assistantID, err := id.Generate("turn")
	if err != nil {
		return err
	}

	now := time.Now()
	return s.store.AppendTurns(ctx,
		&domain.Turn{ID: userID, BookID: bookID, Role: domain.RoleUser, Content: message, CreatedAt: now},
		&domain.Turn{ID: assistantID, BookID: bookID, Role: domain.RoleAssistant, Content: reply, CreatedAt: now},
	)
}

// History returns a book's recorded conversation, oldest first.
func (s *ChatService) History(ctx context.Context, bookID string, limit int) ([]*domain.Turn, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.store.ListTurnsByBook(ctx, bookID, limit)
}

// SuggestRequest holds a draft to continue.
type SuggestRequest struct {
	BookID      string `json:"book_id" validate:"required"`
	CurrentText string `json:"current_text" validate:"required"`
}

// Suggest continues a draft in the writer's direction using the book's
// idea cards as grounding.
func (s *ChatService) Suggest(ctx context.Context, req SuggestRequest) (string, error) {
	bc, err := s.assembler.BookWithIdeas(ctx, req.BookID, suggestIdeasCap)
	if err != nil {
		return "", err
	}

	return s.engine.SuggestWriting(ctx, synthesis.SuggestInput{
		BookTitle:   bc.Book.Title,
		Author:      bc.Book.Author,
		CurrentText: req.CurrentText,
		IdeaCards:   ideaRefs(bc.Ideas),
	})
}
