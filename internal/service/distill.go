package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/id"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

// DistillService turns raw chapter notes into persisted idea cards.
type DistillService struct {
	store  *sqlite.Store
	engine *synthesis.Engine
	logger *slog.Logger
}

// NewDistillService creates a new distillation service.
func NewDistillService(store *sqlite.Store, engine *synthesis.Engine, logger *slog.Logger) *DistillService {
	return &DistillService{store: store, engine: engine, logger: logger}
}

// DistillRequest holds the notes to distil.
type DistillRequest struct {
	BookID      string `json:"book_id" validate:"required"`
	ChapterName string `json:"chapter_name,omitempty"`
	RawNotes    string `json:"raw_notes" validate:"required"`
}

// DistillResult carries the generated cards and whether they were
// persisted. A failed save still returns the cards with Saved false
// rather than discarding the generation.
type DistillResult struct {
	Ideas []*domain.Idea
	Saved bool
}

// Distill generates insight cards from raw notes and saves them,
// numbering new cards after the book's existing ones.
func (s *DistillService) Distill(ctx context.Context, req DistillRequest) (*DistillResult, error) {
	book, err := s.store.GetBook(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("Book not found")
		}
		return nil, err
	}

	existing, err := s.store.ListIdeasByBook(ctx, req.BookID, 0)
	if err != nil {
		return nil, err
	}

	chapterName := req.ChapterName
	if chapterName == "" {
		chapterName = "Unknown Chapter"
	}

	cards, err := s.engine.Distill(ctx, synthesis.DistillInput{
		BookTitle:     book.Title,
		Author:        book.Author,
		ChapterName:   chapterName,
		RawNotes:      req.RawNotes,
		ExistingIdeas: ideaRefs(existing),
	})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	ideas := make([]*domain.Idea, 0, len(cards))
	for i, card := range cards {
		ideaID, err := id.Generate("idea")
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "generate idea id")
		}
		tags := card.Tags
		if tags == nil {
			tags = []string{}
		}
		ideas = append(ideas, &domain.Idea{
			ID:          ideaID,
			BookID:      req.BookID,
			ChapterName: req.ChapterName,
			Title:       card.Title,
			Body:        card.Body,
			Tags:        tags,
			Number:      len(existing) + i + 1,
			CreatedAt:   now,
		})
	}

	if err := s.store.InsertIdeas(ctx, ideas); err != nil {
		// Return the cards anyway so the generation isn't lost.
		s.logger.Error("persist ideas failed", "book_id", req.BookID, "error", err)
		return &DistillResult{Ideas: ideas, Saved: false}, nil
	}

	s.logger.Info("notes distilled", "book_id", req.BookID, "cards", len(ideas))
	return &DistillResult{Ideas: ideas, Saved: true}, nil
}

// ListIdeas returns all of a book's idea cards in number order.
func (s *DistillService) ListIdeas(ctx context.Context, bookID string) ([]*domain.Idea, error) {
	return s.store.ListIdeasByBook(ctx, bookID, 0)
}

// DeleteIdea removes an idea card. Numbers of the remaining cards are
// never reassigned.
func (s *DistillService) DeleteIdea(ctx context.Context, ideaID string) error {
	err := s.store.DeleteIdea(ctx, ideaID)
	if errors.Is(err, errors.ErrNotFound) {
		return errors.NotFound("Idea not found")
	}
	return err
}
