package service

import (
	"context"
	"log/slog"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

// narrativeMinBooks is the smallest library slice a macro narrative
// can be woven from.
const narrativeMinBooks = 2

// NarrativeService weaves idea cards from multiple books into a
// cross-library narrative.
type NarrativeService struct {
	store  *sqlite.Store
	engine *synthesis.Engine
	logger *slog.Logger
}

// NewNarrativeService creates a new narrative service.
func NewNarrativeService(store *sqlite.Store, engine *synthesis.Engine, logger *slog.Logger) *NarrativeService {
	return &NarrativeService{store: store, engine: engine, logger: logger}
}

// BookIdeas is one book with all of its idea cards, for the narrative
// source picker.
type BookIdeas struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Author string         `json:"author"`
	Ideas  []*domain.Idea `json:"ideas"`
}

// ListBookIdeas returns every book with its idea cards, oldest book
// first. Books without ideas are included with an empty list.
func (s *NarrativeService) ListBookIdeas(ctx context.Context) ([]BookIdeas, error) {
	books, err := s.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return []BookIdeas{}, nil
	}

	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	ideasByBook, err := s.store.ListIdeasByBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	// ListBooks returns newest first; the picker shows oldest first.
	result := make([]BookIdeas, len(books))
	for i, b := range books {
		ideas := ideasByBook[b.ID]
		if ideas == nil {
			ideas = []*domain.Idea{}
		}
		result[len(books)-1-i] = BookIdeas{
			ID:     b.ID,
			Title:  b.Title,
			Author: b.Author,
			Ideas:  ideas,
		}
	}
	return result, nil
}

// Generate produces the macro narrative across books. An empty bookIDs
// slice means the whole library. Books without ideas are skipped; at
// least two books with ideas must remain.
func (s *NarrativeService) Generate(ctx context.Context, bookIDs []string) (*synthesis.NarrativeResult, error) {
	var (
		books []*domain.Book
		err   error
	)
	if len(bookIDs) > 0 {
		books, err = s.store.ListBooksByIDs(ctx, bookIDs)
	} else {
		books, err = s.store.ListBooks(ctx)
	}
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, errors.Validation("Need ideas from at least 2 books to generate a narrative")
	}

	ids := make([]string, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	ideasByBook, err := s.store.ListIdeasByBooks(ctx, ids)
	if err != nil {
		return nil, err
	}

	var withIdeas []synthesis.NarrativeBook
	for _, b := range books {
		ideas := ideasByBook[b.ID]
		if len(ideas) == 0 {
			continue
		}
		withIdeas = append(withIdeas, synthesis.NarrativeBook{
			Title:  b.Title,
			Author: b.Author,
			Ideas:  ideaRefs(ideas),
		})
	}
	if len(withIdeas) < narrativeMinBooks {
		return nil, errors.Validation("Need ideas from at least 2 books to generate a narrative")
	}

	return s.engine.Narrative(ctx, withIdeas)
}
