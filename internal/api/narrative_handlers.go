package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

func (s *Server) registerNarrativeRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listNarrativeIdeas",
		Method:      http.MethodGet,
		Path:        "/api/narrative/ideas",
		Summary:     "List books with ideas",
		Description: "Returns every book with its idea cards, for the narrative source picker",
		Tags:        []string{"Narrative"},
	}, s.handleListNarrativeIdeas)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateNarrative",
		Method:      http.MethodPost,
		Path:        "/api/narrative",
		Summary:     "Generate macro narrative",
		Description: "Weaves idea cards from at least two books into themes and a narrative",
		Tags:        []string{"Narrative"},
	}, s.handleGenerateNarrative)
}

// === DTOs ===

// NarrativeBookResponse is one book with its idea cards.
type NarrativeBookResponse struct {
	ID     string         `json:"id" doc:"Book ID"`
	Title  string         `json:"title" doc:"Book title"`
	Author string         `json:"author,omitempty" doc:"Author name"`
	Ideas  []IdeaResponse `json:"ideas" doc:"The book's idea cards"`
}

// NarrativeIdeasResponse lists all books with their ideas.
type NarrativeIdeasResponse struct {
	Books []NarrativeBookResponse `json:"books" doc:"Books with grouped idea cards"`
}

// NarrativeIdeasOutput wraps the book list for Huma.
type NarrativeIdeasOutput struct {
	Body NarrativeIdeasResponse
}

// GenerateNarrativeRequest is the request body for narrative generation.
type GenerateNarrativeRequest struct {
	BookIDs []string `json:"book_ids,omitempty" doc:"Optional book subset; empty means the whole library"`
}

// GenerateNarrativeInput wraps the narrative request for Huma.
type GenerateNarrativeInput struct {
	Body GenerateNarrativeRequest
}

// NarrativeOutput wraps the narrative result for Huma.
type NarrativeOutput struct {
	Body synthesis.NarrativeResult
}

// === Handlers ===

func (s *Server) handleListNarrativeIdeas(ctx context.Context, _ *struct{}) (*NarrativeIdeasOutput, error) {
	books, err := s.services.Narrative.ListBookIdeas(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]NarrativeBookResponse, len(books))
	for i, b := range books {
		resp[i] = narrativeBookResponse(b)
	}

	return &NarrativeIdeasOutput{Body: NarrativeIdeasResponse{Books: resp}}, nil
}

func narrativeBookResponse(b service.BookIdeas) NarrativeBookResponse {
	return NarrativeBookResponse{
		ID:     b.ID,
		Title:  b.Title,
		Author: b.Author,
		Ideas:  ideaResponses(b.Ideas),
	}
}

func (s *Server) handleGenerateNarrative(ctx context.Context, input *GenerateNarrativeInput) (*NarrativeOutput, error) {
	result, err := s.services.Narrative.Generate(ctx, input.Body.BookIDs)
	if err != nil {
		return nil, err
	}

	return &NarrativeOutput{Body: *result}, nil
}
