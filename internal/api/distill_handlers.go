package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/service"
)

func (s *Server) registerDistillRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "distillNotes",
		Method:      http.MethodPost,
		Path:        "/api/distill",
		Summary:     "Distil notes",
		Description: "Turns raw chapter notes into 3-5 saved idea cards",
		Tags:        []string{"Distill"},
	}, s.handleDistill)

	huma.Register(s.api, huma.Operation{
		OperationID: "listIdeas",
		Method:      http.MethodGet,
		Path:        "/api/distill",
		Summary:     "List idea cards",
		Description: "Returns a book's idea cards in number order",
		Tags:        []string{"Distill"},
	}, s.handleListIdeas)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteIdea",
		Method:      http.MethodDelete,
		Path:        "/api/distill/{id}",
		Summary:     "Delete idea card",
		Tags:        []string{"Distill"},
	}, s.handleDeleteIdea)
}

// === DTOs ===

// IdeaResponse contains idea card data in API responses.
type IdeaResponse struct {
	ID          string    `json:"id" doc:"Idea ID"`
	BookID      string    `json:"book_id" doc:"Owning book ID"`
	ChapterName string    `json:"chapter_name,omitempty" doc:"Source chapter"`
	Title       string    `json:"title" doc:"Punchy idea title"`
	Body        string    `json:"body" doc:"The insight"`
	Tags        []string  `json:"tags" doc:"Topic tags"`
	Number      int       `json:"number" doc:"Card number within the book"`
	CreatedAt   time.Time `json:"created_at" doc:"Creation time"`
}

// DistillInput wraps the distill request for Huma.
type DistillInput struct {
	Body service.DistillRequest
}

// DistillResponse carries generated cards and their persistence state.
type DistillResponse struct {
	Ideas []IdeaResponse `json:"ideas" doc:"Generated idea cards"`
	Saved bool           `json:"saved" doc:"Whether the cards were persisted"`
}

// DistillOutput wraps the distill response for Huma.
type DistillOutput struct {
	Body DistillResponse
}

// ListIdeasInput contains parameters for listing idea cards.
type ListIdeasInput struct {
	BookID string `query:"book_id" required:"true" doc:"Book ID"`
}

// ListIdeasOutput wraps the idea list for Huma.
type ListIdeasOutput struct {
	Body []IdeaResponse
}

// DeleteIdeaInput contains parameters for deleting an idea card.
type DeleteIdeaInput struct {
	ID string `path:"id" doc:"Idea ID"`
}

func ideaResponse(i *domain.Idea) IdeaResponse {
	tags := i.Tags
	if tags == nil {
		tags = []string{}
	}
	return IdeaResponse{
		ID:          i.ID,
		BookID:      i.BookID,
		ChapterName: i.ChapterName,
		Title:       i.Title,
		Body:        i.Body,
		Tags:        tags,
		Number:      i.Number,
		CreatedAt:   i.CreatedAt,
	}
}

func ideaResponses(ideas []*domain.Idea) []IdeaResponse {
	resp := make([]IdeaResponse, len(ideas))
	for i, idea := range ideas {
		resp[i] = ideaResponse(idea)
	}
	return resp
}

// === Handlers ===

func (s *Server) handleDistill(ctx context.Context, input *DistillInput) (*DistillOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	result, err := s.services.Distill.Distill(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &DistillOutput{
		Body: DistillResponse{
			Ideas: ideaResponses(result.Ideas),
			Saved: result.Saved,
		},
	}, nil
}

func (s *Server) handleListIdeas(ctx context.Context, input *ListIdeasInput) (*ListIdeasOutput, error) {
	ideas, err := s.services.Distill.ListIdeas(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	return &ListIdeasOutput{Body: ideaResponses(ideas)}, nil
}

func (s *Server) handleDeleteIdea(ctx context.Context, input *DeleteIdeaInput) (*SuccessOutput, error) {
	if err := s.services.Distill.DeleteIdea(ctx, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}
