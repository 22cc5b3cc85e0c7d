package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/websearch"
)

func (s *Server) registerSearchRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "searchArticles",
		Method:      http.MethodPost,
		Path:        "/api/search",
		Summary:     "Find articles",
		Description: "Finds blog articles about a book or concept, with stance classification against the book's thesis",
		Tags:        []string{"Search"},
	}, s.handleSearchArticles)

	huma.Register(s.api, huma.Operation{
		OperationID: "listSavedArticles",
		Method:      http.MethodGet,
		Path:        "/api/search/saved",
		Summary:     "List saved articles",
		Description: "Returns a book's previously found articles, newest first",
		Tags:        []string{"Search"},
	}, s.handleListSavedArticles)

	huma.Register(s.api, huma.Operation{
		OperationID: "searchScholar",
		Method:      http.MethodPost,
		Path:        "/api/search/scholar",
		Summary:     "Find academic works",
		Description: "Searches Crossref for scholarly works about a concept",
		Tags:        []string{"Search"},
	}, s.handleSearchScholar)
}

// === DTOs ===

// ArticleResponse contains article data in API responses.
type ArticleResponse struct {
	ID        string    `json:"id" doc:"Article ID"`
	BookID    string    `json:"book_id" doc:"Owning book ID"`
	Title     string    `json:"title" doc:"Article title"`
	URL       string    `json:"url" doc:"Article URL"`
	Domain    string    `json:"domain" doc:"Source domain"`
	Snippet   string    `json:"snippet,omitempty" doc:"Search snippet"`
	Favicon   string    `json:"favicon,omitempty" doc:"Favicon URL"`
	Stance    string    `json:"stance" doc:"Stance toward the book's thesis"`
	CreatedAt time.Time `json:"created_at" doc:"Creation time"`
}

// SearchArticlesInput wraps the search request for Huma.
type SearchArticlesInput struct {
	Body service.SearchRequest
}

// SearchArticlesOutput wraps the search results for Huma.
type SearchArticlesOutput struct {
	Body []ArticleResponse
}

// ListSavedArticlesInput contains parameters for listing saved articles.
type ListSavedArticlesInput struct {
	BookID string `query:"book_id" required:"true" doc:"Book ID"`
}

// ScholarInput wraps the scholar search request for Huma.
type ScholarInput struct {
	Body service.ScholarRequest
}

// ScholarOutput wraps the scholar results for Huma.
type ScholarOutput struct {
	Body []websearch.Paper
}

func articleResponses(articles []*domain.Article) []ArticleResponse {
	resp := make([]ArticleResponse, len(articles))
	for i, a := range articles {
		resp[i] = ArticleResponse{
			ID:        a.ID,
			BookID:    a.BookID,
			Title:     a.Title,
			URL:       a.URL,
			Domain:    a.Domain,
			Snippet:   a.Snippet,
			Favicon:   a.Favicon,
			Stance:    string(a.Stance),
			CreatedAt: a.CreatedAt,
		}
	}
	return resp
}

// === Handlers ===

func (s *Server) handleSearchArticles(ctx context.Context, input *SearchArticlesInput) (*SearchArticlesOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	articles, err := s.services.Research.Search(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &SearchArticlesOutput{Body: articleResponses(articles)}, nil
}

func (s *Server) handleListSavedArticles(ctx context.Context, input *ListSavedArticlesInput) (*SearchArticlesOutput, error) {
	articles, err := s.services.Research.SavedArticles(ctx, input.BookID)
	if err != nil {
		return nil, err
	}

	return &SearchArticlesOutput{Body: articleResponses(articles)}, nil
}

func (s *Server) handleSearchScholar(ctx context.Context, input *ScholarInput) (*ScholarOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	papers, err := s.services.Research.Scholar(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ScholarOutput{Body: papers}, nil
}
