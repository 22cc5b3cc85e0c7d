package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/service"
)

func (s *Server) registerBookRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "listBooks",
		Method:      http.MethodGet,
		Path:        "/api/books",
		Summary:     "List books",
		Description: "Returns all books on the shelf, newest first",
		Tags:        []string{"Books"},
	}, s.handleListBooks)

	huma.Register(s.api, huma.Operation{
		OperationID:   "createBook",
		Method:        http.MethodPost,
		Path:          "/api/books",
		Summary:       "Add book",
		Tags:          []string{"Books"},
		DefaultStatus: http.StatusCreated,
	}, s.handleCreateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "getBook",
		Method:      http.MethodGet,
		Path:        "/api/books/{id}",
		Summary:     "Get book",
		Tags:        []string{"Books"},
	}, s.handleGetBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "updateBook",
		Method:      http.MethodPatch,
		Path:        "/api/books/{id}",
		Summary:     "Update book",
		Description: "Updates reading progress or metadata",
		Tags:        []string{"Books"},
	}, s.handleUpdateBook)

	huma.Register(s.api, huma.Operation{
		OperationID: "deleteBook",
		Method:      http.MethodDelete,
		Path:        "/api/books/{id}",
		Summary:     "Delete book",
		Description: "Deletes a book and all of its notes, ideas, conversations, and articles",
		Tags:        []string{"Books"},
	}, s.handleDeleteBook)
}

// === DTOs ===

// BookResponse contains book data in API responses.
type BookResponse struct {
	ID         string    `json:"id" doc:"Book ID"`
	Title      string    `json:"title" doc:"Book title"`
	Author     string    `json:"author,omitempty" doc:"Author name"`
	Category   string    `json:"category,omitempty" doc:"Shelf category"`
	WhyReading string    `json:"why_reading,omitempty" doc:"Why the reader picked this book"`
	SpineColor string    `json:"spine_color,omitempty" doc:"Display spine color"`
	Progress   int       `json:"progress" doc:"Reading progress, 0-100"`
	CreatedAt  time.Time `json:"created_at" doc:"Creation time"`
	UpdatedAt  time.Time `json:"updated_at" doc:"Last update time"`
}

// ListBooksOutput wraps the book list for Huma.
type ListBooksOutput struct {
	Body []BookResponse
}

// CreateBookInput wraps the create book request for Huma.
type CreateBookInput struct {
	Body service.CreateBookRequest
}

// BookOutput wraps a single book response for Huma.
type BookOutput struct {
	Body BookResponse
}

// GetBookInput contains parameters for fetching a book.
type GetBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

// UpdateBookRequest is the request body for updating a book.
type UpdateBookRequest struct {
	Title      *string `json:"title,omitempty" validate:"omitempty,min=1,max=500" doc:"Book title"`
	Author     *string `json:"author,omitempty" validate:"omitempty,max=500" doc:"Author name"`
	Category   *string `json:"category,omitempty" validate:"omitempty,max=100" doc:"Shelf category"`
	WhyReading *string `json:"why_reading,omitempty" validate:"omitempty,max=2000" doc:"Why the reader picked this book"`
	SpineColor *string `json:"spine_color,omitempty" validate:"omitempty,max=20" doc:"Display spine color"`
	Progress   *int    `json:"progress,omitempty" doc:"Reading progress, 0-100"`
}

// UpdateBookInput wraps the update book request for Huma.
type UpdateBookInput struct {
	ID   string `path:"id" doc:"Book ID"`
	Body UpdateBookRequest
}

// DeleteBookInput contains parameters for deleting a book.
type DeleteBookInput struct {
	ID string `path:"id" doc:"Book ID"`
}

func bookResponse(b *domain.Book) BookResponse {
	return BookResponse{
		ID:         b.ID,
		Title:      b.Title,
		Author:     b.Author,
		Category:   b.Category,
		WhyReading: b.WhyReading,
		SpineColor: b.SpineColor,
		Progress:   b.Progress,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleListBooks(ctx context.Context, _ *struct{}) (*ListBooksOutput, error) {
	books, err := s.services.Books.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	resp := make([]BookResponse, len(books))
	for i, b := range books {
		resp[i] = bookResponse(b)
	}

	return &ListBooksOutput{Body: resp}, nil
}

func (s *Server) handleCreateBook(ctx context.Context, input *CreateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	b, err := s.services.Books.CreateBook(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: bookResponse(b)}, nil
}

func (s *Server) handleGetBook(ctx context.Context, input *GetBookInput) (*BookOutput, error) {
	b, err := s.services.Books.GetBook(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: bookResponse(b)}, nil
}

func (s *Server) handleUpdateBook(ctx context.Context, input *UpdateBookInput) (*BookOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	b, err := s.services.Books.UpdateBook(ctx, input.ID, domain.BookUpdate{
		Title:      input.Body.Title,
		Author:     input.Body.Author,
		Category:   input.Body.Category,
		WhyReading: input.Body.WhyReading,
		SpineColor: input.Body.SpineColor,
		Progress:   input.Body.Progress,
	})
	if err != nil {
		return nil, err
	}

	return &BookOutput{Body: bookResponse(b)}, nil
}

func (s *Server) handleDeleteBook(ctx context.Context, input *DeleteBookInput) (*SuccessOutput, error) {
	if err := s.services.Books.DeleteBook(ctx, input.ID); err != nil {
		return nil, err
	}

	return &SuccessOutput{Body: SuccessResponse{Success: true}}, nil
}
