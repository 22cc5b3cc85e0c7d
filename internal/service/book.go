// Package service orchestrates the note-taking, distillation, and
// content generation workflows on top of the store and the synthesis
// engine.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/id"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
)

// BookService manages the reader's bookshelf.
type BookService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(store *sqlite.Store, logger *slog.Logger) *BookService {
	return &BookService{store: store, logger: logger}
}

// CreateBookRequest holds the fields for adding a book.
type CreateBookRequest struct {
	Title      string `json:"title" validate:"required,max=500"`
	Author     string `json:"author,omitempty" validate:"max=500"`
	Category   string `json:"category,omitempty" validate:"max=100"`
	WhyReading string `json:"why_reading,omitempty" validate:"max=2000"`
	SpineColor string `json:"spine_color,omitempty" validate:"max=20"`
}

// CreateBook adds a book to the shelf with progress 0.
func (s *BookService) CreateBook(ctx context.Context, req CreateBookRequest) (*domain.Book, error) {
	bookID, err := id.Generate("book")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate book id")
	}

	now := time.Now()
	b := &domain.Book{
		ID:         bookID,
		Title:      req.Title,
		Author:     req.Author,
		Category:   req.Category,
		WhyReading: req.WhyReading,
		SpineColor: req.SpineColor,
		Progress:   0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.store.CreateBook(ctx, b); err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "create book")
	}

	s.logger.Info("book created", "book_id", b.ID, "title", b.Title)
	return b, nil
}

// GetBook returns a book by ID.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	b, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, errors.NotFound("Book not found")
	}
	return b, err
}

// ListBooks returns all books, newest first.
func (s *BookService) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	return s.store.ListBooks(ctx)
}

// UpdateBook applies a partial update to a book's metadata or progress.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, update domain.BookUpdate) (*domain.Book, error) {
	if update.Progress != nil && (*update.Progress < 0 || *update.Progress > 100) {
		return nil, errors.Validation("progress must be between 0 and 100")
	}

	b, err := s.store.UpdateBook(ctx, bookID, update)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, errors.NotFound("Book not found")
	}
	return b, err
}

// DeleteBook removes a book and all of its notes, ideas,
// conversations, and saved articles.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	err := s.store.DeleteBook(ctx, bookID)
	if errors.Is(err, errors.ErrNotFound) {
		return errors.NotFound("Book not found")
	}
	if err == nil {
		s.logger.Info("book deleted", "book_id", bookID)
	}
	return err
}
