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

// NoteService manages per-chapter raw notes.
type NoteService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewNoteService creates a new note service.
func NewNoteService(store *sqlite.Store, logger *slog.Logger) *NoteService {
	return &NoteService{store: store, logger: logger}
}

// SaveNoteRequest holds the fields for creating or replacing a chapter note.
type SaveNoteRequest struct {
	BookID       string `json:"book_id" validate:"required"`
	ChapterName  string `json:"chapter_name" validate:"required,max=500"`
	ChapterOrder int    `json:"chapter_order,omitempty" validate:"gte=0"`
	Content      string `json:"content,omitempty"`
}

// SaveNote creates a chapter note, or replaces the content of the
// existing (book, chapter) note.
func (s *NoteService) SaveNote(ctx context.Context, req SaveNoteRequest) (*domain.Note, error) {
	if _, err := s.store.GetBook(ctx, req.BookID); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("Book not found")
		}
		return nil, err
	}

	noteID, err := id.Generate("note")
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "generate note id")
	}

	now := time.Now()
	n, err := s.store.UpsertNote(ctx, &domain.Note{
		ID:           noteID,
		BookID:       req.BookID,
		ChapterName:  req.ChapterName,
		ChapterOrder: req.ChapterOrder,
		Content:      req.Content,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "save note")
	}

	return n, nil
}

// ListNotes returns a book's notes in chapter order.
func (s *NoteService) ListNotes(ctx context.Context, bookID string) ([]*domain.Note, error) {
	return s.store.ListNotesByBook(ctx, bookID)
}

// UpdateNoteContent replaces a note's content.
func (s *NoteService) UpdateNoteContent(ctx context.Context, noteID, content string) (*domain.Note, error) {
	n, err := s.store.UpdateNoteContent(ctx, noteID, content)
	if errors.Is(err, errors.ErrNotFound) {
		return nil, errors.NotFound("Note not found")
	}
	return n, err
}

// DeleteNote removes a chapter note.
func (s *NoteService) DeleteNote(ctx context.Context, noteID string) error {
	err := s.store.DeleteNote(ctx, noteID)
	if errors.Is(err, errors.ErrNotFound) {
		return errors.NotFound("Note not found")
	}
	return err
}
