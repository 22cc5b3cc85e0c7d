package sqlite

import (
	"context"
	"testing"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

func TestCreateAndGetBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	b := makeTestBook(t, s, "book-1", "Thinking in Systems")

	got, err := s.GetBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("GetBook: %v", err)
	}

	if got.ID != b.ID {
		t.Errorf("ID: got %q, want %q", got.ID, b.ID)
	}
	if got.Title != b.Title {
		t.Errorf("Title: got %q, want %q", got.Title, b.Title)
	}
	if got.Author != b.Author {
		t.Errorf("Author: got %q, want %q", got.Author, b.Author)
	}
	if got.Progress != 0 {
		t.Errorf("Progress: got %d, want 0", got.Progress)
	}

	// Timestamps should round-trip through RFC3339Nano.
	if got.CreatedAt.Unix() != b.CreatedAt.Unix() {
		t.Errorf("CreatedAt: got %v, want %v", got.CreatedAt, b.CreatedAt)
	}
}

func TestGetBook_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetBook(context.Background(), "nonexistent")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListBooks_NewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-old", "First")
	// Make creation times distinct.
	b := makeTestBook(t, s, "book-new", "Second")
	b.CreatedAt = b.CreatedAt.Add(1)

	books, err := s.ListBooks(ctx)
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}
}

func TestListBooks_Empty(t *testing.T) {
	s := newTestStore(t)

	books, err := s.ListBooks(context.Background())
	if err != nil {
		t.Fatalf("ListBooks: %v", err)
	}
	if books == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(books) != 0 {
		t.Errorf("expected 0 books, got %d", len(books))
	}
}

func TestListBooksByIDs(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-a", "A")
	makeTestBook(t, s, "book-b", "B")
	makeTestBook(t, s, "book-c", "C")

	books, err := s.ListBooksByIDs(ctx, []string{"book-a", "book-c", "book-missing"})
	if err != nil {
		t.Fatalf("ListBooksByIDs: %v", err)
	}
	if len(books) != 2 {
		t.Fatalf("expected 2 books, got %d", len(books))
	}

	// Empty input returns an empty slice without querying.
	none, err := s.ListBooksByIDs(ctx, nil)
	if err != nil {
		t.Fatalf("ListBooksByIDs empty: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected 0 books, got %d", len(none))
	}
}

func TestUpdateBook_PartialFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Original Title")

	progress := 42
	title := "New Title"
	got, err := s.UpdateBook(ctx, "book-1", domain.BookUpdate{
		Title:    &title,
		Progress: &progress,
	})
	if err != nil {
		t.Fatalf("UpdateBook: %v", err)
	}

	if got.Title != "New Title" {
		t.Errorf("Title: got %q, want %q", got.Title, "New Title")
	}
	if got.Progress != 42 {
		t.Errorf("Progress: got %d, want 42", got.Progress)
	}
	// Untouched field survives.
	if got.Author != "Test Author" {
		t.Errorf("Author: got %q, want %q", got.Author, "Test Author")
	}
}

func TestUpdateBook_NotFound(t *testing.T) {
	s := newTestStore(t)

	title := "x"
	_, err := s.UpdateBook(context.Background(), "nonexistent", domain.BookUpdate{Title: &title})
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteBook_CascadesChildren(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Doomed")
	makeTestNote(t, s, "note-1", "book-1", "Chapter 1")
	makeTestIdeas(t, s, "book-1", 2)

	if err := s.DeleteBook(ctx, "book-1"); err != nil {
		t.Fatalf("DeleteBook: %v", err)
	}

	notes, err := s.ListNotesByBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("ListNotesByBook: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected notes to cascade, got %d", len(notes))
	}

	ideas, err := s.ListIdeasByBook(ctx, "book-1", 0)
	if err != nil {
		t.Fatalf("ListIdeasByBook: %v", err)
	}
	if len(ideas) != 0 {
		t.Errorf("expected ideas to cascade, got %d", len(ideas))
	}
}

func TestDeleteBook_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteBook(context.Background(), "nonexistent")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
