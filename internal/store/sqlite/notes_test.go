package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// makeTestNote inserts a note with sensible defaults.
func makeTestNote(t *testing.T, s *Store, id, bookID, chapter string) *domain.Note {
	t.Helper()
	now := time.Now()
	n := &domain.Note{
		ID:          id,
		BookID:      bookID,
		ChapterName: chapter,
		Content:     "raw notes for " + chapter,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	stored, err := s.UpsertNote(context.Background(), n)
	if err != nil {
		t.Fatalf("UpsertNote %s: %v", id, err)
	}
	return stored
}

func TestUpsertNote_InsertThenGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	makeTestNote(t, s, "note-1", "book-1", "Chapter 1")

	got, err := s.GetNote(ctx, "note-1")
	if err != nil {
		t.Fatalf("GetNote: %v", err)
	}
	if got.ChapterName != "Chapter 1" {
		t.Errorf("ChapterName: got %q, want %q", got.ChapterName, "Chapter 1")
	}
	if got.Content != "raw notes for Chapter 1" {
		t.Errorf("Content: got %q", got.Content)
	}
}

func TestUpsertNote_SameChapterReplacesContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	first := makeTestNote(t, s, "note-1", "book-1", "Chapter 1")

	now := time.Now()
	replaced, err := s.UpsertNote(ctx, &domain.Note{
		ID:           "note-2", // new ID is discarded on conflict
		BookID:       "book-1",
		ChapterName:  "Chapter 1",
		ChapterOrder: 3,
		Content:      "revised notes",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("UpsertNote replace: %v", err)
	}

	// The original row survives with new content.
	if replaced.ID != first.ID {
		t.Errorf("ID changed on upsert: got %q, want %q", replaced.ID, first.ID)
	}
	if replaced.Content != "revised notes" {
		t.Errorf("Content: got %q, want %q", replaced.Content, "revised notes")
	}
	if replaced.ChapterOrder != 3 {
		t.Errorf("ChapterOrder: got %d, want 3", replaced.ChapterOrder)
	}

	// Still exactly one note for the book.
	notes, err := s.ListNotesByBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("ListNotesByBook: %v", err)
	}
	if len(notes) != 1 {
		t.Errorf("expected 1 note, got %d", len(notes))
	}
}

func TestUpsertNote_DifferentChaptersCoexist(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	makeTestNote(t, s, "note-1", "book-1", "Chapter 1")
	makeTestNote(t, s, "note-2", "book-1", "Chapter 2")

	notes, err := s.ListNotesByBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("ListNotesByBook: %v", err)
	}
	if len(notes) != 2 {
		t.Errorf("expected 2 notes, got %d", len(notes))
	}
}

func TestUpsertNote_SameChapterDifferentBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "One")
	makeTestBook(t, s, "book-2", "Two")
	makeTestNote(t, s, "note-1", "book-1", "Introduction")
	makeTestNote(t, s, "note-2", "book-2", "Introduction")

	for _, bookID := range []string{"book-1", "book-2"} {
		notes, err := s.ListNotesByBook(ctx, bookID)
		if err != nil {
			t.Fatalf("ListNotesByBook %s: %v", bookID, err)
		}
		if len(notes) != 1 {
			t.Errorf("%s: expected 1 note, got %d", bookID, len(notes))
		}
	}
}

func TestListNotesByBook_ChapterOrder(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")

	now := time.Now()
	for _, tc := range []struct {
		id      string
		chapter string
		order   int
	}{
		{"note-c", "Chapter 3", 3},
		{"note-a", "Chapter 1", 1},
		{"note-b", "Chapter 2", 2},
	} {
		_, err := s.UpsertNote(ctx, &domain.Note{
			ID: tc.id, BookID: "book-1", ChapterName: tc.chapter,
			ChapterOrder: tc.order, CreatedAt: now, UpdatedAt: now,
		})
		if err != nil {
			t.Fatalf("UpsertNote %s: %v", tc.id, err)
		}
	}

	notes, err := s.ListNotesByBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("ListNotesByBook: %v", err)
	}
	if len(notes) != 3 {
		t.Fatalf("expected 3 notes, got %d", len(notes))
	}
	for i, want := range []string{"Chapter 1", "Chapter 2", "Chapter 3"} {
		if notes[i].ChapterName != want {
			t.Errorf("notes[%d]: got %q, want %q", i, notes[i].ChapterName, want)
		}
	}
}

func TestUpdateNoteContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	makeTestNote(t, s, "note-1", "book-1", "Chapter 1")

	got, err := s.UpdateNoteContent(ctx, "note-1", "edited")
	if err != nil {
		t.Fatalf("UpdateNoteContent: %v", err)
	}
	if got.Content != "edited" {
		t.Errorf("Content: got %q, want %q", got.Content, "edited")
	}
}

func TestDeleteNote(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	makeTestNote(t, s, "note-1", "book-1", "Chapter 1")

	if err := s.DeleteNote(ctx, "note-1"); err != nil {
		t.Fatalf("DeleteNote: %v", err)
	}

	_, err := s.GetNote(ctx, "note-1")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if err := s.DeleteNote(ctx, "note-1"); !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
