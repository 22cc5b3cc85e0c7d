package sqlite

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// makeTestIdeas inserts count idea cards for a book, numbered from 1.
func makeTestIdeas(t *testing.T, s *Store, bookID string, count int) []*domain.Idea {
	t.Helper()
	now := time.Now()
	ideas := make([]*domain.Idea, 0, count)
	for i := 1; i <= count; i++ {
		ideas = append(ideas, &domain.Idea{
			ID:        fmt.Sprintf("idea-%s-%d", bookID, i),
			BookID:    bookID,
			Title:     fmt.Sprintf("Insight %d", i),
			Body:      "Body text.",
			Tags:      []string{"SYSTEMS", "FEEDBACK"},
			Number:    i,
			CreatedAt: now,
		})
	}
	if err := s.InsertIdeas(context.Background(), ideas); err != nil {
		t.Fatalf("InsertIdeas: %v", err)
	}
	return ideas
}

func TestInsertAndListIdeas(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	makeTestIdeas(t, s, "book-1", 3)

	ideas, err := s.ListIdeasByBook(ctx, "book-1", 0)
	if err != nil {
		t.Fatalf("ListIdeasByBook: %v", err)
	}
	if len(ideas) != 3 {
		t.Fatalf("expected 3 ideas, got %d", len(ideas))
	}

	// Card-number order, tags round-trip through JSON.
	for i, idea := range ideas {
		if idea.Number != i+1 {
			t.Errorf("ideas[%d].Number: got %d, want %d", i, idea.Number, i+1)
		}
		if len(idea.Tags) != 2 {
			t.Errorf("ideas[%d].Tags: got %v", i, idea.Tags)
		}
	}
}

func TestListIdeasByBook_Limit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	makeTestIdeas(t, s, "book-1", 8)

	ideas, err := s.ListIdeasByBook(ctx, "book-1", 5)
	if err != nil {
		t.Fatalf("ListIdeasByBook: %v", err)
	}
	if len(ideas) != 5 {
		t.Fatalf("expected 5 ideas, got %d", len(ideas))
	}
	// The limit keeps the lowest-numbered cards.
	if ideas[4].Number != 5 {
		t.Errorf("last Number: got %d, want 5", ideas[4].Number)
	}
}

func TestListIdeasByBooks_GroupsByBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "One")
	makeTestBook(t, s, "book-2", "Two")
	makeTestBook(t, s, "book-3", "Three")
	makeTestIdeas(t, s, "book-1", 2)
	makeTestIdeas(t, s, "book-2", 1)

	grouped, err := s.ListIdeasByBooks(ctx, []string{"book-1", "book-2", "book-3"})
	if err != nil {
		t.Fatalf("ListIdeasByBooks: %v", err)
	}
	if len(grouped["book-1"]) != 2 {
		t.Errorf("book-1: got %d ideas, want 2", len(grouped["book-1"]))
	}
	if len(grouped["book-2"]) != 1 {
		t.Errorf("book-2: got %d ideas, want 1", len(grouped["book-2"]))
	}
	// Books with no ideas have no entry.
	if _, ok := grouped["book-3"]; ok {
		t.Error("book-3 should have no entry")
	}
}

func TestListIdeasCreatedSince(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")

	old := &domain.Idea{
		ID: "idea-old", BookID: "book-1", Title: "Old", Number: 1,
		CreatedAt: time.Now().Add(-10 * 24 * time.Hour),
	}
	fresh := &domain.Idea{
		ID: "idea-new", BookID: "book-1", Title: "New", Number: 2,
		CreatedAt: time.Now(),
	}
	if err := s.InsertIdeas(ctx, []*domain.Idea{old, fresh}); err != nil {
		t.Fatalf("InsertIdeas: %v", err)
	}

	cutoff := time.Now().Add(-7 * 24 * time.Hour)
	recent, err := s.ListIdeasCreatedSince(ctx, cutoff)
	if err != nil {
		t.Fatalf("ListIdeasCreatedSince: %v", err)
	}
	if len(recent) != 1 {
		t.Fatalf("expected 1 recent idea, got %d", len(recent))
	}
	if recent[0].ID != "idea-new" {
		t.Errorf("got %q, want idea-new", recent[0].ID)
	}
}

func TestCountIdeasByBook(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")

	count, err := s.CountIdeasByBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("CountIdeasByBook: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0, got %d", count)
	}

	makeTestIdeas(t, s, "book-1", 4)

	count, err = s.CountIdeasByBook(ctx, "book-1")
	if err != nil {
		t.Fatalf("CountIdeasByBook: %v", err)
	}
	if count != 4 {
		t.Errorf("expected 4, got %d", count)
	}
}

func TestDeleteIdea_NumbersNotReassigned(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	makeTestBook(t, s, "book-1", "Book")
	ideas := makeTestIdeas(t, s, "book-1", 3)

	if err := s.DeleteIdea(ctx, ideas[1].ID); err != nil {
		t.Fatalf("DeleteIdea: %v", err)
	}

	remaining, err := s.ListIdeasByBook(ctx, "book-1", 0)
	if err != nil {
		t.Fatalf("ListIdeasByBook: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 ideas, got %d", len(remaining))
	}
	// Card numbers keep their gaps.
	if remaining[0].Number != 1 || remaining[1].Number != 3 {
		t.Errorf("numbers: got %d, %d; want 1, 3", remaining[0].Number, remaining[1].Number)
	}
}

func TestDeleteIdea_NotFound(t *testing.T) {
	s := newTestStore(t)

	err := s.DeleteIdea(context.Background(), "nonexistent")
	if !errors.Is(err, errors.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestInsertIdeas_EmptyBatch(t *testing.T) {
	s := newTestStore(t)

	if err := s.InsertIdeas(context.Background(), nil); err != nil {
		t.Fatalf("InsertIdeas nil: %v", err)
	}
}
