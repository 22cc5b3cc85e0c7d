package service

import (
	"context"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

// Idea caps per operation: how many of a book's cards are folded into
// each prompt.
const (
	chatIdeasCap     = 10
	suggestIdeasCap  = 6
	tweetIdeasCap    = 5
	threadIdeasCap   = 6
	linkedInIdeasCap = 5
)

// ContextAssembler gathers a book's stored state: metadata, notes,
// idea cards, and optionally the rest of the library, for prompt
// building. Independent reads run concurrently.
type ContextAssembler struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewContextAssembler creates a context assembler.
func NewContextAssembler(store *sqlite.Store, logger *slog.Logger) *ContextAssembler {
	return &ContextAssembler{store: store, logger: logger}
}

// BookContext is a book with a slice of its idea cards.
type BookContext struct {
	Book  *domain.Book
	Ideas []*domain.Idea
}

// ChatContext is the assembled state for a reading-partner exchange.
type ChatContext struct {
	Book    *domain.Book
	Notes   string // All chapter notes joined with blank lines
	Ideas   []*domain.Idea
	Library []synthesis.LibraryBook
}

// BookWithIdeas loads a book and up to ideaCap of its idea cards.
// An ideaCap of 0 loads all cards.
func (a *ContextAssembler) BookWithIdeas(ctx context.Context, bookID string, ideaCap int) (*BookContext, error) {
	book, err := a.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("Book not found")
		}
		return nil, err
	}

	ideas, err := a.store.ListIdeasByBook(ctx, bookID, ideaCap)
	if err != nil {
		return nil, err
	}

	return &BookContext{Book: book, Ideas: ideas}, nil
}

// ChatContext assembles everything a chat reply draws on. The book,
// notes, and idea reads run concurrently; library context is added
// when libraryMode is set. Only the book lookup can fail the call:
// notes, ideas, and library reads degrade to empty so a partial
// context still produces a reply.
func (a *ContextAssembler) ChatContext(ctx context.Context, bookID string, libraryMode bool) (*ChatContext, error) {
	var (
		book  *domain.Book
		notes []*domain.Note
		ideas []*domain.Idea
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		book, err = a.store.GetBook(gctx, bookID)
		return err
	})
	g.Go(func() error {
		ns, err := a.store.ListNotesByBook(gctx, bookID)
		if err != nil {
			a.logger.Warn("load notes for chat failed", "book_id", bookID, "error", err)
			return nil
		}
		notes = ns
		return nil
	})
	g.Go(func() error {
		is, err := a.store.ListIdeasByBook(gctx, bookID, chatIdeasCap)
		if err != nil {
			a.logger.Warn("load ideas for chat failed", "book_id", bookID, "error", err)
			return nil
		}
		ideas = is
		return nil
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("Book not found")
		}
		return nil, err
	}

	cc := &ChatContext{
		Book:  book,
		Notes: joinNoteContents(notes),
		Ideas: ideas,
	}

	if libraryMode {
		library, err := a.libraryContext(ctx, bookID)
		if err != nil {
			a.logger.Warn("load library context failed", "book_id", bookID, "error", err)
		} else {
			cc.Library = library
		}
	}

	return cc, nil
}

// libraryContext builds cross-book context from every other book that
// has at least one idea card.
func (a *ContextAssembler) libraryContext(ctx context.Context, excludeBookID string) ([]synthesis.LibraryBook, error) {
	books, err := a.store.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	otherIDs := make([]string, 0, len(books))
	for _, b := range books {
		if b.ID != excludeBookID {
			otherIDs = append(otherIDs, b.ID)
		}
	}
	if len(otherIDs) == 0 {
		return nil, nil
	}

	ideasByBook, err := a.store.ListIdeasByBooks(ctx, otherIDs)
	if err != nil {
		return nil, err
	}

	var library []synthesis.LibraryBook
	for _, b := range books {
		if b.ID == excludeBookID {
			continue
		}
		ideas := ideasByBook[b.ID]
		if len(ideas) == 0 {
			continue
		}
		library = append(library, synthesis.LibraryBook{
			Title:  b.Title,
			Author: b.Author,
			Ideas:  ideaRefs(ideas),
		})
	}
	return library, nil
}

// joinNoteContents combines all chapter notes into one block.
func joinNoteContents(notes []*domain.Note) string {
	parts := make([]string, 0, len(notes))
	for _, n := range notes {
		if n.Content != "" {
			parts = append(parts, n.Content)
		}
	}
	return strings.Join(parts, "\n\n")
}

// ideaRefs converts stored idea cards to prompt references.
func ideaRefs(ideas []*domain.Idea) []synthesis.IdeaRef {
	refs := make([]synthesis.IdeaRef, len(ideas))
	for i, idea := range ideas {
		refs[i] = synthesis.IdeaRef{
			Title: idea.Title,
			Body:  idea.Body,
			Tags:  idea.Tags,
		}
	}
	return refs
}
