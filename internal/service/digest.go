package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

const (
	digestWindow          = 7 * 24 * time.Hour
	digestIdeasPerBookCap = 5
)

// DigestService assembles the weekly newsletter digest from recent
// idea cards.
type DigestService struct {
	store  *sqlite.Store
	engine *synthesis.Engine
	logger *slog.Logger
}

// NewDigestService creates a new digest service.
func NewDigestService(store *sqlite.Store, engine *synthesis.Engine, logger *slog.Logger) *DigestService {
	return &DigestService{store: store, engine: engine, logger: logger}
}

// Digest is the generated newsletter plus a plain-text rendering for
// one-click copy.
type Digest struct {
	synthesis.DigestResult
	PlainText string `json:"plain_text"`
}

// DigestRequest optionally overrides the stored voice profile for one
// generation.
type DigestRequest struct {
	BrandProfile *BrandProfile `json:"brand_profile,omitempty"`
}

// Generate aggregates the past week's idea cards, caps them per book,
// and generates the digest in the brand voice.
func (s *DigestService) Generate(ctx context.Context, req DigestRequest) (*Digest, error) {
	since := time.Now().Add(-digestWindow)
	recent, err := s.store.ListIdeasCreatedSince(ctx, since)
	if err != nil {
		return nil, err
	}
	if len(recent) == 0 {
		return nil, errors.Validation("No ideas found in the past 7 days — distil some notes first.")
	}

	// Group by book in first-seen order, most recent ideas first.
	var bookIDs []string
	ideasByBook := make(map[string][]*domain.Idea)
	for _, idea := range recent {
		if _, ok := ideasByBook[idea.BookID]; !ok {
			bookIDs = append(bookIDs, idea.BookID)
		}
		if len(ideasByBook[idea.BookID]) < digestIdeasPerBookCap {
			ideasByBook[idea.BookID] = append(ideasByBook[idea.BookID], idea)
		}
	}

	books, err := s.store.ListBooksByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}
	bookByID := make(map[string]*domain.Book, len(books))
	for _, b := range books {
		bookByID[b.ID] = b
	}

	digestBooks := make([]synthesis.NarrativeBook, 0, len(bookIDs))
	for _, bid := range bookIDs {
		nb := synthesis.NarrativeBook{Title: "Unknown", Ideas: ideaRefs(ideasByBook[bid])}
		if b, ok := bookByID[bid]; ok {
			nb.Title = b.Title
			nb.Author = b.Author
		}
		digestBooks = append(digestBooks, nb)
	}

	var topArticle *synthesis.DigestArticle
	article, err := s.store.MostRecentArticle(ctx)
	if err == nil {
		topArticle = &synthesis.DigestArticle{
			Title:  article.Title,
			URL:    article.URL,
			Domain: article.Domain,
		}
	} else if !errors.Is(err, errors.ErrNotFound) {
		return nil, err
	}

	result, err := s.engine.Digest(ctx, synthesis.DigestInput{
		Books:      digestBooks,
		TopArticle: topArticle,
		Voice:      resolveVoice(ctx, s.store, s.logger, req.BrandProfile),
	})
	if err != nil {
		return nil, err
	}

	return &Digest{
		DigestResult: *result,
		PlainText:    renderPlainText(result, topArticle),
	}, nil
}

// renderPlainText assembles the copy-ready newsletter body.
func renderPlainText(d *synthesis.DigestResult, topArticle *synthesis.DigestArticle) string {
	ideaLines := make([]string, 0, len(d.KeyIdeas))
	for _, k := range d.KeyIdeas {
		ideaLines = append(ideaLines, fmt.Sprintf("📚 %s\n%s: %s", k.Book, k.Title, k.Insight))
	}

	articleSection := ""
	if topArticle != nil {
		articleSection = fmt.Sprintf("━━━ ARTICLE PICK ━━━\n\n%s\n%s", d.ArticlePick, topArticle.URL)
	}

	return strings.Join([]string{
		"SUBJECT: " + d.SubjectLine,
		"",
		d.OpeningHook,
		"",
		"━━━ THIS WEEK'S IDEAS ━━━",
		"",
		strings.Join(ideaLines, "\n\n"),
		"",
		articleSection,
		"",
		"━━━ CLOSING THOUGHT ━━━",
		"",
		d.ClosingThought,
	}, "\n")
}
