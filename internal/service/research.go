package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/id"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
	"github.com/writeflowapp/writeflow-server/internal/websearch"
)

const (
	searchArticleCount = 6
	scholarRowCount    = 8
)

// ResearchService finds supporting articles and papers for a book and
// classifies how they relate to its thesis.
type ResearchService struct {
	store    *sqlite.Store
	engine   *synthesis.Engine
	search   *websearch.SerperClient
	crossref *websearch.CrossrefClient
	logger   *slog.Logger
}

// NewResearchService creates a new research service.
func NewResearchService(store *sqlite.Store, engine *synthesis.Engine, search *websearch.SerperClient, crossref *websearch.CrossrefClient, logger *slog.Logger) *ResearchService {
	return &ResearchService{store: store, engine: engine, search: search, crossref: crossref, logger: logger}
}

// SearchRequest holds a concept to find articles for.
type SearchRequest struct {
	BookID       string `json:"book_id" validate:"required"`
	ConceptQuery string `json:"concept_query,omitempty"`
}

// Search finds blog articles about the book or concept, classifies
// each one's stance toward the book's thesis, and records the results
// for later reference. Classification failures degrade every article
// to neutral instead of failing the search.
func (s *ResearchService) Search(ctx context.Context, req SearchRequest) ([]*domain.Article, error) {
	book, err := s.store.GetBook(ctx, req.BookID)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, errors.NotFound("Book not found")
		}
		return nil, err
	}

	results, err := s.search.FindArticles(ctx, websearch.ArticleQuery{
		BookTitle:    book.Title,
		Author:       book.Author,
		ConceptQuery: req.ConceptQuery,
		Count:        searchArticleCount,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return []*domain.Article{}, nil
	}

	stances := s.classify(ctx, book, req.ConceptQuery, results)

	now := time.Now()
	articles := make([]*domain.Article, 0, len(results))
	for i, r := range results {
		articleID, err := id.Generate("art")
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "generate article id")
		}
		articles = append(articles, &domain.Article{
			ID:        articleID,
			BookID:    req.BookID,
			Title:     r.Title,
			URL:       r.URL,
			Domain:    r.Domain,
			Snippet:   r.Snippet,
			Favicon:   r.Favicon,
			Stance:    stances[i],
			CreatedAt: now,
		})
	}

	if err := s.store.SaveArticles(ctx, articles); err != nil {
		s.logger.Warn("save articles failed", "book_id", req.BookID, "error", err)
	}

	return articles, nil
}

// classify labels each result's stance toward the book's thesis,
// falling back to neutral across the board when classification fails.
func (s *ResearchService) classify(ctx context.Context, book *domain.Book, conceptQuery string, results []websearch.Result) []domain.Stance {
	focus := conceptQuery
	if focus == "" {
		focus = "key arguments"
	}
	thesis := fmt.Sprintf("%q by %s — %s", book.Title, book.Author, focus)

	toClassify := make([]synthesis.StanceArticle, len(results))
	for i, r := range results {
		toClassify[i] = synthesis.StanceArticle{Title: r.Title, Snippet: r.Snippet}
	}

	stances, err := s.engine.ClassifyStances(ctx, toClassify, thesis)
	if err != nil {
		s.logger.Warn("stance classification failed, defaulting to neutral", "error", err)
		stances = make([]domain.Stance, len(results))
		for i := range stances {
			stances[i] = domain.StanceNeutral
		}
	}
	return stances
}

// SavedArticles returns a book's previously found articles, newest
// first.
func (s *ResearchService) SavedArticles(ctx context.Context, bookID string) ([]*domain.Article, error) {
	return s.store.ListArticlesByBook(ctx, bookID)
}

// ScholarRequest holds a concept to find academic works for.
type ScholarRequest struct {
	Concept   string `json:"concept" validate:"required"`
	BookTitle string `json:"book_title,omitempty"`
}

// Scholar searches Crossref for academic works about a concept,
// optionally anchored to a book title.
func (s *ResearchService) Scholar(ctx context.Context, req ScholarRequest) ([]websearch.Paper, error) {
	query := req.Concept
	if req.BookTitle != "" {
		query += " " + req.BookTitle
	}
	return s.crossref.SearchWorks(ctx, query, scholarRowCount)
}
