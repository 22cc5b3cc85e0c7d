package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// articleColumns is the ordered list of columns selected in article queries.
// Must match the scan order in scanArticle.
const articleColumns = `id, book_id, title, url, domain, snippet, favicon, stance, created_at`

// scanArticle scans a sql.Row (or sql.Rows via its Scan method) into a domain.Article.
func scanArticle(scanner interface{ Scan(dest ...any) error }) (*domain.Article, error) {
	var a domain.Article

	var (
		snippet   sql.NullString
		favicon   sql.NullString
		stance    string
		createdAt string
	)

	err := scanner.Scan(
		&a.ID,
		&a.BookID,
		&a.Title,
		&a.URL,
		&a.Domain,
		&snippet,
		&favicon,
		&stance,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	a.Snippet = snippet.String
	a.Favicon = favicon.String
	a.Stance = domain.Stance(stance)

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &a, nil
}

// SaveArticles stores search results for a book. Rows that collide on
// (book_id, url) are silently skipped, keeping the first-seen stance.
func (s *Store) SaveArticles(ctx context.Context, articles []*domain.Article) error {
	if len(articles) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, a := range articles {
		stance := a.Stance
		if !stance.Valid() {
			stance = domain.StanceNeutral
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO articles (id, book_id, title, url, domain, snippet, favicon, stance, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (book_id, url) DO NOTHING`,
			a.ID,
			a.BookID,
			a.Title,
			a.URL,
			a.Domain,
			nullString(a.Snippet),
			nullString(a.Favicon),
			string(stance),
			formatTime(a.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert article: %w", err)
		}
	}

	return tx.Commit()
}

// ListArticlesByBook returns a book's saved articles, newest first.
func (s *Store) ListArticlesByBook(ctx context.Context, bookID string) ([]*domain.Article, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+articleColumns+` FROM articles WHERE book_id = ? ORDER BY created_at DESC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if articles == nil {
		articles = []*domain.Article{}
	}

	return articles, nil
}

// MostRecentArticle returns the newest saved article across all books.
// Returns errors.ErrNotFound when no articles have been saved.
func (s *Store) MostRecentArticle(ctx context.Context) (*domain.Article, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+articleColumns+` FROM articles ORDER BY created_at DESC LIMIT 1`)

	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}
