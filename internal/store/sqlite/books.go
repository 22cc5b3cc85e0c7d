package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, category, why_reading, spine_color, progress, created_at, updated_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		category   sql.NullString
		whyReading sql.NullString
		spineColor sql.NullString
		createdAt  string
		updatedAt  string
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&category,
		&whyReading,
		&spineColor,
		&b.Progress,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Category = category.String
	b.WhyReading = whyReading.String
	b.SpineColor = spineColor.String

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book.
func (s *Store) CreateBook(ctx context.Context, b *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, category, why_reading, spine_color, progress, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.Title,
		b.Author,
		nullString(b.Category),
		nullString(b.WhyReading),
		nullString(b.SpineColor),
		b.Progress,
		formatTime(b.CreatedAt),
		formatTime(b.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetBook retrieves a book by ID.
// Returns errors.ErrNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, bookID)

	b, err := scanBook(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// ListBooks returns all books, newest first.
func (s *Store) ListBooks(ctx context.Context) ([]*domain.Book, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+bookColumns+` FROM books ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if books == nil {
		books = []*domain.Book{}
	}

	return books, nil
}

// ListBooksByIDs returns the books with the given IDs, oldest first.
// Missing IDs are silently skipped.
func (s *Store) ListBooksByIDs(ctx context.Context, bookIDs []string) ([]*domain.Book, error) {
	if len(bookIDs) == 0 {
		return []*domain.Book{}, nil
	}

	query := `SELECT ` + bookColumns + ` FROM books WHERE id IN (` + placeholders(len(bookIDs)) + `) ORDER BY created_at ASC`
	rows, err := s.db.QueryContext(ctx, query, toAnySlice(bookIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if books == nil {
		books = []*domain.Book{}
	}

	return books, nil
}

// UpdateBook applies a partial update to a book and returns the updated row.
// Returns errors.ErrNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, bookID string, update domain.BookUpdate) (*domain.Book, error) {
	b, err := s.GetBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		b.Title = *update.Title
	}
	if update.Author != nil {
		b.Author = *update.Author
	}
	if update.Category != nil {
		b.Category = *update.Category
	}
	if update.WhyReading != nil {
		b.WhyReading = *update.WhyReading
	}
	if update.SpineColor != nil {
		b.SpineColor = *update.SpineColor
	}
	if update.Progress != nil {
		b.Progress = *update.Progress
	}
	b.Touch()

	_, err = s.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, author = ?, category = ?, why_reading = ?, spine_color = ?, progress = ?, updated_at = ?
		WHERE id = ?`,
		b.Title,
		b.Author,
		nullString(b.Category),
		nullString(b.WhyReading),
		nullString(b.SpineColor),
		b.Progress,
		formatTime(b.UpdatedAt),
		b.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	return b, nil
}

// DeleteBook removes a book. Notes, ideas, conversations, and articles
// cascade via foreign keys.
// Returns errors.ErrNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, bookID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, bookID)
	if err != nil {
		return fmt.Errorf("delete book: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// placeholders returns n comma-separated SQL placeholders.
func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := 0; i < n; i++ {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}

// toAnySlice converts a string slice to []any for variadic query args.
func toAnySlice(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
