package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// noteColumns is the ordered list of columns selected in note queries.
// Must match the scan order in scanNote.
const noteColumns = `id, book_id, chapter_name, chapter_order, content, created_at, updated_at`

// scanNote scans a sql.Row (or sql.Rows via its Scan method) into a domain.Note.
func scanNote(scanner interface{ Scan(dest ...any) error }) (*domain.Note, error) {
	var n domain.Note

	var (
		createdAt string
		updatedAt string
	)

	err := scanner.Scan(
		&n.ID,
		&n.BookID,
		&n.ChapterName,
		&n.ChapterOrder,
		&n.Content,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	n.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &n, nil
}

// UpsertNote inserts a note, or replaces the content and order of the
// existing (book, chapter) row. The original row ID and created_at
// survive an upsert. Returns the stored row.
func (s *Store) UpsertNote(ctx context.Context, n *domain.Note) (*domain.Note, error) {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, book_id, chapter_name, chapter_order, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (book_id, chapter_name) DO UPDATE SET
			chapter_order = excluded.chapter_order,
			content       = excluded.content,
			updated_at    = excluded.updated_at`,
		n.ID,
		n.BookID,
		n.ChapterName,
		n.ChapterOrder,
		n.Content,
		formatTime(n.CreatedAt),
		formatTime(n.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert note: %w", err)
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE book_id = ? AND chapter_name = ?`,
		n.BookID, n.ChapterName)
	return scanNote(row)
}

// GetNote retrieves a note by ID.
// Returns errors.ErrNotFound if the note does not exist.
func (s *Store) GetNote(ctx context.Context, noteID string) (*domain.Note, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE id = ?`, noteID)

	n, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return n, nil
}

// ListNotesByBook returns a book's notes in chapter order.
func (s *Store) ListNotesByBook(ctx context.Context, bookID string) ([]*domain.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE book_id = ? ORDER BY chapter_order ASC`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notes []*domain.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if notes == nil {
		notes = []*domain.Note{}
	}

	return notes, nil
}

// UpdateNoteContent replaces a note's content and returns the updated row.
// Returns errors.ErrNotFound if the note does not exist.
func (s *Store) UpdateNoteContent(ctx context.Context, noteID, content string) (*domain.Note, error) {
	n, err := s.GetNote(ctx, noteID)
	if err != nil {
		return nil, err
	}

	n.Content = content
	n.Touch()

	_, err = s.db.ExecContext(ctx,
		`UPDATE notes SET content = ?, updated_at = ? WHERE id = ?`,
		n.Content, formatTime(n.UpdatedAt), n.ID)
	if err != nil {
		return nil, fmt.Errorf("update note: %w", err)
	}

	return n, nil
}

// DeleteNote removes a note.
// Returns errors.ErrNotFound if the note does not exist.
func (s *Store) DeleteNote(ctx context.Context, noteID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, noteID)
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
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
