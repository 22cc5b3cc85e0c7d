package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// ideaColumns is the ordered list of columns selected in idea queries.
// Must match the scan order in scanIdea.
const ideaColumns = `id, book_id, chapter_name, title, body, tags, number, created_at`

// scanIdea scans a sql.Row (or sql.Rows via its Scan method) into a domain.Idea.
func scanIdea(scanner interface{ Scan(dest ...any) error }) (*domain.Idea, error) {
	var i domain.Idea

	var (
		chapterName sql.NullString
		tagsJSON    string
		createdAt   string
	)

	err := scanner.Scan(
		&i.ID,
		&i.BookID,
		&chapterName,
		&i.Title,
		&i.Body,
		&tagsJSON,
		&i.Number,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	i.ChapterName = chapterName.String

	i.Tags, err = unmarshalTags(tagsJSON)
	if err != nil {
		return nil, err
	}

	i.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &i, nil
}

// InsertIdeas inserts a batch of idea cards in one transaction.
// Either all cards persist or none do.
func (s *Store) InsertIdeas(ctx context.Context, ideas []*domain.Idea) error {
	if len(ideas) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, idea := range ideas {
		tags, err := marshalTags(idea.Tags)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO ideas (id, book_id, chapter_name, title, body, tags, number, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			idea.ID,
			idea.BookID,
			nullString(idea.ChapterName),
			idea.Title,
			idea.Body,
			tags,
			idea.Number,
			formatTime(idea.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert idea: %w", err)
		}
	}

	return tx.Commit()
}

// ListIdeasByBook returns a book's idea cards in card-number order.
// A limit of 0 returns all cards.
func (s *Store) ListIdeasByBook(ctx context.Context, bookID string, limit int) ([]*domain.Idea, error) {
	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE book_id = ? ORDER BY number ASC`
	args := []any{bookID}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []*domain.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ideas == nil {
		ideas = []*domain.Idea{}
	}

	return ideas, nil
}

// ListIdeasByBooks returns all idea cards for the given books, grouped
// by book ID. Books with no ideas have no map entry.
func (s *Store) ListIdeasByBooks(ctx context.Context, bookIDs []string) (map[string][]*domain.Idea, error) {
	result := make(map[string][]*domain.Idea)
	if len(bookIDs) == 0 {
		return result, nil
	}

	query := `SELECT ` + ideaColumns + ` FROM ideas WHERE book_id IN (` + placeholders(len(bookIDs)) + `) ORDER BY number ASC`
	rows, err := s.db.QueryContext(ctx, query, toAnySlice(bookIDs)...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		result[i.BookID] = append(result[i.BookID], i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

// ListIdeasCreatedSince returns all idea cards created at or after the
// cutoff, newest first.
func (s *Store) ListIdeasCreatedSince(ctx context.Context, since time.Time) ([]*domain.Idea, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+ideaColumns+` FROM ideas WHERE created_at >= ? ORDER BY created_at DESC`,
		formatTime(since))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ideas []*domain.Idea
	for rows.Next() {
		i, err := scanIdea(rows)
		if err != nil {
			return nil, err
		}
		ideas = append(ideas, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if ideas == nil {
		ideas = []*domain.Idea{}
	}

	return ideas, nil
}

// CountIdeasByBook returns the number of idea cards a book has.
func (s *Store) CountIdeasByBook(ctx context.Context, bookID string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ideas WHERE book_id = ?`, bookID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count ideas: %w", err)
	}
	return count, nil
}

// DeleteIdea removes an idea card. Remaining cards keep their numbers.
// Returns errors.ErrNotFound if the card does not exist.
func (s *Store) DeleteIdea(ctx context.Context, ideaID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM ideas WHERE id = ?`, ideaID)
	if err != nil {
		return fmt.Errorf("delete idea: %w", err)
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
