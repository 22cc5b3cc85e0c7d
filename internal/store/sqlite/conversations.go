package sqlite

import (
	"context"
	"fmt"

	"github.com/writeflowapp/writeflow-server/internal/domain"
)

// turnColumns is the ordered list of columns selected in turn queries.
// Must match the scan order in scanTurn.
const turnColumns = `id, book_id, role, content, created_at`

// scanTurn scans a sql.Row (or sql.Rows via its Scan method) into a domain.Turn.
func scanTurn(scanner interface{ Scan(dest ...any) error }) (*domain.Turn, error) {
	var t domain.Turn

	var createdAt string

	err := scanner.Scan(
		&t.ID,
		&t.BookID,
		&t.Role,
		&t.Content,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// AppendTurns appends conversation turns in one transaction. A chat
// exchange appends the user turn and the assistant turn together so
// history never holds half an exchange.
func (s *Store) AppendTurns(ctx context.Context, turns ...*domain.Turn) error {
	if len(turns) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, t := range turns {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO conversations (id, book_id, role, content, created_at)
			VALUES (?, ?, ?, ?, ?)`,
			t.ID,
			t.BookID,
			t.Role,
			t.Content,
			formatTime(t.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("insert turn: %w", err)
		}
	}

	return tx.Commit()
}

// ListTurnsByBook returns a book's conversation in chronological order.
// A limit of 0 returns all turns.
func (s *Store) ListTurnsByBook(ctx context.Context, bookID string, limit int) ([]*domain.Turn, error) {
	// rowid breaks created_at ties so a same-instant exchange keeps its
	// insertion order.
	query := `SELECT ` + turnColumns + ` FROM conversations WHERE book_id = ? ORDER BY created_at ASC, rowid ASC`
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

	var turns []*domain.Turn
	for rows.Next() {
		t, err := scanTurn(rows)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if turns == nil {
		turns = []*domain.Turn{}
	}

	return turns, nil
}
