package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
)

// GetVoiceProfile retrieves the singleton voice profile.
// Returns errors.ErrNotFound if the profile has never been saved.
func (s *Store) GetVoiceProfile(ctx context.Context) (*domain.VoiceProfile, error) {
	var p domain.VoiceProfile
	var updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, positioning, audience, tone, updated_at
		FROM user_profile WHERE id = ?`, domain.VoiceProfileID).
		Scan(&p.ID, &p.Positioning, &p.Audience, &p.Tone, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// UpsertVoiceProfile creates or replaces the singleton voice profile
// and returns the stored row.
func (s *Store) UpsertVoiceProfile(ctx context.Context, p *domain.VoiceProfile) (*domain.VoiceProfile, error) {
	p.ID = domain.VoiceProfileID

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO user_profile (id, positioning, audience, tone, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			positioning = excluded.positioning,
			audience    = excluded.audience,
			tone        = excluded.tone,
			updated_at  = excluded.updated_at`,
		p.ID,
		p.Positioning,
		p.Audience,
		p.Tone,
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	return s.GetVoiceProfile(ctx)
}
