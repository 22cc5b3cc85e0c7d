package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
)

// ProfileService manages the singleton brand voice profile.
type ProfileService struct {
	store  *sqlite.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service.
func NewProfileService(store *sqlite.Store, logger *slog.Logger) *ProfileService {
	return &ProfileService{store: store, logger: logger}
}

// GetProfile returns the voice profile. A never-saved profile comes
// back empty rather than as an error.
func (s *ProfileService) GetProfile(ctx context.Context) (*domain.VoiceProfile, error) {
	p, err := s.store.GetVoiceProfile(ctx)
	if errors.Is(err, errors.ErrNotFound) {
		return &domain.VoiceProfile{ID: domain.VoiceProfileID}, nil
	}
	return p, err
}

// SaveProfileRequest holds the voice profile fields. Saving replaces
// the whole profile; omitted fields clear.
type SaveProfileRequest struct {
	Positioning string `json:"positioning,omitempty" validate:"max=2000"`
	Audience    string `json:"audience,omitempty" validate:"max=2000"`
	Tone        string `json:"tone,omitempty" validate:"max=2000"`
}

// SaveProfile creates or replaces the voice profile.
func (s *ProfileService) SaveProfile(ctx context.Context, req SaveProfileRequest) (*domain.VoiceProfile, error) {
	p, err := s.store.UpsertVoiceProfile(ctx, &domain.VoiceProfile{
		Positioning: req.Positioning,
		Audience:    req.Audience,
		Tone:        req.Tone,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "save profile")
	}
	return p, nil
}

// BrandProfile is a voice override carried inline on a generation
// request. When present it takes precedence over the stored profile.
type BrandProfile struct {
	Positioning string `json:"positioning,omitempty" validate:"max=2000"`
	Audience    string `json:"audience,omitempty" validate:"max=2000"`
	Tone        string `json:"tone,omitempty" validate:"max=2000"`
}

// resolveVoice picks the request's inline brand profile when given,
// falling back to the stored singleton.
func resolveVoice(ctx context.Context, store *sqlite.Store, logger *slog.Logger, override *BrandProfile) *domain.VoiceProfile {
	if override != nil {
		return &domain.VoiceProfile{
			Positioning: override.Positioning,
			Audience:    override.Audience,
			Tone:        override.Tone,
		}
	}
	return voiceForPrompts(ctx, store, logger)
}

// voiceForPrompts loads the profile for content generation. Load
// failures degrade to no voice rather than failing the generation.
func voiceForPrompts(ctx context.Context, store *sqlite.Store, logger *slog.Logger) *domain.VoiceProfile {
	p, err := store.GetVoiceProfile(ctx)
	if err != nil {
		if !errors.Is(err, errors.ErrNotFound) {
			logger.Warn("load voice profile failed", "error", err)
		}
		return nil
	}
	return p
}
