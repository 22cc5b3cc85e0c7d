package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/service"
)

func (s *Server) registerProfileRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "getProfile",
		Method:      http.MethodGet,
		Path:        "/api/profile",
		Summary:     "Get voice profile",
		Tags:        []string{"Profile"},
	}, s.handleGetProfile)

	huma.Register(s.api, huma.Operation{
		OperationID: "saveProfile",
		Method:      http.MethodPut,
		Path:        "/api/profile",
		Summary:     "Save voice profile",
		Description: "Replaces the brand voice profile; omitted fields clear",
		Tags:        []string{"Profile"},
	}, s.handleSaveProfile)
}

// === DTOs ===

// ProfileResponse contains voice profile data in API responses.
type ProfileResponse struct {
	Positioning string    `json:"positioning" doc:"What the writer is known for"`
	Audience    string    `json:"audience" doc:"Who the writing is for"`
	Tone        string    `json:"tone" doc:"How the writing should sound"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" doc:"Last update time"`
}

// ProfileOutput wraps the profile response for Huma.
type ProfileOutput struct {
	Body ProfileResponse
}

// SaveProfileInput wraps the save profile request for Huma.
type SaveProfileInput struct {
	Body service.SaveProfileRequest
}

func profileResponse(p *domain.VoiceProfile) ProfileResponse {
	return ProfileResponse{
		Positioning: p.Positioning,
		Audience:    p.Audience,
		Tone:        p.Tone,
		UpdatedAt:   p.UpdatedAt,
	}
}

// === Handlers ===

func (s *Server) handleGetProfile(ctx context.Context, _ *struct{}) (*ProfileOutput, error) {
	p, err := s.services.Profile.GetProfile(ctx)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: profileResponse(p)}, nil
}

func (s *Server) handleSaveProfile(ctx context.Context, input *SaveProfileInput) (*ProfileOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	p, err := s.services.Profile.SaveProfile(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ProfileOutput{Body: profileResponse(p)}, nil
}
