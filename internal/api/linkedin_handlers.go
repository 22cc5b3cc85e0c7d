package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

func (s *Server) registerLinkedInRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateLinkedInPosts",
		Method:      http.MethodPost,
		Path:        "/api/linkedin/post",
		Summary:     "Generate LinkedIn posts",
		Description: "Generates three LinkedIn post variants from chapter notes, in the stored brand voice",
		Tags:        []string{"Social"},
	}, s.handleGenerateLinkedInPosts)

	huma.Register(s.api, huma.Operation{
		OperationID: "repurposeThread",
		Method:      http.MethodPost,
		Path:        "/api/linkedin/repurpose",
		Summary:     "Repurpose thread",
		Description: "Reformats a generated Twitter thread into one LinkedIn post",
		Tags:        []string{"Social"},
	}, s.handleRepurposeThread)
}

// === DTOs ===

// LinkedInPostsOutput wraps the post variants for Huma.
type LinkedInPostsOutput struct {
	Body synthesis.LinkedInPosts
}

// RepurposeInput wraps the repurpose request for Huma.
type RepurposeInput struct {
	Body service.RepurposeRequest
}

// RepurposeResponse carries the repurposed post.
type RepurposeResponse struct {
	Post string `json:"post" doc:"LinkedIn-ready post"`
}

// RepurposeOutput wraps the repurpose response for Huma.
type RepurposeOutput struct {
	Body RepurposeResponse
}

// === Handlers ===

func (s *Server) handleGenerateLinkedInPosts(ctx context.Context, input *SocialInput) (*LinkedInPostsOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	posts, err := s.services.Social.LinkedIn(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &LinkedInPostsOutput{Body: *posts}, nil
}

func (s *Server) handleRepurposeThread(ctx context.Context, input *RepurposeInput) (*RepurposeOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	post, err := s.services.Social.Repurpose(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &RepurposeOutput{Body: RepurposeResponse{Post: post}}, nil
}
