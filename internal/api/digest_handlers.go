package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

func (s *Server) registerDigestRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateDigest",
		Method:      http.MethodPost,
		Path:        "/api/digest",
		Summary:     "Generate weekly digest",
		Description: "Aggregates the past week's idea cards into a newsletter digest with copy-ready plain text",
		Tags:        []string{"Digest"},
	}, s.handleGenerateDigest)
}

// DigestResponse is the generated newsletter plus its plain-text rendering.
type DigestResponse struct {
	SubjectLine    string                    `json:"subject_line" doc:"Email subject line"`
	OpeningHook    string                    `json:"opening_hook" doc:"Opening paragraph"`
	KeyIdeas       []synthesis.DigestKeyIdea `json:"key_ideas" doc:"This week's ideas, attributed to books"`
	ArticlePick    string                    `json:"article_pick" doc:"Blurb for the article pick"`
	ClosingThought string                    `json:"closing_thought" doc:"Closing paragraph"`
	PlainText      string                    `json:"plain_text" doc:"Copy-ready newsletter body"`
}

// DigestOutput wraps the digest response for Huma.
type DigestOutput struct {
	Body DigestResponse
}

// GenerateDigestInput wraps the digest request for Huma. The body is
// optional; it only carries a voice override.
type GenerateDigestInput struct {
	Body service.DigestRequest `required:"false"`
}

func (s *Server) handleGenerateDigest(ctx context.Context, input *GenerateDigestInput) (*DigestOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	digest, err := s.services.Digest.Generate(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &DigestOutput{
		Body: DigestResponse{
			SubjectLine:    digest.SubjectLine,
			OpeningHook:    digest.OpeningHook,
			KeyIdeas:       digest.KeyIdeas,
			ArticlePick:    digest.ArticlePick,
			ClosingThought: digest.ClosingThought,
			PlainText:      digest.PlainText,
		},
	}, nil
}
