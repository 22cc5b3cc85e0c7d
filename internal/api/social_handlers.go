package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

func (s *Server) registerTweetRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "generateTweets",
		Method:      http.MethodPost,
		Path:        "/api/tweets",
		Summary:     "Generate tweets",
		Description: "Generates standalone tweet-ready insights from chapter notes",
		Tags:        []string{"Social"},
	}, s.handleGenerateTweets)

	huma.Register(s.api, huma.Operation{
		OperationID: "generateThread",
		Method:      http.MethodPost,
		Path:        "/api/tweets/thread",
		Summary:     "Generate thread",
		Description: "Transforms chapter notes into a numbered Twitter thread",
		Tags:        []string{"Social"},
	}, s.handleGenerateThread)
}

// === DTOs ===

// SocialInput wraps the social generation request for Huma.
type SocialInput struct {
	Body service.SocialRequest
}

// TweetsResponse carries generated standalone tweets.
type TweetsResponse struct {
	Tweets []string `json:"tweets" doc:"Tweet-ready insights"`
}

// TweetsOutput wraps the tweets response for Huma.
type TweetsOutput struct {
	Body TweetsResponse
}

// ThreadResponse carries a generated numbered thread.
type ThreadResponse struct {
	Thread []synthesis.ThreadTweet `json:"thread" doc:"Numbered thread tweets"`
}

// ThreadOutput wraps the thread response for Huma.
type ThreadOutput struct {
	Body ThreadResponse
}

// === Handlers ===

func (s *Server) handleGenerateTweets(ctx context.Context, input *SocialInput) (*TweetsOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	tweets, err := s.services.Social.Tweets(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &TweetsOutput{Body: TweetsResponse{Tweets: tweets}}, nil
}

func (s *Server) handleGenerateThread(ctx context.Context, input *SocialInput) (*ThreadOutput, error) {
	if err := s.validator.Validate(input.Body); err != nil {
		return nil, err
	}

	thread, err := s.services.Social.Thread(ctx, input.Body)
	if err != nil {
		return nil, err
	}

	return &ThreadOutput{Body: ThreadResponse{Thread: thread}}, nil
}
