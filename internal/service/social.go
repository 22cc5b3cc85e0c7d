package service

import (
	"context"
	"log/slog"

	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

// SocialService generates tweets, threads, and LinkedIn posts from
// chapter notes.
type SocialService struct {
	store     *sqlite.Store
	engine    *synthesis.Engine
	assembler *ContextAssembler
	logger    *slog.Logger
}

// NewSocialService creates a new social content service.
func NewSocialService(store *sqlite.Store, engine *synthesis.Engine, assembler *ContextAssembler, logger *slog.Logger) *SocialService {
	return &SocialService{store: store, engine: engine, assembler: assembler, logger: logger}
}

// SocialRequest holds the chapter content to turn into social posts.
// An inline brand profile overrides the stored voice for this request.
type SocialRequest struct {
	BookID       string        `json:"book_id" validate:"required"`
	ChapterName  string        `json:"chapter_name,omitempty"`
	Content      string        `json:"content" validate:"required"`
	BrandProfile *BrandProfile `json:"brand_profile,omitempty"`
}

// socialInput assembles the shared generation context: the book, up to
// ideaCap idea cards, and the brand voice.
func (s *SocialService) socialInput(ctx context.Context, req SocialRequest, ideaCap int) (synthesis.SocialInput, error) {
	bc, err := s.assembler.BookWithIdeas(ctx, req.BookID, ideaCap)
	if err != nil {
		return synthesis.SocialInput{}, err
	}

	return synthesis.SocialInput{
		BookTitle:    bc.Book.Title,
		Author:       bc.Book.Author,
		ChapterName:  req.ChapterName,
		NotesContent: req.Content,
		Ideas:        ideaRefs(bc.Ideas),
		Voice:        resolveVoice(ctx, s.store, s.logger, req.BrandProfile),
	}, nil
}

// Tweets generates standalone tweet-ready insights from chapter notes.
func (s *SocialService) Tweets(ctx context.Context, req SocialRequest) ([]string, error) {
	in, err := s.socialInput(ctx, req, tweetIdeasCap)
	if err != nil {
		return nil, err
	}
	return s.engine.Tweets(ctx, in)
}

// Thread generates a numbered Twitter thread from chapter notes.
func (s *SocialService) Thread(ctx context.Context, req SocialRequest) ([]synthesis.ThreadTweet, error) {
	in, err := s.socialInput(ctx, req, threadIdeasCap)
	if err != nil {
		return nil, err
	}
	return s.engine.Thread(ctx, in)
}

// LinkedIn generates three LinkedIn post variants from chapter notes.
func (s *SocialService) LinkedIn(ctx context.Context, req SocialRequest) (*synthesis.LinkedInPosts, error) {
	in, err := s.socialInput(ctx, req, linkedInIdeasCap)
	if err != nil {
		return nil, err
	}
	return s.engine.LinkedIn(ctx, in)
}

// RepurposeRequest holds a thread to reformat as one LinkedIn post.
type RepurposeRequest struct {
	Thread       []synthesis.ThreadTweet `json:"thread" validate:"required,min=1"`
	BookID       string                  `json:"book_id,omitempty"`
	BrandProfile *BrandProfile           `json:"brand_profile,omitempty"`
}

// Repurpose rewrites a generated thread as a single LinkedIn post. The
// book is optional context; an unknown book ID is ignored.
func (s *SocialService) Repurpose(ctx context.Context, req RepurposeRequest) (string, error) {
	var bookTitle, author string
	if req.BookID != "" {
		book, err := s.store.GetBook(ctx, req.BookID)
		if err == nil {
			bookTitle = book.Title
			author = book.Author
		} else if !errors.Is(err, errors.ErrNotFound) {
			return "", err
		}
	}

	return s.engine.Repurpose(ctx, synthesis.RepurposeInput{
		Thread:    req.Thread,
		BookTitle: bookTitle,
		Author:    author,
		Voice:     resolveVoice(ctx, s.store, s.logger, req.BrandProfile),
	})
}
