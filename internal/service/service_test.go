package service

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/llm"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()
	s, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), testLogger())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// fakeLLM replays queued responses and records every request.
type fakeLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	requests  []llm.Request
}

func (f *fakeLLM) Complete(_ context.Context, req llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return "", f.err
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeLLM) lastRequest(t *testing.T) llm.Request {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func seedBook(t *testing.T, s *sqlite.Store, id, title, author string) *domain.Book {
	t.Helper()
	now := time.Now()
	b := &domain.Book{
		ID:        id,
		Title:     title,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, s.CreateBook(context.Background(), b))
	return b
}

func seedIdeas(t *testing.T, s *sqlite.Store, bookID string, titles ...string) {
	t.Helper()
	now := time.Now()
	ideas := make([]*domain.Idea, len(titles))
	for i, title := range titles {
		ideas[i] = &domain.Idea{
			ID:        bookID + "-idea-" + title,
			BookID:    bookID,
			Title:     title,
			Body:      "body of " + title,
			Tags:      []string{"tag"},
			Number:    i + 1,
			CreatedAt: now,
		}
	}
	require.NoError(t, s.InsertIdeas(context.Background(), ideas))
}
