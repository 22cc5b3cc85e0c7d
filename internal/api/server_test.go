package api

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/llm"
	"github.com/writeflowapp/writeflow-server/internal/service"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
	"github.com/writeflowapp/writeflow-server/internal/validation"
	"github.com/writeflowapp/writeflow-server/internal/websearch"
)

// fakeLLM replays queued responses to the synthesis engine.
type fakeLLM struct {
	mu        sync.Mutex
	responses []string
	err       error
	calls     int
}

func (f *fakeLLM) Complete(_ context.Context, _ llm.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
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

func (f *fakeLLM) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// testServer wraps the API server with its store and collaborator fakes.
type testServer struct {
	*Server
	api   humatest.TestAPI
	store *sqlite.Store
	llm   *fakeLLM
}

// setupTestServer creates a server backed by a temp database, a fake
// completion client, and a stubbed web search upstream.
func setupTestServer(t *testing.T, client *fakeLLM, searchHandler http.HandlerFunc) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	if searchHandler == nil {
		searchHandler = func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"organic":[]}`))
		}
	}
	upstream := httptest.NewServer(searchHandler)
	t.Cleanup(upstream.Close)

	engine := synthesis.NewEngine(client)
	assembler := service.NewContextAssembler(store, logger)
	services := &service.Services{
		Books:     service.NewBookService(store, logger),
		Notes:     service.NewNoteService(store, logger),
		Distill:   service.NewDistillService(store, engine, logger),
		Chat:      service.NewChatService(store, engine, assembler, logger),
		Social:    service.NewSocialService(store, engine, assembler, logger),
		Narrative: service.NewNarrativeService(store, engine, logger),
		Digest:    service.NewDigestService(store, engine, logger),
		Research: service.NewResearchService(
			store,
			engine,
			websearch.NewSerperClient("test-key", upstream.URL),
			websearch.NewCrossrefClient(upstream.URL, ""),
			logger,
		),
		Profile: service.NewProfileService(store, logger),
	}

	router := chi.NewRouter()
	api := humachi.New(router, huma.DefaultConfig("WriteFlow API Test", Version))
	RegisterErrorHandler()

	s := &Server{
		services:  services,
		validator: validation.New(),
		router:    router,
		api:       api,
		logger:    logger,
	}
	s.registerRoutes()

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, api),
		store:  store,
		llm:    client,
	}
}

// seedBook inserts a book directly into the store.
func (ts *testServer) seedBook(t *testing.T, id, title, author string) *domain.Book {
	t.Helper()
	now := time.Now()
	b := &domain.Book{
		ID:        id,
		Title:     title,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, ts.store.CreateBook(context.Background(), b))
	return b
}

// seedIdeas inserts numbered idea cards for a book.
func (ts *testServer) seedIdeas(t *testing.T, bookID string, titles ...string) {
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
	require.NoError(t, ts.store.InsertIdeas(context.Background(), ideas))
}
