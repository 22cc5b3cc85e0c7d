package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/writeflowapp/writeflow-server/internal/domain"
	"github.com/writeflowapp/writeflow-server/internal/errors"
	"github.com/writeflowapp/writeflow-server/internal/store/sqlite"
	"github.com/writeflowapp/writeflow-server/internal/synthesis"
)

func newChatService(t *testing.T, store *sqlite.Store, client *fakeLLM) *ChatService {
	t.Helper()
	return NewChatService(store, synthesis.NewEngine(client), NewContextAssembler(store, testLogger()), testLogger())
}

func seedNote(t *testing.T, store *sqlite.Store, bookID, chapter, content string) {
	t.Helper()
	now := time.Now()
	_, err := store.UpsertNote(context.Background(), &domain.Note{
		ID:          "note_" + bookID + "_" + chapter,
		BookID:      bookID,
		ChapterName: chapter,
		Content:     content,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	require.NoError(t, err)
}

func TestChatRepliesAndRecordsExchange(t *testing.T) {
	store := newTestStore(t)
	client := &fakeLLM{responses: []string{"Great question about focus."}}
	svc := newChatService(t, store, client)
	ctx := context.Background()
	b := seedBook(t, store, "book_1", "Deep Work", "Cal Newport")
	seedNote(t, store, b.ID, "Chapter 1", "attention residue ruins output")
	seedIdeas(t, store, b.ID, "Focus compounds")

	reply, err := svc.Chat(ctx, ChatRequest{
		BookID:  b.ID,
		Message: "What does he say about focus?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Great question about focus.", reply)

	// Notes and idea cards land in the system prompt.
	req := client.lastRequest(t)
	assert.Contains(t, req.Messages[0].Content, "attention residue ruins output")
	assert.Contains(t, req.Messages[0].Content, "Focus compounds")

	turns, err := svc.History(ctx, b.ID, 0)
	require.NoError(t, err)
	require.Len(t, turns, 2)
	assert.Equal(t, domain.RoleUser, turns[0].Role)
	assert.Equal(t, "What does he say about focus?", turns[0].Content)
	assert.Equal(t, domain.RoleAssistant, turns[1].Role)
	assert.Equal(t, "Great question about focus.", turns[1].Content)
}

func TestChatForwardsClientHistory(t *testing.T) {
	store := newTestStore(t)
	client := &fakeLLM{responses: []string{"reply"}}
	svc := newChatService(t, store, client)
	b := seedBook(t, store, "book_1", "Deep Work", "Cal Newport")

	_, err := svc.Chat(context.Background(), ChatRequest{
		BookID:  b.ID,
		Message: "and then?",
		History: []ChatTurn{
			{Role: "user", Content: "earlier question"},
			{Role: "assistant", Content: "earlier answer"},
		},
	})
	require.NoError(t, err)

	req := client.lastRequest(t)
	// system + 2 history turns + user message
	require.Len(t, req.Messages, 4)
	assert.Equal(t, "earlier question", req.Messages[1].Content)
	assert.Equal(t, "earlier answer", req.Messages[2].Content)
	assert.Equal(t, "and then?", req.Messages[3].Content)
}

func TestChatLibraryModePullsOtherBooks(t *testing.T) {
	store := newTestStore(t)
	client := &fakeLLM{responses: []string{"reply"}}
	svc := newChatService(t, store, client)
	b := seedBook(t, store, "book_1", "Deep Work", "Cal Newport")
	other := seedBook(t, store, "book_2", "Atomic Habits", "James Clear")
	seedIdeas(t, store, other.ID, "Habits stack")
	seedBook(t, store, "book_3", "No Ideas Yet", "Anon")

	_, err := svc.Chat(context.Background(), ChatRequest{
		BookID:      b.ID,
		Message:     "connect this to my other reading",
		LibraryMode: true,
	})
	require.NoError(t, err)

	system := client.lastRequest(t).Messages[0].Content
	assert.Contains(t, system, "Atomic Habits")
	assert.Contains(t, system, "Habits stack")
	assert.NotContains(t, system, "No Ideas Yet")
}

func TestChatUnknownBook(t *testing.T) {
	svc := newChatService(t, newTestStore(t), &fakeLLM{})

	_, err := svc.Chat(context.Background(), ChatRequest{BookID: "book_missing", Message: "hi"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestSuggestUsesDraftAndIdeas(t *testing.T) {
	store := newTestStore(t)
	client := &fakeLLM{responses: []string{"  keep going with the compounding angle  "}}
	svc := newChatService(t, store, client)
	b := seedBook(t, store, "book_1", "Deep Work", "Cal Newport")
	seedIdeas(t, store, b.ID, "Focus compounds")

	suggestion, err := svc.Suggest(context.Background(), SuggestRequest{
		BookID:      b.ID,
		CurrentText: "Deep work matters because",
	})
	require.NoError(t, err)
	assert.Equal(t, "keep going with the compounding angle", suggestion)

	req := client.lastRequest(t)
	assert.Contains(t, req.Messages[1].Content, "Deep work matters because")
	assert.False(t, req.JSONMode)
}
