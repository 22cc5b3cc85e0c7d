package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const narrativeFixture = `{
	"themes":[{"name":"Compounding","ideas":[{"bookTitle":"Deep Work","ideaTitle":"Focus compounds","ideaBody":"body"}]}],
	"narrative":"Small consistent actions compound."
}`

func TestListNarrativeIdeas(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{}, nil)
	b := ts.seedBook(t, "book_1", "Deep Work", "Cal Newport")
	ts.seedBook(t, "book_2", "Range", "David Epstein")
	ts.seedIdeas(t, b.ID, "Focus compounds")

	resp := ts.api.Get("/api/narrative/ideas")
	require.Equal(t, http.StatusOK, resp.Code)

	var body NarrativeIdeasResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	require.Len(t, body.Books, 2)
	assert.Len(t, body.Books[0].Ideas, 1)
	assert.Empty(t, body.Books[1].Ideas)
}

func TestGenerateNarrative(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{responses: []string{narrativeFixture}}, nil)
	b1 := ts.seedBook(t, "book_1", "Deep Work", "Cal Newport")
	b2 := ts.seedBook(t, "book_2", "Atomic Habits", "James Clear")
	ts.seedIdeas(t, b1.ID, "Focus compounds")
	ts.seedIdeas(t, b2.ID, "Habits stack")

	resp := ts.api.Post("/api/narrative", map[string]any{})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var body map[string]any
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.NotEmpty(t, body["narrative"])
	assert.NotEmpty(t, body["themes"])
}

func TestGenerateNarrativeNeedsTwoBooks(t *testing.T) {
	client := &fakeLLM{responses: []string{narrativeFixture}}
	ts := setupTestServer(t, client, nil)
	b := ts.seedBook(t, "book_1", "Deep Work", "Cal Newport")
	ts.seedIdeas(t, b.ID, "Focus compounds")

	resp := ts.api.Post("/api/narrative", map[string]any{})
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, "Need ideas from at least 2 books to generate a narrative", body["error"])
	assert.Equal(t, 0, client.callCount())
}
