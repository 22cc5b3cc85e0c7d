package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveNoteUpserts(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{}, nil)
	b := ts.seedBook(t, "book_1", "Range", "David Epstein")

	resp := ts.api.Post("/api/notes", map[string]any{
		"book_id":       b.ID,
		"chapter_name":  "Chapter 1",
		"chapter_order": 1,
		"content":       "first pass",
	})
	require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

	var first NoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &first))

	resp = ts.api.Post("/api/notes", map[string]any{
		"book_id":       b.ID,
		"chapter_name":  "Chapter 1",
		"chapter_order": 1,
		"content":       "second pass",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var second NoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &second))
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "second pass", second.Content)

	resp = ts.api.Get("/api/notes?book_id=" + b.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	var notes []NoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &notes))
	require.Len(t, notes, 1)
}

func TestSaveNoteUnknownBook(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{}, nil)

	resp := ts.api.Post("/api/notes", map[string]any{
		"book_id":      "book_missing",
		"chapter_name": "Chapter 1",
	})
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestUpdateAndDeleteNote(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{}, nil)
	b := ts.seedBook(t, "book_1", "Range", "David Epstein")

	resp := ts.api.Post("/api/notes", map[string]any{
		"book_id":      b.ID,
		"chapter_name": "Intro",
		"content":      "start",
	})
	require.Equal(t, http.StatusCreated, resp.Code)

	var note NoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &note))

	resp = ts.api.Patch("/api/notes/"+note.ID, map[string]any{"content": "revised"})
	require.Equal(t, http.StatusOK, resp.Code)

	var updated NoteResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &updated))
	assert.Equal(t, "revised", updated.Content)

	resp = ts.api.Delete("/api/notes/" + note.ID)
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Delete("/api/notes/" + note.ID)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}
