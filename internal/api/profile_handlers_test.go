package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileBeforeSave(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{}, nil)

	resp := ts.api.Get("/api/profile")
	require.Equal(t, http.StatusOK, resp.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Empty(t, profile.Positioning)
	assert.Empty(t, profile.Audience)
	assert.Empty(t, profile.Tone)
}

func TestSaveProfileReplacesWholeProfile(t *testing.T) {
	ts := setupTestServer(t, &fakeLLM{}, nil)

	resp := ts.api.Put("/api/profile", map[string]any{
		"positioning": "systems thinking for writers",
		"audience":    "newsletter readers",
		"tone":        "direct, warm",
	})
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	// Omitted fields clear on the next save.
	resp = ts.api.Put("/api/profile", map[string]any{
		"positioning": "habit design",
	})
	require.Equal(t, http.StatusOK, resp.Code)

	resp = ts.api.Get("/api/profile")
	require.Equal(t, http.StatusOK, resp.Code)

	var profile ProfileResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &profile))
	assert.Equal(t, "habit design", profile.Positioning)
	assert.Empty(t, profile.Audience)
	assert.Empty(t, profile.Tone)
}
