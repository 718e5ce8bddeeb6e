package classify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/allang/companion-memory/internal/model"
)

// newMockChatServer serves an OpenAI-compatible chat completion returning the
// given content.
func newMockChatServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/chat/completions", r.URL.Path)

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		})
	}))
}

func newTestClassifier(serverURL string) *Classifier {
	return New(Config{
		Enabled: true,
		BaseURL: serverURL + "/v1",
		APIKey:  "test-key",
		Model:   "test-model",
	})
}

func TestClassifyDisabled(t *testing.T) {
	c := New(Config{})
	assert.False(t, c.Enabled())

	records, err := c.Classify(context.Background(), "user", "assistant")
	require.NoError(t, err)
	assert.Nil(t, records)

	// Enabled but without a model is still disabled.
	c = New(Config{Enabled: true})
	assert.False(t, c.Enabled())
}

func TestClassifyValidResponse(t *testing.T) {
	server := newMockChatServer(t,
		`[{"category": "long-term", "key": "likes", "value": "coffee", "priority": 3}]`)
	defer server.Close()

	c := newTestClassifier(server.URL)
	records, err := c.Classify(context.Background(), "커피가 좋아요", "커피를 기억할게요")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.CategoryLongTerm, records[0].Category)
	assert.Equal(t, "coffee", records[0].Value)
}

func TestClassifyFencedResponse(t *testing.T) {
	server := newMockChatServer(t,
		"```json\n[{\"category\": \"mid-term\", \"key\": \"기쁨\", \"value\": \"여행 중\"}]\n```")
	defer server.Close()

	c := newTestClassifier(server.URL)
	records, err := c.Classify(context.Background(), "u", "a")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, model.CategoryMidTerm, records[0].Category)
}

func TestClassifyMalformedResponse(t *testing.T) {
	server := newMockChatServer(t, `I could not produce JSON, sorry!`)
	defer server.Close()

	c := newTestClassifier(server.URL)
	records, err := c.Classify(context.Background(), "u", "a")
	require.NoError(t, err, "malformed payload must not surface as an error")
	assert.Empty(t, records)
}

func TestClassifyTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	c := newTestClassifier(server.URL)
	records, err := c.Classify(context.Background(), "u", "a")
	require.NoError(t, err, "transport failure is advisory, never an error")
	assert.Empty(t, records)
}
