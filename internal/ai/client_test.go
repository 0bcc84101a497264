package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/supportiq/helpdesk/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(config.AIConfig{
		BaseURL:           server.URL,
		APIKey:            "test-key",
		Model:             "llama-3.1-8b-instant",
		TimeoutSeconds:    5,
		RequestsPerMinute: 600,
	}, zap.NewNop())
}

func chatCompletion(content string) []byte {
	raw, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	return raw
}

func TestClient_Generate_Success(t *testing.T) {
	var captured chatRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write(chatCompletion("Here is the answer."))
	})

	got, err := client.Generate(context.Background(), "be helpful", "what now", 0.3)
	require.NoError(t, err)
	assert.Equal(t, "Here is the answer.", got)

	assert.Equal(t, "llama-3.1-8b-instant", captured.Model)
	require.Len(t, captured.Messages, 2)
	assert.Equal(t, chatMessage{Role: "system", Content: "be helpful"}, captured.Messages[0])
	assert.Equal(t, chatMessage{Role: "user", Content: "what now"}, captured.Messages[1])
	assert.Equal(t, 0.3, captured.Temperature)
}

func TestClient_Generate_UpstreamError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.Generate(context.Background(), "system", "user", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 429")
}

func TestClient_Generate_EmptyChoices(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Generate(context.Background(), "system", "user", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestClient_Generate_MalformedBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := client.Generate(context.Background(), "system", "user", 0)
	require.Error(t, err)
}

func TestClient_Generate_CancelledContext(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(chatCompletion("never seen"))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, "system", "user", 0)
	require.Error(t, err)
}
