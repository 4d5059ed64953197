package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOllamaStub(t *testing.T, path, body string) (*OllamaClient, *map[string]interface{}) {
	t.Helper()
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, path, r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewOllamaClient(srv.URL+"/", "chat-m", "embed-m", 5*time.Second), &got
}

func TestOllamaEmbedOne(t *testing.T) {
	client, got := newOllamaStub(t, "/api/embed", `{"model":"embed-m","embeddings":[[0.1,0.2,0.3]]}`)

	vec, err := client.EmbedOne(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
	assert.Equal(t, "embed-m", (*got)["model"])
	assert.Equal(t, "hello", (*got)["input"])
}

func TestOllamaEmbedOne_ProtocolErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"model":"embed-m"}`},
		{"null field", `{"embeddings":null}`},
		{"empty list", `{"embeddings":[]}`},
		{"empty vector", `{"embeddings":[[]]}`},
		{"not json", `<html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newOllamaStub(t, "/api/embed", tt.body)
			_, err := client.EmbedOne(context.Background(), "x")
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrUpstreamProtocol)
		})
	}
}

func TestOllamaChat(t *testing.T) {
	client, got := newOllamaStub(t, "/api/chat", `{"message":{"role":"assistant","content":"Repair it."}}`)

	out, err := client.Chat(context.Background(), "sys", "usr")
	require.NoError(t, err)
	assert.Equal(t, "Repair it.", out)
	assert.Equal(t, "chat-m", (*got)["model"])
	assert.Equal(t, false, (*got)["stream"])

	messages, ok := (*got)["messages"].([]interface{})
	require.True(t, ok)
	require.Len(t, messages, 2)
	assert.Equal(t, "system", messages[0].(map[string]interface{})["role"])
	assert.Equal(t, "usr", messages[1].(map[string]interface{})["content"])
}

func TestOllamaChat_MissingContentIsEmpty(t *testing.T) {
	client, _ := newOllamaStub(t, "/api/chat", `{"message":{"role":"assistant"}}`)

	out, err := client.Chat(context.Background(), "s", "u")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestOllamaChat_MissingMessage(t *testing.T) {
	client, _ := newOllamaStub(t, "/api/chat", `{"done":true}`)

	_, err := client.Chat(context.Background(), "s", "u")
	assert.ErrorIs(t, err, ErrUpstreamProtocol)
}

func TestOllama_HTTPErrorIsNotProtocol(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()
	client := NewOllamaClient(srv.URL, "c", "e", time.Second)

	_, err := client.EmbedOne(context.Background(), "x")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpstreamProtocol)
	assert.Contains(t, err.Error(), "404")
}
