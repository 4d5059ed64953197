package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const providerOllama = "ollama"

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// OllamaClient calls the native Ollama /api/embed and /api/chat endpoints.
type OllamaClient struct {
	httpClient *http.Client
	baseURL    string
	chatModel  string
	embedModel string
}

func NewOllamaClient(baseURL, chatModel, embedModel string, timeout time.Duration) *OllamaClient {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OllamaClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		chatModel:  chatModel,
		embedModel: embedModel,
	}
}

func (c *OllamaClient) ChatModel() string      { return c.chatModel }
func (c *OllamaClient) EmbeddingModel() string { return c.embedModel }

// EmbedOne returns the embedding of a single text.
func (c *OllamaClient) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	url := c.baseURL + "/api/embed"
	raw, err := c.post(ctx, url, map[string]interface{}{
		"model": c.embedModel,
		"input": text,
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}

	var parsed struct {
		Embeddings *[][]float32 `json:"embeddings"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, protocolError(providerOllama, c.embedModel, url, "parse embedding json: %v", err)
	}
	if parsed.Embeddings == nil {
		return nil, protocolError(providerOllama, c.embedModel, url, "missing embeddings in response")
	}
	embeddings := *parsed.Embeddings
	if len(embeddings) == 0 || len(embeddings[0]) == 0 {
		return nil, protocolError(providerOllama, c.embedModel, url, "empty embeddings array")
	}
	return embeddings[0], nil
}

// Chat sends one system and one user message and returns the reply text.
func (c *OllamaClient) Chat(ctx context.Context, system, user string) (string, error) {
	url := c.baseURL + "/api/chat"
	raw, err := c.post(ctx, url, map[string]interface{}{
		"model":  c.chatModel,
		"stream": false,
		"messages": []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	var parsed struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", protocolError(providerOllama, c.chatModel, url, "parse chat json: %v", err)
	}
	if parsed.Message == nil {
		return "", protocolError(providerOllama, c.chatModel, url, "missing message in response")
	}
	if parsed.Message.Content == nil {
		return "", nil
	}
	return *parsed.Message.Content, nil
}

func (c *OllamaClient) post(ctx context.Context, url string, body interface{}) ([]byte, error) {
	bodyBytes, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("build request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response failed: %w", err)
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("response status %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
