package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const providerOpenAI = "openai"

// OpenAIClient serves the same contract through any OpenAI-compatible API.
type OpenAIClient struct {
	client     *openai.Client
	baseURL    string
	chatModel  string
	embedModel string
}

func NewOpenAIClient(baseURL, apiKey, chatModel, embedModel string, timeout time.Duration) (*OpenAIClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("openai api key is required")
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIClient{
		client:     openai.NewClientWithConfig(cfg),
		baseURL:    cfg.BaseURL,
		chatModel:  chatModel,
		embedModel: embedModel,
	}, nil
}

func (c *OpenAIClient) ChatModel() string      { return c.chatModel }
func (c *OpenAIClient) EmbeddingModel() string { return c.embedModel }

func (c *OpenAIClient) EmbedOne(ctx context.Context, text string) ([]float32, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequestStrings{
		Input: []string{text},
		Model: openai.EmbeddingModel(c.embedModel),
	})
	if err != nil {
		return nil, fmt.Errorf("embedding request failed: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, protocolError(providerOpenAI, c.embedModel, c.baseURL+"/embeddings", "no embeddings returned")
	}
	return resp.Data[0].Embedding, nil
}

func (c *OpenAIClient) Chat(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.chatModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		Stream: false,
	})
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", protocolError(providerOpenAI, c.chatModel, c.baseURL+"/chat/completions", "no completion choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}
