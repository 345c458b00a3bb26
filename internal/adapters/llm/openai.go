package llm

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/devgrade/interview-agent/internal/domain"
)

// groqBaseURL is Groq's OpenAI-compatible endpoint; the same client serves
// both providers.
const groqBaseURL = "https://api.groq.com/openai/v1"

const defaultGroqModel = "llama-3.3-70b-versatile"

// Client implements domain.TextGenerator over any OpenAI-compatible chat
// completion API. Each call is stateless, so one client is safe to share
// across concurrent sessions.
type Client struct {
	client *openai.Client
	model  string
	temp   float32
}

// NewOpenAIClient creates a generator backed by the OpenAI API.
func NewOpenAIClient(apiKey, model string, temperature float32) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is empty")
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	slog.Info("initializing OpenAI text generator", "model", model)
	return &Client{
		client: openai.NewClient(apiKey),
		model:  model,
		temp:   temperature,
	}, nil
}

// NewGroqClient creates a generator backed by Groq's OpenAI-compatible API.
// Used as the fallback provider when no OpenAI key is configured.
func NewGroqClient(apiKey, model string, temperature float32) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("groq: API key is empty")
	}
	if model == "" {
		model = defaultGroqModel
	}
	slog.Warn("using Groq as the text generation backend", "model", model)

	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		temp:   temperature,
	}, nil
}

// Generate implements domain.TextGenerator.
func (c *Client) Generate(ctx context.Context, req domain.GenerateRequest) (string, error) {
	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temp,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
	}
	if req.Temperature != nil {
		chatReq.Temperature = *req.Temperature
	}
	if req.MaxTokens > 0 {
		chatReq.MaxCompletionTokens = req.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}

	return resp.Choices[0].Message.Content, nil
}
