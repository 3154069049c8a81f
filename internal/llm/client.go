package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/veristream/veristream/internal/util"
)

// Client implements Provider over any backend speaking the OpenAI
// chat-completions wire format. The default deployment points it at a
// search-capable hosted model.
type Client struct {
	api    *openai.Client
	config Config
}

// NewClient creates a generative backend client.
func NewClient(config Config) (*Client, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("generative backend API key is required")
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Client{
		api:    openai.NewClientWithConfig(clientConfig),
		config: config,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return "sonar"
}

// Generate runs one schema-constrained completion.
func (c *Client) Generate(ctx context.Context, req Request) (json.RawMessage, error) {
	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.config.MaxTokens
	}
	if maxTokens == 0 {
		maxTokens = 2048
	}

	chatReq := openai.ChatCompletionRequest{
		Model: c.config.Model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: req.SystemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: util.SanitizePrompt(req.UserPrompt),
			},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.1, // factual output; go-openai drops an exact zero
	}

	// A forced response format and tool-driven search are mutually
	// exclusive, so search-mode responses carry the JSON inside text.
	if !req.WebSearch && req.Schema != nil {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   req.SchemaName,
				Schema: req.Schema,
				Strict: true,
			},
		}
	}

	resp, err := c.api.CreateChatCompletion(ctxWithTimeout, chatReq)
	if err != nil {
		return nil, fmt.Errorf("generative backend: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("generative backend returned no choices")
	}

	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if req.WebSearch {
		raw, err := extractJSONObject(content)
		if err != nil {
			return nil, fmt.Errorf("generative backend: %w", err)
		}
		return raw, nil
	}

	raw := json.RawMessage(content)
	if !json.Valid(raw) {
		return nil, fmt.Errorf("generative backend returned invalid JSON")
	}
	return raw, nil
}
