package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"
)

// Provider defines the interface to the generative backend. Every call is
// schema-constrained: the raw payload returned by Generate must still be
// decoded and validated by the caller before being treated as typed data.
type Provider interface {
	// Name returns the provider name for logging and result attribution.
	Name() string

	// Generate runs one schema-constrained completion and returns the raw
	// JSON payload produced by the model.
	Generate(ctx context.Context, req Request) (json.RawMessage, error)
}

// Request describes one generative call.
type Request struct {
	// SystemPrompt sets the model's role and output contract.
	SystemPrompt string

	// UserPrompt is the article text, claim or domain under analysis.
	UserPrompt string

	// SchemaName labels the response schema (required by the wire format).
	SchemaName string

	// Schema is the declared shape of the model's JSON output.
	Schema *jsonschema.Definition

	// WebSearch enables live search augmentation. Search-capable models
	// cannot combine tool use with a forced response format, so in this
	// mode the JSON object is recovered from the text output instead.
	WebSearch bool

	// MaxTokens overrides the configured response budget when non-zero.
	MaxTokens int
}

// Config holds generative backend configuration.
type Config struct {
	// APIKey authenticates against the backend.
	APIKey string

	// BaseURL selects the vendor endpoint (OpenAI wire format assumed).
	BaseURL string

	// Model is the model name (e.g. "sonar-pro").
	Model string

	// Timeout bounds a single API call.
	Timeout int // seconds

	// MaxTokens limits response length.
	MaxTokens int
}

// Decode unmarshals a raw model payload into a typed record. A payload that
// does not decode means the model broke its structural promise; callers route
// that into their degraded-error path.
func Decode(raw json.RawMessage, v any) error {
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("model output does not match declared schema: %w", err)
	}
	return nil
}

// extractJSONObject recovers the first JSON object embedded in free text.
// Search-augmented completions return prose around the object.
func extractJSONObject(text string) (json.RawMessage, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON object in model output")
	}
	candidate := json.RawMessage(text[start : end+1])
	if !json.Valid(candidate) {
		return nil, fmt.Errorf("embedded JSON object is malformed")
	}
	return candidate, nil
}
