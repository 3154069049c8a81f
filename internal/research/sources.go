// Package research implements the synchronous research operations: finding
// additional sources for a claim and producing a deep-research brief. Both
// reuse the schema-constrained generative call; neither is streamed.
package research

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/llm"
)

const sourcesSystemPrompt = `You are a research assistant helping to verify claims by finding additional credible sources.

Given a claim, search the web and find 3-5 additional credible sources that discuss, verify, or dispute this claim.

For each source, provide:
1. The title of the article/source
2. A brief summary of what the source says about the claim
3. The source name (e.g., "BBC News", "Nature Journal", "Reuters")
4. The URL
5. Publication date if available

Focus on credible, authoritative sources like:
- Major news organizations (Reuters, AP, BBC, NYT, WSJ)
- Academic journals and research institutions
- Government sources and official statistics
- Established fact-checking organizations (Snopes, FactCheck.org, PolitiFact)

Avoid personal blogs, social media posts, or unreliable sources.`

// Source is one additional source summary.
type Source struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Source  string `json:"source"`
	URL     string `json:"url"`
	Date    string `json:"date"`
}

// Researcher runs the secondary research operations.
type Researcher struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewResearcher creates a researcher.
func NewResearcher(provider llm.Provider, logger *zap.Logger) *Researcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Researcher{provider: provider, logger: logger}
}

type sourcesPayload struct {
	Sources []Source `json:"sources"`
}

// AdditionalSources finds 3-5 further credible sources for a claim.
// currentSource, when known, is excluded from the search.
func (r *Researcher) AdditionalSources(ctx context.Context, claim, currentSource string) ([]Source, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"sources": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"title":   {Type: jsonschema.String},
						"summary": {Type: jsonschema.String},
						"source":  {Type: jsonschema.String},
						"url":     {Type: jsonschema.String},
						"date":    {Type: jsonschema.String},
					},
					Required: []string{"title", "summary", "source"},
				},
			},
		},
		Required: []string{"sources"},
	}

	userPrompt := claim
	if currentSource != "" {
		userPrompt = fmt.Sprintf("%s\n\n(Already found: %s. Do not repeat it.)", claim, currentSource)
	}

	raw, err := r.provider.Generate(ctx, llm.Request{
		SystemPrompt: sourcesSystemPrompt,
		UserPrompt:   userPrompt,
		SchemaName:   "additional_sources",
		Schema:       schema,
		WebSearch:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("additional sources: %w", err)
	}

	var payload sourcesPayload
	if err := llm.Decode(raw, &payload); err != nil {
		return nil, fmt.Errorf("additional sources: %w", err)
	}

	r.logger.Debug("additional sources found", zap.Int("count", len(payload.Sources)))
	return payload.Sources, nil
}
