package research

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/veristream/veristream/internal/llm"
)

const deepSystemPrompt = `You are an investigative researcher. You will be given a factual claim. Use web search to build a structured research brief on it.

Your brief must cover:
1. A concise summary of what is known about the claim.
2. The key points of evidence, each attributed to its source.
3. The current consensus among credible sources, if one exists.
4. The strongest counter-arguments or dissenting views.
5. A timeline of notable events or publications related to the claim.

You MUST respond with only a valid JSON object matching the requested schema. Do not add any other text.`

// Brief is a structured investigative summary of one claim.
type Brief struct {
	Summary          string   `json:"summary"`
	KeyPoints        []string `json:"keyPoints"`
	Consensus        string   `json:"consensus"`
	CounterArguments []string `json:"counterArguments"`
	Timeline         []string `json:"timeline"`
}

// DeepResearch produces an investigative brief for a claim.
func (r *Researcher) DeepResearch(ctx context.Context, claim string) (*Brief, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"summary":          {Type: jsonschema.String},
			"keyPoints":        {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
			"consensus":        {Type: jsonschema.String},
			"counterArguments": {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
			"timeline":         {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
		},
		Required: []string{"summary", "keyPoints", "consensus", "counterArguments", "timeline"},
	}

	raw, err := r.provider.Generate(ctx, llm.Request{
		SystemPrompt: deepSystemPrompt,
		UserPrompt:   claim,
		SchemaName:   "research_brief",
		Schema:       schema,
		WebSearch:    true,
		MaxTokens:    4096,
	})
	if err != nil {
		return nil, fmt.Errorf("deep research: %w", err)
	}

	var brief Brief
	if err := llm.Decode(raw, &brief); err != nil {
		return nil, fmt.Errorf("deep research: %w", err)
	}

	return &brief, nil
}
