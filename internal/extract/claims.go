// Package extract segments raw article text into factual claim candidates
// using the generative backend.
package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/veristream/veristream/internal/llm"
	"github.com/veristream/veristream/internal/model"
)

const extractSystemPromptFmt = `You are a fact-checking assistant. Your job is to read the following article and extract the main factual claims. A "factual claim" is a statement that can be verified with evidence. It is NOT an opinion, a question, or a vague statement.

IMPORTANT:
1. Extract %d-%d of the most important factual claims.
2. DO NOT include any citations (e.g., [1][5]).
3. Simplify the claim. For example, "The claim that 'the earth is flat' contradicts evidence[2]" should become "The earth is flat."
4. For each claim, you MUST also provide the ORIGINAL SENTENCE from the article text where this claim appears. This should be the exact sentence as it appears in the article, not a simplified version.`

// ClaimExtractor extracts claim candidates from article text.
type ClaimExtractor struct {
	provider  llm.Provider
	claimsMin int
	claimsMax int
}

// NewClaimExtractor creates a claim extractor requesting between min and max
// candidates per article.
func NewClaimExtractor(provider llm.Provider, claimsMin, claimsMax int) *ClaimExtractor {
	if claimsMin <= 0 {
		claimsMin = 5
	}
	if claimsMax < claimsMin {
		claimsMax = claimsMin + 2
	}
	return &ClaimExtractor{
		provider:  provider,
		claimsMin: claimsMin,
		claimsMax: claimsMax,
	}
}

type extractionPayload struct {
	Claims []model.ClaimCandidate `json:"claims"`
}

// Extract asks the model for claim candidates with verbatim source
// sentences. The model is trusted to copy sentences verbatim, but because
// highlighting depends on it, sentences that are not substrings of the
// article are repaired by a normalized locate when possible. Extraction
// failure is fatal to the request: without candidates there is nothing to
// verify. The extractor never fabricates candidates beyond what the model
// returned.
func (e *ClaimExtractor) Extract(ctx context.Context, articleText string) ([]model.ClaimCandidate, error) {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"claims": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"claim":            {Type: jsonschema.String, Description: "The simplified, clean claim text"},
						"originalSentence": {Type: jsonschema.String, Description: "The exact original sentence from the article where this claim appears"},
					},
					Required: []string{"claim", "originalSentence"},
				},
			},
		},
		Required: []string{"claims"},
	}

	raw, err := e.provider.Generate(ctx, llm.Request{
		SystemPrompt: fmt.Sprintf(extractSystemPromptFmt, e.claimsMin, e.claimsMax),
		UserPrompt:   articleText,
		SchemaName:   "claim_candidates",
		Schema:       schema,
	})
	if err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	var payload extractionPayload
	if err := llm.Decode(raw, &payload); err != nil {
		return nil, fmt.Errorf("extract claims: %w", err)
	}

	candidates := make([]model.ClaimCandidate, 0, len(payload.Claims))
	for _, c := range payload.Claims {
		if strings.TrimSpace(c.Claim) == "" {
			continue
		}
		c.OriginalSentence = RepairSentence(articleText, c.OriginalSentence)
		candidates = append(candidates, c)
	}

	return candidates, nil
}
