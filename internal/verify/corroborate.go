package verify

import (
	"context"

	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/llm"
	"github.com/veristream/veristream/internal/model"
)

const corroborateSystemPrompt = `You are a fact-check researcher. You will be given a factual claim. Your job is to use web search to determine if the claim is "Verified" (true), "Disputed" (false), or "Questionable" (unverified).

You MUST find the *single best* source (e.g., a reputable news article or encyclopedia) that supports your conclusion, and rate that source's reputability.

You MUST respond with only a valid JSON object. Do not add any other text.
Your JSON object must follow this exact schema:
{
  "status": "Verified" | "Disputed" | "Questionable",
  "explanation": "A brief explanation of your findings.",
  "sourceName": "The name of the best source (e.g., 'Reuters', 'Wikipedia')",
  "sourceUrl": "The full URL of that source",
  "sourceScore": 85,
  "sourceReputation": "High" | "Mixed" | "Low" | "Unknown"
}
You MUST use one of the three specified strings for the "status" field. "sourceScore" is a number from 0 to 100 rating the source's reputability. If you cannot find a specific source URL, you MUST return an empty string "" for sourceUrl.`

// Corroborator asks the generative backend, with live web-search
// augmentation, to research a claim the fact-check database has never seen.
type Corroborator struct {
	provider llm.Provider
	logger   *zap.Logger
}

// NewCorroborator creates a generative corroborator.
func NewCorroborator(provider llm.Provider, logger *zap.Logger) *Corroborator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Corroborator{provider: provider, logger: logger}
}

type corroborationPayload struct {
	Status           string  `json:"status"`
	Explanation      string  `json:"explanation"`
	SourceName       string  `json:"sourceName"`
	SourceURL        string  `json:"sourceUrl"`
	SourceScore      float64 `json:"sourceScore"`
	SourceReputation string  `json:"sourceReputation"`
}

// Corroborate researches a claim and returns a verdict with the single best
// supporting source. Backend failures and schema violations degrade to a
// Questionable result carrying the error message; they never propagate.
func (c *Corroborator) Corroborate(ctx context.Context, claimText string) model.ClaimResult {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"status":           {Type: jsonschema.String, Enum: []string{"Verified", "Disputed", "Questionable"}},
			"explanation":      {Type: jsonschema.String},
			"sourceName":       {Type: jsonschema.String},
			"sourceUrl":        {Type: jsonschema.String},
			"sourceScore":      {Type: jsonschema.Number},
			"sourceReputation": {Type: jsonschema.String, Enum: []string{"High", "Mixed", "Low", "Unknown"}},
		},
		Required: []string{"status", "explanation", "sourceName", "sourceUrl", "sourceScore", "sourceReputation"},
	}

	raw, err := c.provider.Generate(ctx, llm.Request{
		SystemPrompt: corroborateSystemPrompt,
		UserPrompt:   claimText,
		SchemaName:   "corroboration",
		Schema:       schema,
		WebSearch:    true,
	})
	if err != nil {
		c.logger.Warn("corroboration failed", zap.String("claim", claimText), zap.Error(err))
		return c.degraded(claimText, err.Error())
	}

	var payload corroborationPayload
	if err := llm.Decode(raw, &payload); err != nil {
		c.logger.Warn("corroboration returned malformed payload", zap.String("claim", claimText), zap.Error(err))
		return c.degraded(claimText, err.Error())
	}

	status := model.Verdict(payload.Status)
	switch status {
	case model.VerdictVerified, model.VerdictDisputed, model.VerdictQuestionable:
	default:
		c.logger.Warn("corroboration returned unrecognized status",
			zap.String("claim", claimText), zap.String("status", payload.Status))
		return c.degraded(claimText, "model returned unrecognized verdict: "+payload.Status)
	}

	source := payload.SourceName
	if source == "" {
		source = "Web Search"
	}
	reputation := payload.SourceReputation
	if reputation == "" {
		reputation = "Unknown"
	}

	c.logger.Debug("corroboration complete",
		zap.String("claim", claimText), zap.String("status", payload.Status))

	return model.ClaimResult{
		Claim:            claimText,
		Status:           status,
		Source:           source,
		SourceURL:        payload.SourceURL,
		Explanation:      payload.Explanation,
		SourceScore:      NormalizeScore(payload.SourceScore),
		SourceReputation: reputation,
	}
}

func (c *Corroborator) degraded(claimText, message string) model.ClaimResult {
	return model.ClaimResult{
		Claim:            claimText,
		Status:           model.VerdictQuestionable,
		Source:           "Error during corroboration",
		SourceURL:        "",
		Explanation:      message,
		SourceScore:      0,
		SourceReputation: "Unknown",
	}
}
