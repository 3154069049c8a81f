// Package analyze runs the whole-article analyses: sentiment/bias,
// AI-authorship probability and site reputation. Each analyzer absorbs its
// own failure and returns an Unknown-valued record so the pipeline's
// concurrent join never fails because of one analyzer.
package analyze

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/cache"
	"github.com/veristream/veristream/internal/llm"
	"github.com/veristream/veristream/internal/model"
	"github.com/veristream/veristream/internal/util"
)

const (
	sentimentSystemPrompt = `You are an expert media analyst. Your job is to analyze the given news article for its language, sentiment, and potential bias.
- **Sentiment**: Is the overall tone Positive, Negative, or Neutral?
- **Bias**: Is the language objective, or does it use emotionally charged words? Rate the bias as "Objective", "Biased", or "Strongly Biased".`

	authorshipSystemPrompt = `You are an expert AI text detector. Analyze the given text's linguistic patterns (like perplexity and burstiness) to determine the probability that it was written by an AI.`

	siteSystemPrompt = `You are an expert media analyst. You will be given a domain name. Your job is to use web search to analyze its general reputation, trustworthiness, and political bias.

You MUST respond with *only* a valid JSON object and no other text.
The JSON object MUST conform to this exact schema. You MUST use *only* the strings from the 'enum' options.

{
  "domain": "example.com",
  "reputation": "High" | "Mixed" | "Low" | "Unknown",
  "politicalBias": "Left" | "Center-Left" | "Center" | "Center-Right" | "Right" | "Non-Partisan" | "N/A",
  "biasContext": "US Politics" | "Global" | "Tech Industry" | "Finance" | "N/A" | "Other",
  "explanation": "A brief 1-2 sentence summary of the site's reputation and why you gave these ratings."
}`
)

// Analyzer runs the three whole-article analyses.
type Analyzer struct {
	provider llm.Provider
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewAnalyzer creates an analyzer. cache may be nil; it is used only for
// site-reputation results, which are stable per domain.
func NewAnalyzer(provider llm.Provider, c cache.Cache, cacheTTL time.Duration, logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{
		provider: provider,
		cache:    c,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Sentiment classifies the article's tone and language bias.
func (a *Analyzer) Sentiment(ctx context.Context, articleText string) model.SentimentAnalysis {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"sentiment":   {Type: jsonschema.String, Enum: []string{"Positive", "Negative", "Neutral"}},
			"bias":        {Type: jsonschema.String, Enum: []string{"Objective", "Biased", "Strongly Biased"}},
			"explanation": {Type: jsonschema.String, Description: "A brief explanation for your ratings, pointing to specific language."},
		},
		Required: []string{"sentiment", "bias", "explanation"},
	}

	raw, err := a.provider.Generate(ctx, llm.Request{
		SystemPrompt: sentimentSystemPrompt,
		UserPrompt:   articleText,
		SchemaName:   "sentiment_analysis",
		Schema:       schema,
	})
	if err != nil {
		a.logger.Warn("sentiment analysis failed", zap.Error(err))
		return model.UnknownSentimentAnalysis("Failed to analyze sentiment due to an error.")
	}

	var result model.SentimentAnalysis
	if err := llm.Decode(raw, &result); err != nil || result.Sentiment == "" || result.Bias == "" {
		a.logger.Warn("sentiment analysis returned malformed payload", zap.Error(err))
		return model.UnknownSentimentAnalysis("Failed to analyze sentiment due to an error.")
	}
	return result
}

// Authorship estimates the probability the article was machine-written.
func (a *Analyzer) Authorship(ctx context.Context, articleText string) model.AuthorshipAnalysis {
	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"authorship":               {Type: jsonschema.String, Enum: []string{"Likely AI-Generated", "Likely Human-Written"}},
			"probability_ai_generated": {Type: jsonschema.Number},
			"explanation":              {Type: jsonschema.String, Description: "A brief explanation for your analysis, referencing the text's style."},
		},
		Required: []string{"authorship", "probability_ai_generated", "explanation"},
	}

	raw, err := a.provider.Generate(ctx, llm.Request{
		SystemPrompt: authorshipSystemPrompt,
		UserPrompt:   articleText,
		SchemaName:   "authorship_analysis",
		Schema:       schema,
	})
	if err != nil {
		a.logger.Warn("authorship analysis failed", zap.Error(err))
		return model.UnknownAuthorshipAnalysis("Failed to analyze authorship due to an error.")
	}

	var result model.AuthorshipAnalysis
	if err := llm.Decode(raw, &result); err != nil || result.Authorship == "" {
		a.logger.Warn("authorship analysis returned malformed payload", zap.Error(err))
		return model.UnknownAuthorshipAnalysis("Failed to analyze authorship due to an error.")
	}
	return result
}

// Site looks up the real-world reputation of the article's domain. This is
// the one analyzer that requires live web search. A malformed URL
// short-circuits to the Unknown record without calling the backend.
func (a *Analyzer) Site(ctx context.Context, articleURL string) model.SiteAnalysis {
	domain, err := util.DomainFromURL(articleURL)
	if err != nil {
		a.logger.Warn("site analysis: unparseable URL", zap.String("url", articleURL), zap.Error(err))
		return model.UnknownSiteAnalysis("Invalid URL", "The provided URL was invalid.")
	}

	key := cache.Key("site", domain)
	if a.cache != nil {
		if data, ok := a.cache.Get(key); ok {
			var cached model.SiteAnalysis
			if err := json.Unmarshal(data, &cached); err == nil {
				return cached
			}
		}
	}

	schema := &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"domain":        {Type: jsonschema.String},
			"reputation":    {Type: jsonschema.String, Enum: []string{"High", "Mixed", "Low", "Unknown"}},
			"politicalBias": {Type: jsonschema.String, Enum: []string{"Left", "Center-Left", "Center", "Center-Right", "Right", "Non-Partisan", "N/A"}},
			"biasContext":   {Type: jsonschema.String},
			"explanation":   {Type: jsonschema.String, Description: "A brief summary of the site's reputation and why you gave these ratings."},
		},
		Required: []string{"domain", "reputation", "politicalBias", "biasContext", "explanation"},
	}

	raw, err := a.provider.Generate(ctx, llm.Request{
		SystemPrompt: siteSystemPrompt,
		UserPrompt:   domain,
		SchemaName:   "site_analysis",
		Schema:       schema,
		WebSearch:    true,
	})
	if err != nil {
		a.logger.Warn("site analysis failed", zap.String("domain", domain), zap.Error(err))
		return model.UnknownSiteAnalysis(domain, "Failed to analyze site reputation due to an error.")
	}

	var result model.SiteAnalysis
	if err := llm.Decode(raw, &result); err != nil || result.Reputation == "" {
		a.logger.Warn("site analysis returned malformed payload", zap.String("domain", domain), zap.Error(err))
		return model.UnknownSiteAnalysis(domain, "Failed to analyze site reputation due to an error.")
	}

	// The model occasionally echoes a different casing of the domain.
	result.Domain = domain

	if a.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = a.cache.Set(key, data, a.cacheTTL)
		}
	}

	return result
}
