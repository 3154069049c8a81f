// Package verify checks a single claim through a tiered lookup: a structured
// fact-check database first, generative corroboration with live web search
// when the database has nothing.
package verify

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/factcheck"
	"github.com/veristream/veristream/internal/llm"
	"github.com/veristream/veristream/internal/model"
)

// Verifier resolves one claim to a ClaimResult. It never returns an error:
// per-claim failures degrade to a Questionable result carrying the error
// message, so one bad claim cannot abort a whole request.
type Verifier struct {
	factcheck *factcheck.Client
	corr      *Corroborator
	logger    *zap.Logger
}

// NewVerifier creates a tiered claim verifier.
func NewVerifier(fc *factcheck.Client, provider llm.Provider, logger *zap.Logger) *Verifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Verifier{
		factcheck: fc,
		corr:      NewCorroborator(provider, logger),
		logger:    logger,
	}
}

// Verify runs the two-stage strategy. A fact-check match always wins: the
// generative fallback is only consulted when the structured lookup found
// nothing at all.
func (v *Verifier) Verify(ctx context.Context, claimText string) model.ClaimResult {
	result, found, err := v.factcheck.Lookup(ctx, claimText)
	if err != nil {
		v.logger.Warn("fact-check lookup failed", zap.String("claim", claimText), zap.Error(err))
		return model.ClaimResult{
			Claim:            claimText,
			Status:           model.VerdictQuestionable,
			Source:           "Error during verification",
			SourceURL:        "",
			Explanation:      err.Error(),
			SourceScore:      0,
			SourceReputation: "Unknown",
		}
	}

	if found {
		v.logger.Debug("fact-check match",
			zap.String("claim", claimText),
			zap.String("source", result.Source),
			zap.String("status", string(result.Status)))
		return *result
	}

	return v.corr.Corroborate(ctx, claimText)
}

// NormalizeScore maps a model-reported reputability score onto the 0-100
// integer range. Models sometimes emit a fraction instead of an integer; a
// value in (0, 1] is treated as a ratio.
func NormalizeScore(score float64) int {
	if score > 0 && score <= 1 {
		score *= 100
	}
	n := int(math.Round(score))
	if n < 0 {
		return 0
	}
	if n > 100 {
		return 100
	}
	return n
}
