package factcheck

import (
	"strings"

	"github.com/veristream/veristream/internal/model"
)

// MapRating converts a publisher's free-text rating into a verdict using
// substring rules. The "false"/"misleading" check runs first and wins; a
// rating containing both "false" and "true" (e.g. "Mostly False, not true")
// maps to Disputed. Ambiguous ratings resolve to whichever rule matches
// first; this ordering is part of the contract and must not be reordered.
func MapRating(rating string) model.Verdict {
	lower := strings.ToLower(rating)

	if strings.Contains(lower, "false") || strings.Contains(lower, "misleading") {
		return model.VerdictDisputed
	}
	if strings.Contains(lower, "true") {
		return model.VerdictVerified
	}
	return model.VerdictQuestionable
}
