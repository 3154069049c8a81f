package model

import (
	"regexp"
	"strings"
)

// Verdict is the categorical outcome of checking a claim. The three values
// are independent outcomes, not points on a scale.
type Verdict string

const (
	VerdictVerified     Verdict = "Verified"
	VerdictDisputed     Verdict = "Disputed"
	VerdictQuestionable Verdict = "Questionable"
)

// ClaimCandidate is one extracted claim paired with the verbatim sentence it
// came from. OriginalSentence is what the highlight sink searches for in the
// rendered page, so it must be copied from the article, not paraphrased.
type ClaimCandidate struct {
	Claim            string `json:"claim"`
	OriginalSentence string `json:"originalSentence"`
}

// ClaimResult is the verification outcome for a single claim. Immutable once
// emitted on the event stream.
type ClaimResult struct {
	Claim            string  `json:"claim"`
	Status           Verdict `json:"status"`
	Source           string  `json:"source"`
	SourceURL        string  `json:"sourceUrl"`
	Explanation      string  `json:"explanation"`
	OriginalSentence string  `json:"originalSentence"`
	SourceScore      int     `json:"sourceScore"`
	SourceReputation string  `json:"sourceReputation"`
}

var citationPattern = regexp.MustCompile(`\[.*?\]`)

// CleanClaim strips bracketed citation markers (e.g. "[1][5]") and trims
// surrounding whitespace. Candidates whose cleaned text falls below the
// configured minimum length are treated as noise and dropped.
func CleanClaim(text string) string {
	return strings.TrimSpace(citationPattern.ReplaceAllString(text, ""))
}
