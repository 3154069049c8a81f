package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionState tracks where a request is in the verification pipeline.
type SessionState string

const (
	StateIdle       SessionState = "idle"
	StateExtracting SessionState = "extracting"
	StateVerifying  SessionState = "verifying"
	StateComplete   SessionState = "complete"
	StateFailed     SessionState = "failed"
)

// AnalysisSession is the aggregate for one verification request. It holds
// the whole-article analyses (nil until arrived) and the ordered sequence of
// claim results. Only the pipeline mutates it, and it is never shared across
// requests.
type AnalysisSession struct {
	ID         uuid.UUID
	ArticleURL string
	StartedAt  time.Time

	State      SessionState
	Site       *SiteAnalysis
	Sentiment  *SentimentAnalysis
	Authorship *AuthorshipAnalysis
	Results    []ClaimResult
}

// NewAnalysisSession creates a session in the Idle state.
func NewAnalysisSession(articleURL string) *AnalysisSession {
	return &AnalysisSession{
		ID:         uuid.New(),
		ArticleURL: articleURL,
		StartedAt:  time.Now().UTC(),
		State:      StateIdle,
	}
}

// AppendResult records a verified claim. Results are append-only; order of
// appends equals order of verification.
func (s *AnalysisSession) AppendResult(r ClaimResult) {
	s.Results = append(s.Results, r)
}
