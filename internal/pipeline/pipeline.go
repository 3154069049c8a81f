// Package pipeline coordinates one verification request: claim extraction
// and the three whole-article analyses run concurrently, then each extracted
// claim is verified sequentially, with a progress event emitted after every
// sub-step.
package pipeline

import (
	"context"
	"fmt"
	"sync"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/veristream/veristream/internal/analyze"
	"github.com/veristream/veristream/internal/extract"
	"github.com/veristream/veristream/internal/model"
	"github.com/veristream/veristream/internal/stream"
	"github.com/veristream/veristream/internal/verify"
	"github.com/veristream/veristream/internal/worker"
)

// Pipeline runs the verification flow for one article.
type Pipeline struct {
	extractor     *extract.ClaimExtractor
	analyzer      *analyze.Analyzer
	verifier      *verify.Verifier
	pacer         *worker.Pacer
	minClaimChars int
	logger        *zap.Logger
}

// NewPipeline assembles a pipeline from its stages.
func NewPipeline(extractor *extract.ClaimExtractor, analyzer *analyze.Analyzer, verifier *verify.Verifier, pacer *worker.Pacer, minClaimChars int, logger *zap.Logger) *Pipeline {
	if minClaimChars <= 0 {
		minClaimChars = 10
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		extractor:     extractor,
		analyzer:      analyzer,
		verifier:      verifier,
		pacer:         pacer,
		minClaimChars: minClaimChars,
		logger:        logger,
	}
}

// Request is one article submission. Validation has already happened at the
// server boundary.
type Request struct {
	ArticleText string
	ArticleURL  string
}

// Run executes the full flow, emitting progress events as it goes. Claim
// verification order equals extraction order, and event emission order
// equals verification order.
//
// Analyzer failures are absorbed into Unknown records and per-claim failures
// into Questionable results; only extraction failure and a dead transport
// abort the request. A returned error means the stream is already terminated
// (error event sent) or unreachable.
func (p *Pipeline) Run(ctx context.Context, req Request, session *model.AnalysisSession, emit stream.Emitter) error {
	log := p.logger.With(zap.String("session", session.ID.String()), zap.String("url", req.ArticleURL))

	session.State = model.StateExtracting
	if err := emit.Emit(stream.Event{Type: stream.EventStatus, Data: stream.StatusPayload{
		Message: "Extracting claims and analyzing article...",
	}}); err != nil {
		return err
	}

	// Fan out: extraction plus the three analyzers, no shared state, join
	// on all four. The pacer still serializes the underlying backend calls.
	var (
		wg         sync.WaitGroup
		candidates []model.ClaimCandidate
		extractErr error
		sentiment  model.SentimentAnalysis
		authorship model.AuthorshipAnalysis
		site       model.SiteAnalysis
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		if err := p.pacer.Wait(ctx); err != nil {
			extractErr = err
			return
		}
		candidates, extractErr = p.extractor.Extract(ctx, req.ArticleText)
	}()
	go func() {
		defer wg.Done()
		if err := p.pacer.Wait(ctx); err != nil {
			sentiment = model.UnknownSentimentAnalysis("Analysis cancelled.")
			return
		}
		sentiment = p.analyzer.Sentiment(ctx, req.ArticleText)
	}()
	go func() {
		defer wg.Done()
		if err := p.pacer.Wait(ctx); err != nil {
			authorship = model.UnknownAuthorshipAnalysis("Analysis cancelled.")
			return
		}
		authorship = p.analyzer.Authorship(ctx, req.ArticleText)
	}()
	go func() {
		defer wg.Done()
		if err := p.pacer.Wait(ctx); err != nil {
			site = model.UnknownSiteAnalysis("Unknown", "Analysis cancelled.")
			return
		}
		site = p.analyzer.Site(ctx, req.ArticleURL)
	}()
	wg.Wait()

	if extractErr != nil {
		session.State = model.StateFailed
		log.Error("claim extraction failed", zap.Error(extractErr))
		_ = emit.Emit(stream.Event{Type: stream.EventError, Data: stream.ErrorPayload{
			Error: extractErr.Error(),
		}})
		return fmt.Errorf("claim extraction: %w", extractErr)
	}

	session.Site = &site
	session.Sentiment = &sentiment
	session.Authorship = &authorship
	log.Info("first wave complete", zap.Int("rawClaims", len(candidates)))

	if err := emit.Emit(stream.Event{Type: stream.EventStep1, Data: stream.Step1Payload{
		SiteAnalysis:   site,
		Sentiment:      sentiment,
		Authorship:     authorship,
		RawClaimsCount: len(candidates),
	}}); err != nil {
		return err
	}

	session.State = model.StateVerifying
	if err := emit.Emit(stream.Event{Type: stream.EventStatus, Data: stream.StatusPayload{
		Message: fmt.Sprintf("Verifying %d claims...", len(candidates)),
	}}); err != nil {
		return err
	}

	// Sequential by design: one in-flight external call at a time keeps the
	// backends under their per-minute quotas.
	for i, candidate := range candidates {
		cleaned := model.CleanClaim(candidate.Claim)
		if utf8.RuneCountInString(cleaned) < p.minClaimChars {
			log.Debug("skipping junk claim", zap.String("claim", candidate.Claim))
			continue
		}

		if err := emit.Emit(stream.Event{Type: stream.EventStatus, Data: stream.StatusPayload{
			Message: fmt.Sprintf("Verifying claim %d/%d...", i+1, len(candidates)),
		}}); err != nil {
			return err
		}

		if err := p.pacer.Wait(ctx); err != nil {
			session.State = model.StateFailed
			_ = emit.Emit(stream.Event{Type: stream.EventError, Data: stream.ErrorPayload{
				Error: err.Error(),
			}})
			return err
		}

		result := p.verifier.Verify(ctx, cleaned)
		result.OriginalSentence = candidate.OriginalSentence
		if result.OriginalSentence == "" {
			result.OriginalSentence = cleaned
		}

		session.AppendResult(result)
		if err := emit.Emit(stream.Event{Type: stream.EventClaim, Data: result}); err != nil {
			return err
		}
	}

	session.State = model.StateComplete
	log.Info("analysis complete", zap.Int("totalClaims", len(session.Results)))

	return emit.Emit(stream.Event{Type: stream.EventComplete, Data: stream.CompletePayload{
		Status:      "success",
		TotalClaims: len(session.Results),
	}})
}
