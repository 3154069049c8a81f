package extract

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/veristream/veristream/internal/llm"
)

// fakeProvider returns a canned payload or error and records the request.
type fakeProvider struct {
	payload json.RawMessage
	err     error
	lastReq llm.Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func TestClaimExtractor_Extract(t *testing.T) {
	article := "The moon landing happened in 1969. NASA confirmed the date repeatedly."
	provider := &fakeProvider{payload: json.RawMessage(`{
		"claims": [
			{"claim": "The moon landing happened in 1969.", "originalSentence": "The moon landing happened in 1969."},
			{"claim": "", "originalSentence": "NASA confirmed the date repeatedly."}
		]
	}`)}

	extractor := NewClaimExtractor(provider, 5, 7)

	candidates, err := extractor.Extract(context.Background(), article)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(candidates) != 1 {
		t.Fatalf("Expected empty-claim candidate to be dropped, got %d candidates", len(candidates))
	}
	if candidates[0].Claim != "The moon landing happened in 1969." {
		t.Errorf("Unexpected claim: %q", candidates[0].Claim)
	}
	if candidates[0].OriginalSentence != "The moon landing happened in 1969." {
		t.Errorf("Unexpected original sentence: %q", candidates[0].OriginalSentence)
	}

	if provider.lastReq.Schema == nil {
		t.Error("Expected a schema-constrained request")
	}
	if provider.lastReq.WebSearch {
		t.Error("Extraction must not use web search")
	}
}

func TestClaimExtractor_RepairsParaphrasedSentence(t *testing.T) {
	article := "Officials said the Bridge   Toll rose to $9 in January."
	provider := &fakeProvider{payload: json.RawMessage(`{
		"claims": [
			{"claim": "The bridge toll rose to $9.", "originalSentence": "officials said the bridge toll rose to $9 in january."}
		]
	}`)}

	extractor := NewClaimExtractor(provider, 5, 7)

	candidates, err := extractor.Extract(context.Background(), article)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("Expected 1 candidate, got %d", len(candidates))
	}
	if candidates[0].OriginalSentence != "Officials said the Bridge   Toll rose to $9 in January." {
		t.Errorf("Expected repaired sentence from the article, got %q", candidates[0].OriginalSentence)
	}
}

func TestClaimExtractor_UnlocatableSentenceCleared(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"claims": [
			{"claim": "Inflation fell to 2%.", "originalSentence": "This sentence appears nowhere in the article."}
		]
	}`)}

	extractor := NewClaimExtractor(provider, 5, 7)

	candidates, err := extractor.Extract(context.Background(), "A short article about monetary policy and prices.")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if candidates[0].OriginalSentence != "" {
		t.Errorf("Expected unlocatable sentence to be cleared, got %q", candidates[0].OriginalSentence)
	}
}

func TestClaimExtractor_BackendError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("backend unavailable")}
	extractor := NewClaimExtractor(provider, 5, 7)

	if _, err := extractor.Extract(context.Background(), "article"); err == nil {
		t.Fatal("Expected extraction error to propagate")
	}
}

func TestClaimExtractor_MalformedPayload(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{"claims": "not an array"}`)}
	extractor := NewClaimExtractor(provider, 5, 7)

	if _, err := extractor.Extract(context.Background(), "article"); err == nil {
		t.Fatal("Expected schema violation to surface as an error")
	}
}
