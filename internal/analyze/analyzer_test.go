package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/veristream/veristream/internal/cache"
	"github.com/veristream/veristream/internal/llm"
)

// fakeProvider returns a canned payload or error and records the request.
type fakeProvider struct {
	payload json.RawMessage
	err     error
	calls   atomic.Int32
	lastReq llm.Request
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, req llm.Request) (json.RawMessage, error) {
	f.calls.Add(1)
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.payload, nil
}

func TestAnalyzer_Sentiment(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"sentiment": "Negative",
		"bias": "Biased",
		"explanation": "Charged language throughout."
	}`)}
	analyzer := NewAnalyzer(provider, nil, 0, nil)

	result := analyzer.Sentiment(context.Background(), "some article")

	if result.Sentiment != "Negative" || result.Bias != "Biased" {
		t.Errorf("Unexpected result: %+v", result)
	}
	if provider.lastReq.WebSearch {
		t.Error("Sentiment analysis must not use web search")
	}
}

func TestAnalyzer_Sentiment_ErrorDegrades(t *testing.T) {
	provider := &fakeProvider{err: errors.New("backend down")}
	analyzer := NewAnalyzer(provider, nil, 0, nil)

	result := analyzer.Sentiment(context.Background(), "some article")

	if result.Sentiment != "Unknown" || result.Bias != "Unknown" {
		t.Errorf("Expected Unknown sentinel, got %+v", result)
	}
	if result.Explanation != "Failed to analyze sentiment due to an error." {
		t.Errorf("Unexpected explanation: %q", result.Explanation)
	}
}

func TestAnalyzer_Authorship(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"authorship": "Likely Human-Written",
		"probability_ai_generated": 15,
		"explanation": "Irregular sentence rhythm."
	}`)}
	analyzer := NewAnalyzer(provider, nil, 0, nil)

	result := analyzer.Authorship(context.Background(), "some article")

	if result.Authorship != "Likely Human-Written" || result.ProbabilityAI != 15 {
		t.Errorf("Unexpected result: %+v", result)
	}
}

func TestAnalyzer_Authorship_MalformedDegrades(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{"authorship": ""}`)}
	analyzer := NewAnalyzer(provider, nil, 0, nil)

	result := analyzer.Authorship(context.Background(), "some article")

	if result.Authorship != "Unknown" {
		t.Errorf("Expected Unknown sentinel, got %+v", result)
	}
}

func TestAnalyzer_Site(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"domain": "EXAMPLE.COM",
		"reputation": "High",
		"politicalBias": "Center",
		"biasContext": "Global",
		"explanation": "Long-established outlet."
	}`)}
	analyzer := NewAnalyzer(provider, nil, 0, nil)

	result := analyzer.Site(context.Background(), "https://www.example.com/story")

	if result.Domain != "example.com" {
		t.Errorf("Expected the parsed domain to override the model's echo, got %s", result.Domain)
	}
	if result.Reputation != "High" {
		t.Errorf("Unexpected reputation: %s", result.Reputation)
	}
	if !provider.lastReq.WebSearch {
		t.Error("Site analysis requires web search")
	}
	if provider.lastReq.UserPrompt != "example.com" {
		t.Errorf("Expected the bare domain as the prompt, got %q", provider.lastReq.UserPrompt)
	}
}

func TestAnalyzer_Site_InvalidURLShortCircuits(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{}`)}
	analyzer := NewAnalyzer(provider, nil, 0, nil)

	result := analyzer.Site(context.Background(), "not a url")

	if result.Domain != "Invalid URL" || result.Reputation != "Unknown" {
		t.Errorf("Expected the invalid-URL sentinel, got %+v", result)
	}
	if result.Explanation != "The provided URL was invalid." {
		t.Errorf("Unexpected explanation: %q", result.Explanation)
	}
	if provider.calls.Load() != 0 {
		t.Errorf("Backend must not be called for an invalid URL, got %d calls", provider.calls.Load())
	}
}

func TestAnalyzer_Site_CachesPerDomain(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"domain": "example.com",
		"reputation": "Mixed",
		"politicalBias": "N/A",
		"biasContext": "N/A",
		"explanation": "x"
	}`)}
	c := cache.NewMemoryCache(time.Minute, time.Minute)
	analyzer := NewAnalyzer(provider, c, time.Minute, nil)

	first := analyzer.Site(context.Background(), "https://example.com/a")
	second := analyzer.Site(context.Background(), "https://example.com/b")

	if provider.calls.Load() != 1 {
		t.Errorf("Expected 1 backend call for the same domain, got %d", provider.calls.Load())
	}
	if first != second {
		t.Errorf("Cached result differs: %+v vs %+v", first, second)
	}
}
