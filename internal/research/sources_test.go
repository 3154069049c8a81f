package research

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/veristream/veristream/internal/llm"
)

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

func TestAdditionalSources(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"sources": [
			{"title": "Fact check: the dam", "summary": "Confirms the date.", "source": "Reuters", "url": "https://reuters.example/1", "date": "2023-05-01"},
			{"title": "Dam history", "summary": "Engineering record.", "source": "BBC News", "url": "https://bbc.example/2", "date": ""}
		]
	}`)}
	r := NewResearcher(provider, nil)

	sources, err := r.AdditionalSources(context.Background(), "the dam was completed in 1936", "AP News")
	if err != nil {
		t.Fatalf("AdditionalSources failed: %v", err)
	}

	if len(sources) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(sources))
	}
	if sources[0].Source != "Reuters" {
		t.Errorf("Unexpected first source: %+v", sources[0])
	}
	if !provider.lastReq.WebSearch {
		t.Error("Additional sources requires web search")
	}
	if !strings.Contains(provider.lastReq.UserPrompt, "AP News") {
		t.Errorf("Expected the current source in the prompt, got %q", provider.lastReq.UserPrompt)
	}
}

func TestAdditionalSources_NoCurrentSource(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{"sources": []}`)}
	r := NewResearcher(provider, nil)

	if _, err := r.AdditionalSources(context.Background(), "a claim", ""); err != nil {
		t.Fatalf("AdditionalSources failed: %v", err)
	}
	if provider.lastReq.UserPrompt != "a claim" {
		t.Errorf("Expected the bare claim as the prompt, got %q", provider.lastReq.UserPrompt)
	}
}

func TestAdditionalSources_BackendError(t *testing.T) {
	provider := &fakeProvider{err: errors.New("down")}
	r := NewResearcher(provider, nil)

	if _, err := r.AdditionalSources(context.Background(), "a claim", ""); err == nil {
		t.Fatal("Expected the backend error to propagate")
	}
}

func TestDeepResearch(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"summary": "Well documented.",
		"keyPoints": ["Completed 1936", "Still operating"],
		"consensus": "Broad agreement.",
		"counterArguments": [],
		"timeline": ["1931: construction begins", "1936: completion"]
	}`)}
	r := NewResearcher(provider, nil)

	brief, err := r.DeepResearch(context.Background(), "the dam was completed in 1936")
	if err != nil {
		t.Fatalf("DeepResearch failed: %v", err)
	}

	if brief.Summary != "Well documented." {
		t.Errorf("Unexpected summary: %q", brief.Summary)
	}
	if len(brief.KeyPoints) != 2 || len(brief.Timeline) != 2 {
		t.Errorf("Unexpected brief: %+v", brief)
	}
	if !provider.lastReq.WebSearch {
		t.Error("Deep research requires web search")
	}
	if provider.lastReq.MaxTokens != 4096 {
		t.Errorf("Expected an expanded token budget, got %d", provider.lastReq.MaxTokens)
	}
}
