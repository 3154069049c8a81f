package verify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/veristream/veristream/internal/model"
)

func TestCorroborator_Success(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"status": "Disputed",
		"explanation": "Official records contradict the figure.",
		"sourceName": "AP News",
		"sourceUrl": "https://ap.example/story",
		"sourceScore": 88,
		"sourceReputation": "High"
	}`)}
	corr := NewCorroborator(provider, nil)

	result := corr.Corroborate(context.Background(), "the figure was doubled")

	if result.Status != model.VerdictDisputed {
		t.Errorf("Expected Disputed, got %s", result.Status)
	}
	if result.Source != "AP News" || result.SourceURL != "https://ap.example/story" {
		t.Errorf("Unexpected source attribution: %s / %s", result.Source, result.SourceURL)
	}
	if result.SourceScore != 88 {
		t.Errorf("Expected score 88, got %d", result.SourceScore)
	}
}

func TestCorroborator_EmptySourceFallsBackToWebSearch(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"status": "Questionable",
		"explanation": "No single authoritative source found.",
		"sourceName": "",
		"sourceUrl": "",
		"sourceScore": 0,
		"sourceReputation": ""
	}`)}
	corr := NewCorroborator(provider, nil)

	result := corr.Corroborate(context.Background(), "an obscure claim")

	if result.Source != "Web Search" {
		t.Errorf("Expected source fallback 'Web Search', got %q", result.Source)
	}
	if result.SourceReputation != "Unknown" {
		t.Errorf("Expected reputation fallback Unknown, got %q", result.SourceReputation)
	}
}

func TestCorroborator_BackendErrorDegrades(t *testing.T) {
	provider := &fakeProvider{err: errors.New("timeout")}
	corr := NewCorroborator(provider, nil)

	result := corr.Corroborate(context.Background(), "a claim")

	if result.Status != model.VerdictQuestionable {
		t.Errorf("Expected Questionable, got %s", result.Status)
	}
	if result.Source != "Error during corroboration" {
		t.Errorf("Expected degraded source marker, got %q", result.Source)
	}
	if result.SourceScore != 0 {
		t.Errorf("Expected score 0 on degradation, got %d", result.SourceScore)
	}
}

func TestCorroborator_UnrecognizedStatusDegrades(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{
		"status": "Probably True",
		"explanation": "x",
		"sourceName": "x",
		"sourceUrl": "",
		"sourceScore": 50,
		"sourceReputation": "Mixed"
	}`)}
	corr := NewCorroborator(provider, nil)

	result := corr.Corroborate(context.Background(), "a claim")

	if result.Status != model.VerdictQuestionable {
		t.Errorf("Expected Questionable for an off-enum status, got %s", result.Status)
	}
	if result.Source != "Error during corroboration" {
		t.Errorf("Expected degraded source marker, got %q", result.Source)
	}
}

func TestCorroborator_MalformedPayloadDegrades(t *testing.T) {
	provider := &fakeProvider{payload: json.RawMessage(`{"status": 42}`)}
	corr := NewCorroborator(provider, nil)

	result := corr.Corroborate(context.Background(), "a claim")

	if result.Status != model.VerdictQuestionable {
		t.Errorf("Expected Questionable, got %s", result.Status)
	}
}
