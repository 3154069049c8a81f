package stream

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSSEEmitter_Framing(t *testing.T) {
	rec := httptest.NewRecorder()

	emitter, err := NewSSEEmitter(rec)
	if err != nil {
		t.Fatalf("NewSSEEmitter failed: %v", err)
	}

	if got := rec.Header().Get("Content-Type"); got != "text/event-stream" {
		t.Errorf("Expected Content-Type text/event-stream, got %s", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("Expected Cache-Control no-cache, got %s", got)
	}
	if got := rec.Header().Get("X-Accel-Buffering"); got != "no" {
		t.Errorf("Expected X-Accel-Buffering no, got %s", got)
	}

	if err := emitter.Emit(Event{Type: EventStatus, Data: StatusPayload{Message: "Verifying 3 claims..."}}); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	if err := emitter.Emit(Event{Type: EventComplete, Data: CompletePayload{Status: "success", TotalClaims: 3}}); err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	body := rec.Body.String()
	want := "event: status\ndata: {\"message\":\"Verifying 3 claims...\"}\n\n" +
		"event: complete\ndata: {\"status\":\"success\",\"totalClaims\":3}\n\n"
	if body != want {
		t.Errorf("Unexpected frame bytes:\ngot:  %q\nwant: %q", body, want)
	}
	if !rec.Flushed {
		t.Error("Expected the response to be flushed")
	}
}

func TestSSEEmitter_RejectsNonFlushableWriter(t *testing.T) {
	if _, err := NewSSEEmitter(nonFlushableWriter{rec: httptest.NewRecorder()}); err == nil {
		t.Fatal("Expected an error for a writer without Flush support")
	}
}

// nonFlushableWriter forwards the ResponseWriter methods but not Flush.
type nonFlushableWriter struct {
	rec *httptest.ResponseRecorder
}

func (w nonFlushableWriter) Header() http.Header         { return w.rec.Header() }
func (w nonFlushableWriter) Write(b []byte) (int, error) { return w.rec.Write(b) }
func (w nonFlushableWriter) WriteHeader(code int)        { w.rec.WriteHeader(code) }

func TestCollector_RecordsInOrder(t *testing.T) {
	c := &Collector{}

	events := []Event{
		{Type: EventStatus, Data: StatusPayload{Message: "start"}},
		{Type: EventStep1, Data: Step1Payload{RawClaimsCount: 2}},
		{Type: EventClaim, Data: "first"},
		{Type: EventClaim, Data: "second"},
		{Type: EventComplete, Data: CompletePayload{Status: "success", TotalClaims: 2}},
	}
	for _, ev := range events {
		if err := c.Emit(ev); err != nil {
			t.Fatalf("Emit failed: %v", err)
		}
	}

	if len(c.Events) != len(events) {
		t.Fatalf("Expected %d events, got %d", len(events), len(c.Events))
	}

	claims := c.Claims()
	if len(claims) != 2 || claims[0].Data != "first" || claims[1].Data != "second" {
		t.Errorf("Claim events out of order: %+v", claims)
	}

	step1 := c.Find(EventStep1)
	if step1 == nil {
		t.Fatal("Expected to find the step1 event")
	}
	if c.Find(EventError) != nil {
		t.Error("Did not expect an error event")
	}
}
