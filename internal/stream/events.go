// Package stream defines the typed event channel between the verification
// pipeline and the client. Events are delivered strictly in emission order
// and flushed one at a time, which is what lets the client highlight claims
// on the page incrementally.
package stream

import "github.com/veristream/veristream/internal/model"

// EventType identifies the kind of progress event.
type EventType string

const (
	// EventStatus carries a free-text progress message. Any number may be
	// emitted, at any point before the terminal event.
	EventStatus EventType = "status"

	// EventStep1 carries the three whole-article analyses and the raw
	// candidate count. Exactly one, after the concurrent join.
	EventStep1 EventType = "step1"

	// EventClaim carries one complete ClaimResult. Zero or more, in
	// verification order.
	EventClaim EventType = "claim"

	// EventComplete is the terminal success event. Exactly one, mutually
	// exclusive with EventError.
	EventComplete EventType = "complete"

	// EventError is the terminal failure event. At most one. Claim events
	// already delivered remain valid and are never retracted.
	EventError EventType = "error"
)

// Event is one message on the channel.
type Event struct {
	Type EventType
	Data any
}

// StatusPayload is the data of a status event.
type StatusPayload struct {
	Message string `json:"message"`
}

// Step1Payload is the data of the first-wave event.
type Step1Payload struct {
	SiteAnalysis   model.SiteAnalysis       `json:"siteAnalysis"`
	Sentiment      model.SentimentAnalysis  `json:"sentiment"`
	Authorship     model.AuthorshipAnalysis `json:"authorship"`
	RawClaimsCount int                      `json:"rawClaimsCount"`
}

// CompletePayload is the data of the terminal success event.
type CompletePayload struct {
	Status      string `json:"status"`
	TotalClaims int    `json:"totalClaims"`
}

// ErrorPayload is the data of the terminal failure event.
type ErrorPayload struct {
	Error string `json:"error"`
}

// Emitter delivers pipeline events to a client. Emit returning an error
// means the transport is gone; the pipeline stops dispatching external calls
// once it sees one.
type Emitter interface {
	Emit(event Event) error
}
