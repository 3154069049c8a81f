package stream

// Collector is an Emitter that records events in order. It backs the
// non-streaming JSON response mode and pipeline tests.
type Collector struct {
	Events []Event
}

// Emit appends the event.
func (c *Collector) Emit(event Event) error {
	c.Events = append(c.Events, event)
	return nil
}

// Find returns the first event of the given type, or nil.
func (c *Collector) Find(t EventType) *Event {
	for i := range c.Events {
		if c.Events[i].Type == t {
			return &c.Events[i]
		}
	}
	return nil
}

// Claims returns every claim event's data in emission order.
func (c *Collector) Claims() []Event {
	var out []Event
	for _, ev := range c.Events {
		if ev.Type == EventClaim {
			out = append(out, ev)
		}
	}
	return out
}
