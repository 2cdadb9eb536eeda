package display

import "github.com/itohio/trainspeed/pkg/hal"

// EventKind identifies a Display call.
type EventKind int

const (
	EventShow EventKind = iota
	EventScroll
	EventSet
	EventClear
)

// Event is one recorded Display call.
type Event struct {
	Kind       EventKind
	At         uint32 // Clock time of the call (ms)
	Symbol     Symbol
	Text       string
	DelayMs    uint32
	Col, Row   int
	Brightness uint8
}

// Recorder is a Display that records every call. When a clock is given,
// Scroll blocks on it like a real matrix would.
type Recorder struct {
	clock  hal.Clock
	events []Event
}

var _ Display = (*Recorder)(nil)

// NewRecorder creates a recorder. clock may be nil.
func NewRecorder(clock hal.Clock) *Recorder {
	return &Recorder{clock: clock}
}

func (r *Recorder) now() uint32 {
	if r.clock == nil {
		return 0
	}
	return r.clock.Now()
}

// Show records a symbol.
func (r *Recorder) Show(sym Symbol) {
	r.events = append(r.events, Event{Kind: EventShow, At: r.now(), Symbol: sym})
}

// Scroll records text and advances the clock by the scroll duration.
func (r *Recorder) Scroll(text string, delayMs uint32) {
	r.events = append(r.events, Event{Kind: EventScroll, At: r.now(), Text: text, DelayMs: delayMs})
	if r.clock != nil {
		r.clock.Sleep(ScrollDuration(text, delayMs))
	}
}

// Set records a pixel change.
func (r *Recorder) Set(col, row int, brightness uint8) {
	r.events = append(r.events, Event{Kind: EventSet, At: r.now(), Col: col, Row: row, Brightness: brightness})
}

// Clear records a clear.
func (r *Recorder) Clear() {
	r.events = append(r.events, Event{Kind: EventClear, At: r.now()})
}

// Events returns all recorded calls.
func (r *Recorder) Events() []Event {
	result := make([]Event, len(r.events))
	copy(result, r.events)
	return result
}

// Symbols returns the shown symbols in order.
func (r *Recorder) Symbols() []Symbol {
	var result []Symbol
	for _, e := range r.events {
		if e.Kind == EventShow {
			result = append(result, e.Symbol)
		}
	}
	return result
}

// Texts returns the scrolled texts in order.
func (r *Recorder) Texts() []string {
	var result []string
	for _, e := range r.events {
		if e.Kind == EventScroll {
			result = append(result, e.Text)
		}
	}
	return result
}

// Count returns the number of calls of kind.
func (r *Recorder) Count(kind EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Reset drops all recorded calls.
func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
