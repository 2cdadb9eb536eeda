// Package history keeps the recent speed readings received by the host,
// with running statistics and Prometheus metrics.
package history

import (
	"sync"
	"time"

	"github.com/itohio/trainspeed/pkg/sensor"
)

// Stats summarises the entries inside the window. Speed figures cover
// valid readings only.
type Stats struct {
	Count     int
	Valid     int
	Discarded int
	Left      int // Valid readings travelling left
	Right     int // Valid readings travelling right
	MinKMH    int
	MaxKMH    int
	MeanKMH   float64
	Last      Entry
}

// History stores entries received within a time window.
// Entries are ordered oldest first and removed by timestamp.
type History struct {
	window  time.Duration
	entries []Entry

	mu sync.RWMutex

	callbacks []func(entries []Entry, stats Stats)
	cbMu      sync.RWMutex

	// Set when the input channel closes, prevents further callbacks
	shutdown bool
}

// New creates a history keeping entries younger than window.
// A zero window keeps everything.
func New(window time.Duration) *History {
	return &History{
		window:  window,
		entries: make([]Entry, 0),
	}
}

// ProcessEntries consumes the input channel until it closes. After that no
// callbacks are sent until ResetShutdown.
func (h *History) ProcessEntries(input <-chan Entry) {
	for e := range input {
		h.Add(e)
	}
	h.mu.Lock()
	h.shutdown = true
	h.mu.Unlock()
}

// Add appends an entry, drops entries outside the window, exports metrics
// and notifies callbacks.
func (h *History) Add(e Entry) {
	observe(e)

	h.mu.Lock()
	h.entries = append(h.entries, e)
	if h.window > 0 {
		cutoff := e.Timestamp.Add(-h.window)
		i := 0
		for i < len(h.entries) && !h.entries[i].Timestamp.After(cutoff) {
			i++
		}
		if i > 0 {
			h.entries = append(h.entries[:0], h.entries[i:]...)
		}
	}
	shouldNotify := !h.shutdown
	h.mu.Unlock()

	if shouldNotify {
		h.notifyCallbacks()
	}
}

// Entries returns a copy of the entries in the window.
func (h *History) Entries() []Entry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	result := make([]Entry, len(h.entries))
	copy(result, h.entries)
	return result
}

// Stats computes statistics over the entries in the window.
func (h *History) Stats() Stats {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return computeStats(h.entries)
}

// Clear drops all entries.
func (h *History) Clear() {
	h.mu.Lock()
	h.entries = h.entries[:0]
	h.mu.Unlock()
}

// OnUpdate registers a callback invoked after every new entry.
// The callback receives copies and should return quickly.
func (h *History) OnUpdate(callback func(entries []Entry, stats Stats)) {
	h.cbMu.Lock()
	defer h.cbMu.Unlock()
	h.callbacks = append(h.callbacks, callback)
}

// ResetShutdown allows callbacks again. Call it before processing a new
// input channel.
func (h *History) ResetShutdown() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.shutdown = false
}

func (h *History) notifyCallbacks() {
	h.mu.RLock()
	entries := make([]Entry, len(h.entries))
	copy(entries, h.entries)
	stats := computeStats(entries)
	h.mu.RUnlock()

	h.cbMu.RLock()
	callbacks := make([]func(entries []Entry, stats Stats), len(h.callbacks))
	copy(callbacks, h.callbacks)
	h.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(entries, stats)
		}
	}
}

func computeStats(entries []Entry) Stats {
	var s Stats
	s.Count = len(entries)
	if s.Count == 0 {
		return s
	}
	s.Last = entries[len(entries)-1]

	sum := 0
	for _, e := range entries {
		if !e.Valid {
			s.Discarded++
			continue
		}
		if s.Valid == 0 || e.KMH < s.MinKMH {
			s.MinKMH = e.KMH
		}
		if s.Valid == 0 || e.KMH > s.MaxKMH {
			s.MaxKMH = e.KMH
		}
		s.Valid++
		sum += e.KMH

		switch e.Direction {
		case sensor.DirectionLeft:
			s.Left++
		case sensor.DirectionRight:
			s.Right++
		}
	}
	if s.Valid > 0 {
		s.MeanKMH = float64(sum) / float64(s.Valid)
	}
	return s
}
