package history

import (
	"log"
	"time"

	"github.com/itohio/trainspeed/pkg/detector"
)

// Entry is a reading stamped with the host time it was received.
type Entry struct {
	Timestamp time.Time
	detector.Reading
}

// Stamper is a function type that converts a Reading channel to an Entry channel.
type Stamper func(in <-chan detector.Reading) <-chan Entry

// NewStamper creates a stamper that attaches the current time to every reading.
// The board clock restarts on reset, so host time orders the history.
func NewStamper(bufSize int) Stamper {
	if bufSize <= 0 {
		bufSize = 100
	}

	return func(in <-chan detector.Reading) <-chan Entry {
		out := make(chan Entry, bufSize)

		go func() {
			defer close(out)

			for r := range in {
				select {
				case out <- Entry{Timestamp: time.Now(), Reading: r}:
				case <-time.After(time.Second):
					log.Printf("Stamper output channel full, dropping reading")
				}
			}
		}()

		return out
	}
}

// Downsample decimates entries to at most maxPoints for display.
// Destination-based: reuses dst if it has sufficient capacity, otherwise allocates new.
func Downsample(dst []Entry, entries []Entry, maxPoints int) []Entry {
	if len(entries) <= maxPoints {
		if cap(dst) >= len(entries) {
			dst = dst[:len(entries)]
			copy(dst, entries)
			return dst
		}
		result := make([]Entry, len(entries))
		copy(result, entries)
		return result
	}

	if cap(dst) >= maxPoints {
		dst = dst[:0]
	} else {
		dst = make([]Entry, 0, maxPoints)
	}

	step := float64(len(entries)) / float64(maxPoints)
	for i := range maxPoints {
		idx := int(float64(i) * step)
		if idx < len(entries) {
			dst = append(dst, entries[idx])
		}
	}

	return dst
}
