package detector

import (
	"strconv"

	"github.com/itohio/trainspeed/pkg/sensor"
)

// Reading is the outcome of one pass over both sensors.
type Reading struct {
	At        uint32           // Clock time the pass was resolved (ms)
	ElapsedMs uint32           // Time between the two latches
	KMH       int              // Scaled speed, truncated
	Direction sensor.Direction // Travel direction
	Valid     bool             // Inside the accepted speed band
}

// String formats r as a report line: at_ms,elapsed_ms,kmh,dir,valid.
// Example: "123456,770,26,R,1".
func (r Reading) String() string {
	return string(r.AppendLine(make([]byte, 0, 32)))
}

// AppendLine appends the report line of r to dst without a newline.
func (r Reading) AppendLine(dst []byte) []byte {
	dst = strconv.AppendUint(dst, uint64(r.At), 10)
	dst = append(dst, ',')
	dst = strconv.AppendUint(dst, uint64(r.ElapsedMs), 10)
	dst = append(dst, ',')
	dst = strconv.AppendInt(dst, int64(r.KMH), 10)
	dst = append(dst, ',')
	switch r.Direction {
	case sensor.DirectionLeft:
		dst = append(dst, 'L')
	case sensor.DirectionRight:
		dst = append(dst, 'R')
	default:
		dst = append(dst, '-')
	}
	dst = append(dst, ',')
	if r.Valid {
		return append(dst, '1')
	}
	return append(dst, '0')
}
