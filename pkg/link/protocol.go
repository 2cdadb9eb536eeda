package link

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/sensor"
)

// parseLine parses a report line printed by the firmware.
// Format: at_ms,elapsed_ms,kmh,dir,valid
// Example: 123456,770,26,R,1
func parseLine(line string) (detector.Reading, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return detector.Reading{}, fmt.Errorf("invalid line format: expected 5 comma-separated values, got %d", len(parts))
	}

	at, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return detector.Reading{}, fmt.Errorf("invalid timestamp: %w", err)
	}

	elapsed, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return detector.Reading{}, fmt.Errorf("invalid elapsed time: %w", err)
	}

	kmh, err := strconv.Atoi(parts[2])
	if err != nil {
		return detector.Reading{}, fmt.Errorf("invalid speed: %w", err)
	}

	var dir sensor.Direction
	switch parts[3] {
	case "R":
		dir = sensor.DirectionRight
	case "L":
		dir = sensor.DirectionLeft
	case "-":
		dir = sensor.DirectionUnknown
	default:
		return detector.Reading{}, fmt.Errorf("invalid direction: %q", parts[3])
	}

	var valid bool
	switch parts[4] {
	case "1":
		valid = true
	case "0":
		valid = false
	default:
		return detector.Reading{}, fmt.Errorf("invalid validity flag: %q", parts[4])
	}

	return detector.Reading{
		At:        uint32(at),
		ElapsedMs: uint32(elapsed),
		KMH:       kmh,
		Direction: dir,
		Valid:     valid,
	}, nil
}
