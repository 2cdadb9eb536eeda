package sensor

import (
	"testing"

	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPair struct {
	pair        *Pair
	clock       *hal.VirtualClock
	left, right *fakeAnalog
}

func newTestPair() testPair {
	clock := hal.NewVirtualClock(100)
	left, lch := newTestSensor(clock)
	right, rch := newTestSensor(clock)
	calibrateWith(left, lch, 100, 800)
	calibrateWith(right, rch, 100, 800)
	lch.value, rch.value = 800, 800
	return testPair{pair: NewPair(left, right), clock: clock, left: lch, right: rch}
}

func TestPair_Elapsed(t *testing.T) {
	tests := []struct {
		name     string
		firstIdx int
		gap      uint32
		wantDir  Direction
	}{
		{name: "left first", firstIdx: 0, gap: 770, wantDir: DirectionRight},
		{name: "right first", firstIdx: 1, gap: 250, wantDir: DirectionLeft},
		{name: "simultaneous", firstIdx: 0, gap: 0, wantDir: DirectionRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tp := newTestPair()
			chans := []*fakeAnalog{tp.left, tp.right}
			first, second := tt.firstIdx, 1-tt.firstIdx

			chans[first].value = 100
			require.True(t, tp.pair.Sensor(first).Check())
			assert.True(t, tp.pair.Any())
			assert.False(t, tp.pair.Both())
			assert.Equal(t, tt.wantDir, tp.pair.First())

			tp.clock.Sleep(tt.gap)
			chans[second].value = 100
			require.True(t, tp.pair.Sensor(second).Check())

			assert.True(t, tp.pair.Both())
			assert.Equal(t, tt.gap, tp.pair.Elapsed())
			assert.Equal(t, tt.wantDir, tp.pair.First())
		})
	}
}

func TestPair_Restart(t *testing.T) {
	tp := newTestPair()
	tp.left.value, tp.right.value = 100, 100
	tp.pair.Left().Check()
	tp.pair.Right().Check()
	require.True(t, tp.pair.Both())

	tp.pair.Restart()
	assert.False(t, tp.pair.Any())
	assert.Equal(t, DirectionUnknown, tp.pair.First())
	assert.Equal(t, uint32(0), tp.pair.Elapsed())
}

func TestPair_AnyDark(t *testing.T) {
	tp := newTestPair()
	assert.False(t, tp.pair.AnyDark())

	tp.right.value = 100
	assert.True(t, tp.pair.AnyDark())
	assert.False(t, tp.pair.Any(), "AnyDark never latches")

	tp.right.value = 800
	tp.left.value = 100
	assert.True(t, tp.pair.AnyDark())
}

func TestPair_Validate(t *testing.T) {
	clock := hal.NewVirtualClock(0)
	good, gch := newTestSensor(clock)
	calibrateWith(good, gch, 100, 800)
	bad, bch := newTestSensor(clock)
	calibrateWith(bad, bch, 800)

	assert.NoError(t, NewPair(good, good).Validate(50))

	err := NewPair(good, bad).Validate(50)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDegenerate)
	assert.Contains(t, err.Error(), "sensor 1")
}

func TestDirection_String(t *testing.T) {
	assert.Equal(t, "right", DirectionRight.String())
	assert.Equal(t, "left", DirectionLeft.String())
	assert.Equal(t, "unknown", DirectionUnknown.String())
}
