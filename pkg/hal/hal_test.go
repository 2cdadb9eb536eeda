package hal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVirtualClock(t *testing.T) {
	c := NewVirtualClock(5)
	assert.Equal(t, uint32(5), c.Now())

	c.Sleep(10)
	assert.Equal(t, uint32(15), c.Now())

	c.Advance(999)
	assert.Equal(t, uint32(15), c.Now())
	c.Advance(1)
	assert.Equal(t, uint32(16), c.Now())
	assert.Equal(t, uint64(16000), c.Micros())
}

func TestAveraging(t *testing.T) {
	tests := []struct {
		name   string
		values []uint16
		n      int
		want   uint16
	}{
		{name: "constant", values: []uint16{500, 500, 500, 500}, n: 4, want: 500},
		{name: "rounds up", values: []uint16{1, 2}, n: 2, want: 2},
		{name: "rounds down", values: []uint16{1, 1, 2}, n: 3, want: 1},
		{name: "extremes", values: []uint16{0, AnalogMax}, n: 2, want: 512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			i := 0
			in := AnalogFunc(func() uint16 {
				v := tt.values[i%len(tt.values)]
				i++
				return v
			})
			got := NewAveraging(in, tt.n).Read()
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.n, i)
		})
	}
}

func TestAveraging_Passthrough(t *testing.T) {
	in := AnalogFunc(func() uint16 { return 7 })
	a := NewAveraging(in, 1)
	_, wrapped := a.(*Averaging)
	assert.False(t, wrapped)
	assert.Equal(t, uint16(7), a.Read())
}

func TestScriptedButton(t *testing.T) {
	c := NewVirtualClock(0)
	b := PressAt(c, 100)

	assert.False(t, b.WasPressed())
	c.Sleep(100)
	assert.True(t, b.WasPressed())
	assert.False(t, b.WasPressed(), "press is reported once")
}

func TestTrack_ForwardPass(t *testing.T) {
	c := NewVirtualClock(0)
	cfg := DefaultTrackConfig()
	cfg.Noise = 0
	cfg.ReadCostUs = 0
	track := NewTrack(c, cfg)
	track.Schedule(Pass{StartMs: 1000, SpeedKMH: 87 * 3.6 * 0.1}) // 0.1 m/s model speed

	left, right := track.Channel(0), track.Channel(1)

	assert.Equal(t, cfg.Bright, left.Read())
	assert.Equal(t, cfg.Bright, right.Read())

	// Front reaches the left sensor after LeadM / 0.1 = 500 ms.
	c.Sleep(1000 + 510)
	assert.Equal(t, cfg.Dark, left.Read())
	assert.Equal(t, cfg.Bright, right.Read())

	// And the right one 670 ms later.
	c.Sleep(680)
	assert.Equal(t, cfg.Dark, left.Read())
	assert.Equal(t, cfg.Dark, right.Read())

	c.Sleep(track.Duration(track.Passes()[0]))
	assert.Equal(t, cfg.Bright, left.Read())
	assert.Equal(t, cfg.Bright, right.Read())
}

func TestTrack_ReversePass(t *testing.T) {
	c := NewVirtualClock(0)
	cfg := DefaultTrackConfig()
	cfg.Noise = 0
	track := NewTrack(c, cfg)
	track.Schedule(Pass{StartMs: 0, SpeedKMH: 87 * 3.6 * 0.1, Reverse: true})

	c.Sleep(510)
	assert.True(t, track.Covered(1))
	assert.False(t, track.Covered(0))
}

func TestTrack_ReadCost(t *testing.T) {
	c := NewVirtualClock(0)
	cfg := DefaultTrackConfig()
	cfg.ReadCostUs = 250
	track := NewTrack(c, cfg)

	ch := track.Channel(0)
	for range 8 {
		ch.Read()
	}
	assert.Equal(t, uint32(2), c.Now())
}

func TestTrack_NoiseBounded(t *testing.T) {
	c := NewVirtualClock(0)
	cfg := DefaultTrackConfig()
	cfg.Noise = 30
	track := NewTrack(c, cfg)

	ch := track.Channel(0)
	for range 1000 {
		v := ch.Read()
		require.LessOrEqual(t, v, cfg.Bright+cfg.Noise)
		require.GreaterOrEqual(t, v, cfg.Bright-cfg.Noise)
	}
}

func TestTrack_Duration(t *testing.T) {
	cfg := DefaultTrackConfig()
	track := NewTrack(NewVirtualClock(0), cfg)

	fast := track.Duration(Pass{SpeedKMH: 200})
	slow := track.Duration(Pass{SpeedKMH: 20})
	assert.Greater(t, slow, fast)
	assert.Equal(t, uint32(0), track.Duration(Pass{SpeedKMH: 0}))
}
