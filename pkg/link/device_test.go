package link

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/sensor"
)

func TestNew_Defaults(t *testing.T) {
	d := New("/dev/null", 0, 0)

	assert.Equal(t, DefaultBaudRate, d.baudRate)
	assert.Equal(t, DefaultBufferSize, d.bufSize)
	assert.Equal(t, DefaultBufferSize, cap(d.readings))
	assert.False(t, d.IsConnected())
}

func TestSerial_CloseWithoutConnect(t *testing.T) {
	d := New("/dev/null", 0, 0)
	assert.NoError(t, d.Close())
	assert.False(t, d.IsConnected())
}

func TestSerial_ConnectMissingPort(t *testing.T) {
	d := New("/dev/this-port-does-not-exist", 0, 0)
	err := d.Connect()
	assert.Error(t, err)
	assert.False(t, d.IsConnected())
}

func TestSerial_readLines(t *testing.T) {
	input := strings.Join([]string{
		"booting",
		"",
		"1000,770,26,R,1",
		"garbage,line",
		"  2000,12,1678,L,0  ",
		"3000,150,134,R,1",
	}, "\r\n")

	d := New("test", 0, 10)
	go d.readLines(strings.NewReader(input))

	var got []detector.Reading
	timeout := time.After(time.Second)
	for {
		select {
		case r, ok := <-d.Readings():
			if !ok {
				require.Len(t, got, 3)
				assert.Equal(t, uint32(1000), got[0].At)
				assert.Equal(t, 26, got[0].KMH)
				assert.Equal(t, sensor.DirectionRight, got[0].Direction)
				assert.False(t, got[1].Valid)
				assert.Equal(t, sensor.DirectionLeft, got[1].Direction)
				assert.Equal(t, 134, got[2].KMH)
				return
			}
			got = append(got, r)
		case <-timeout:
			t.Fatal("timeout waiting for readings channel to close")
		}
	}
}

func TestSerial_readLinesDropsWhenFull(t *testing.T) {
	input := "1,1,1,R,1\n2,1,1,R,1\n3,1,1,R,1\n"

	d := New("test", 0, 1)
	d.readLines(strings.NewReader(input))

	r, ok := <-d.Readings()
	require.True(t, ok)
	assert.Equal(t, uint32(1), r.At)
	_, ok = <-d.Readings()
	assert.False(t, ok)
}
