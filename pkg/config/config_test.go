package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, 0.067, cfg.Detector.DistanceM)
	assert.Equal(t, float64(87), cfg.Detector.Scale)
	assert.Equal(t, float64(0), cfg.Detector.MinKMH)
	assert.Equal(t, float64(300), cfg.Detector.MaxKMH)
	assert.Equal(t, 10*time.Millisecond, cfg.Detector.Idle)
	assert.Equal(t, 50*time.Millisecond, cfg.Detector.ReadyPoll)
	assert.Equal(t, time.Second, cfg.Detector.Cooldown)
	assert.Equal(t, 90*time.Millisecond, cfg.Detector.ScrollDelay)
	assert.Equal(t, "FJR", cfg.Detector.Banner)
	assert.Equal(t, uint16(1023), cfg.Sensors.AnalogMax)
	assert.Equal(t, 10*time.Millisecond, cfg.Calibration.Interval)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestLoad_ValidYAML(t *testing.T) {
	name := writeTemp(t, `
detector:
  distance_m: 0.064
  scale: 160
  min_kmh: 5
  max_kmh: 250
  idle: 5ms
  ready_poll: 20ms
  cooldown: 2s
  scroll_delay: 60ms
  banner: "N"

sensors:
  analog_max: 4095
  averaging: 4
  fixed_threshold: 2000
  min_contrast: 300

calibration:
  interval: 20ms

serial:
  port: "COM4"
  baud_rate: 57600

history:
  window: 1h

metrics:
  addr: ":9100"

mock:
  speed_kmh: 90
  period: 3s
  time_scale: 0
`)

	cfg, err := Load(name)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, 0.064, cfg.Detector.DistanceM)
	assert.Equal(t, float64(160), cfg.Detector.Scale)
	assert.Equal(t, float64(5), cfg.Detector.MinKMH)
	assert.Equal(t, float64(250), cfg.Detector.MaxKMH)
	assert.Equal(t, 5*time.Millisecond, cfg.Detector.Idle)
	assert.Equal(t, 2*time.Second, cfg.Detector.Cooldown)
	assert.Equal(t, "N", cfg.Detector.Banner)
	assert.Equal(t, uint16(4095), cfg.Sensors.AnalogMax)
	assert.Equal(t, 4, cfg.Sensors.Averaging)
	assert.Equal(t, uint16(2000), cfg.Sensors.FixedThreshold)
	assert.Equal(t, 20*time.Millisecond, cfg.Calibration.Interval)
	assert.Equal(t, "COM4", cfg.Serial.Port)
	assert.Equal(t, 57600, cfg.Serial.BaudRate)
	assert.Equal(t, time.Hour, cfg.History.Window)
	assert.Equal(t, ":9100", cfg.Metrics.Addr)
	assert.Equal(t, float64(90), cfg.Mock.SpeedKMH)
	assert.Equal(t, 3*time.Second, cfg.Mock.Period)
	assert.Equal(t, float64(0), cfg.Mock.TimeScale)
}

func TestLoad_InvalidYAML(t *testing.T) {
	name := writeTemp(t, "invalid: yaml: content: [")

	cfg, err := Load(name)
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidValues(t *testing.T) {
	name := writeTemp(t, `
detector:
  min_kmh: 400
sensors:
  fixed_threshold: 2000
`)

	cfg, err := Load(name)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "max_kmh")
	assert.Contains(t, err.Error(), "fixed_threshold")
}

func TestLoad_NegativeMockPeriod(t *testing.T) {
	name := writeTemp(t, `
mock:
  period: -1s
`)

	cfg, err := Load(name)
	require.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "mock.period")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero mock period", func(c *Config) { c.Mock.Period = 0 }, "mock.period"},
		{"negative mock period", func(c *Config) { c.Mock.Period = -time.Second }, "mock.period"},
		{"zero mock speed", func(c *Config) { c.Mock.SpeedKMH = 0 }, "mock.speed_kmh"},
		{"negative mock speed", func(c *Config) { c.Mock.SpeedKMH = -5 }, "mock.speed_kmh"},
		{"negative time scale", func(c *Config) { c.Mock.TimeScale = -1 }, "mock.time_scale"},
		{"zero distance", func(c *Config) { c.Detector.DistanceM = 0 }, "detector.distance_m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_PartialYAML(t *testing.T) {
	name := writeTemp(t, `
serial:
  port: "/dev/ttyUSB0"
`)

	cfg, err := Load(name)
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Port)
	assert.Equal(t, 0.067, cfg.Detector.DistanceM)
	assert.Equal(t, 90*time.Millisecond, cfg.Detector.ScrollDelay)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Detector.Scale = 160

	name := writeTemp(t, "")

	err := cfg.Save(name)
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, float64(160), loaded.Detector.Scale)
}

func TestConversions(t *testing.T) {
	cfg := Default()
	cfg.Detector.MinKMH = 2
	cfg.Detector.MaxKMH = 200

	m := cfg.SpeedModel()
	assert.Equal(t, 0.067, m.DistanceM)
	assert.Equal(t, float64(87), m.Scale)
	assert.False(t, m.Valid(2))
	assert.False(t, m.Valid(200))
	assert.True(t, m.Valid(100))

	d := cfg.DetectorConfig()
	assert.Equal(t, uint32(10), d.IdleMs)
	assert.Equal(t, uint32(50), d.ReadyPollMs)
	assert.Equal(t, uint32(1000), d.CooldownMs)
	assert.Equal(t, uint32(90), d.ScrollDelayMs)
	assert.Equal(t, "FJR", d.Banner)

	tr := cfg.TrackConfig()
	assert.Equal(t, cfg.Detector.DistanceM, tr.DistanceM)
	assert.Equal(t, cfg.Mock.TrainLengthM, tr.TrainLengthM)
	assert.Equal(t, cfg.Mock.Noise, tr.Noise)
}
