package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/trainspeed/pkg/detector"
	"github.com/itohio/trainspeed/pkg/hal"
	"github.com/itohio/trainspeed/pkg/speed"
)

// Config represents the application configuration.
type Config struct {
	Detector    DetectorConfig    `yaml:"detector"`
	Sensors     SensorsConfig     `yaml:"sensors"`
	Calibration CalibrationConfig `yaml:"calibration"`
	Serial      SerialConfig      `yaml:"serial"`
	History     HistoryConfig     `yaml:"history"`
	Metrics     MetricsConfig     `yaml:"metrics"`
	Mock        MockConfig        `yaml:"mock"`
}

// DetectorConfig contains the layout constants and loop timings.
type DetectorConfig struct {
	DistanceM   float64       `yaml:"distance_m"` // Gap between the sensors (m)
	Scale       float64       `yaml:"scale"`      // Model scale ratio, 87 for H0
	MinKMH      float64       `yaml:"min_kmh"`    // Readings at or below are discarded
	MaxKMH      float64       `yaml:"max_kmh"`    // Readings at or above are discarded
	Idle        time.Duration `yaml:"idle"`
	ReadyPoll   time.Duration `yaml:"ready_poll"`
	Cooldown    time.Duration `yaml:"cooldown"`
	ScrollDelay time.Duration `yaml:"scroll_delay"`
	Banner      string        `yaml:"banner"`
}

// SensorsConfig contains analog input parameters.
type SensorsConfig struct {
	AnalogMax      uint16 `yaml:"analog_max"`
	Averaging      int    `yaml:"averaging"`       // Reads averaged per sample (0 or 1 = disabled)
	FixedThreshold uint16 `yaml:"fixed_threshold"` // Skip calibration when non-zero
	MinContrast    uint16 `yaml:"min_contrast"`    // Narrower calibration ranges are rejected
}

// CalibrationConfig contains calibration parameters.
type CalibrationConfig struct {
	Interval time.Duration `yaml:"interval"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// HistoryConfig contains host side reading history parameters.
type HistoryConfig struct {
	Window time.Duration `yaml:"window"` // Readings older than this are dropped
}

// MetricsConfig contains the Prometheus endpoint configuration.
type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the endpoint
}

// MockConfig contains the simulated track used instead of a board.
type MockConfig struct {
	SpeedKMH     float64       `yaml:"speed_kmh"`      // Mean scaled train speed
	Spread       float64       `yaml:"spread"`         // Relative speed variation between passes
	Period       time.Duration `yaml:"period"`         // Time between passes
	TrainLengthM float64       `yaml:"train_length_m"` // Train length (m)
	Noise        uint16        `yaml:"noise"`          // ADC noise amplitude
	TimeScale    float64       `yaml:"time_scale"`     // 1 = real time, 0 = as fast as possible
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Detector: DetectorConfig{
			DistanceM:   0.067,
			Scale:       87,
			MinKMH:      speed.DefaultMinKMH,
			MaxKMH:      speed.DefaultMaxKMH,
			Idle:        10 * time.Millisecond,
			ReadyPoll:   50 * time.Millisecond,
			Cooldown:    time.Second,
			ScrollDelay: 90 * time.Millisecond,
			Banner:      "FJR",
		},
		Sensors: SensorsConfig{
			AnalogMax:      hal.AnalogMax,
			Averaging:      0,
			FixedThreshold: 0,
			MinContrast:    100,
		},
		Calibration: CalibrationConfig{
			Interval: 10 * time.Millisecond,
		},
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0", // "COM3" on Windows
			BaudRate: 115200,
		},
		History: HistoryConfig{
			Window: 10 * time.Minute,
		},
		Metrics: MetricsConfig{
			Addr: "localhost:30334",
		},
		Mock: MockConfig{
			SpeedKMH:     60,
			Spread:       0.2,
			Period:       8 * time.Second,
			TrainLengthM: 0.3,
			Noise:        12,
			TimeScale:    1,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks values that defaults cannot repair.
func (c *Config) Validate() error {
	var errs []error
	if c.Detector.DistanceM <= 0 {
		errs = append(errs, errors.New("detector.distance_m must be positive"))
	}
	if c.Detector.Scale <= 0 {
		errs = append(errs, errors.New("detector.scale must be positive"))
	}
	if c.Detector.MaxKMH <= c.Detector.MinKMH {
		errs = append(errs, fmt.Errorf("detector.max_kmh (%v) must exceed min_kmh (%v)", c.Detector.MaxKMH, c.Detector.MinKMH))
	}
	if c.Sensors.FixedThreshold > c.Sensors.AnalogMax {
		errs = append(errs, fmt.Errorf("sensors.fixed_threshold (%d) exceeds analog_max (%d)", c.Sensors.FixedThreshold, c.Sensors.AnalogMax))
	}
	if c.Mock.SpeedKMH <= 0 {
		errs = append(errs, errors.New("mock.speed_kmh must be positive"))
	}
	if c.Mock.Period <= 0 {
		errs = append(errs, errors.New("mock.period must be positive"))
	}
	if c.Mock.TimeScale < 0 {
		errs = append(errs, errors.New("mock.time_scale must not be negative"))
	}
	return errors.Join(errs...)
}

// SpeedModel returns the speed model described by the detector section.
func (c *Config) SpeedModel() speed.Model {
	m := speed.New(c.Detector.DistanceM, c.Detector.Scale)
	m.MinKMH = c.Detector.MinKMH
	m.MaxKMH = c.Detector.MaxKMH
	return m
}

// DetectorConfig returns the loop timings in milliseconds.
func (c *Config) DetectorConfig() detector.Config {
	return detector.Config{
		IdleMs:        millis(c.Detector.Idle),
		ReadyPollMs:   millis(c.Detector.ReadyPoll),
		CooldownMs:    millis(c.Detector.Cooldown),
		ScrollDelayMs: millis(c.Detector.ScrollDelay),
		Banner:        c.Detector.Banner,
	}
}

// TrackConfig returns the simulated layout matching the detector section.
func (c *Config) TrackConfig() hal.TrackConfig {
	t := hal.DefaultTrackConfig()
	t.DistanceM = c.Detector.DistanceM
	t.Scale = c.Detector.Scale
	t.TrainLengthM = c.Mock.TrainLengthM
	t.Noise = c.Mock.Noise
	return t
}

func millis(d time.Duration) uint32 {
	return uint32(d / time.Millisecond)
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Detector.DistanceM == 0 {
		c.Detector.DistanceM = def.Detector.DistanceM
	}
	if c.Detector.Scale == 0 {
		c.Detector.Scale = def.Detector.Scale
	}
	if c.Detector.MaxKMH == 0 {
		c.Detector.MaxKMH = def.Detector.MaxKMH
	}
	if c.Detector.Idle == 0 {
		c.Detector.Idle = def.Detector.Idle
	}
	if c.Detector.ReadyPoll == 0 {
		c.Detector.ReadyPoll = def.Detector.ReadyPoll
	}
	if c.Detector.Cooldown == 0 {
		c.Detector.Cooldown = def.Detector.Cooldown
	}
	if c.Detector.ScrollDelay == 0 {
		c.Detector.ScrollDelay = def.Detector.ScrollDelay
	}

	if c.Sensors.AnalogMax == 0 {
		c.Sensors.AnalogMax = def.Sensors.AnalogMax
	}

	if c.Calibration.Interval == 0 {
		c.Calibration.Interval = def.Calibration.Interval
	}

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.History.Window == 0 {
		c.History.Window = def.History.Window
	}

	if c.Mock.SpeedKMH == 0 {
		c.Mock.SpeedKMH = def.Mock.SpeedKMH
	}
	if c.Mock.Period == 0 {
		c.Mock.Period = def.Mock.Period
	}
	if c.Mock.TrainLengthM == 0 {
		c.Mock.TrainLengthM = def.Mock.TrainLengthM
	}
}
