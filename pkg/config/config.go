package config

import (
	"fmt"
	"os"
	"time"

	"github.com/itohio/launchscope/pkg/burst"
	"github.com/itohio/launchscope/pkg/sample"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Serial   SerialConfig `yaml:"serial"`
	Channels []string     `yaml:"channels"` // Enabled ADC channels ("A", "B")
	Burst    BurstConfig  `yaml:"burst"`
	ADC      ADCConfig    `yaml:"adc"`
	Sim      SimConfig    `yaml:"sim"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// BurstConfig contains burst capture parameters.
type BurstConfig struct {
	Capacity    int  `yaml:"capacity"`      // Memory depth in samples
	DrainOnStop bool `yaml:"drain_on_stop"` // Send a partial burst when STOP arrives
}

// ADCConfig describes the converters.
type ADCConfig struct {
	VRef       float32 `yaml:"vref"`       // Reference voltage (V)
	Oversample int     `yaml:"oversample"` // Hardware oversampling factor
}

// SimConfig contains simulated signal configuration.
type SimConfig struct {
	Frequency      float32       `yaml:"frequency"`       // Signal frequency (Hz)
	Amplitude      float32       `yaml:"amplitude"`       // Peak amplitude (V)
	Offset         float32       `yaml:"offset"`          // DC offset (V)
	NoiseLevel     float32       `yaml:"noise_level"`     // Noise amplitude (V)
	ConversionTime time.Duration `yaml:"conversion_time"` // Time for one conversion
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "/dev/ttyACM0",
			BaudRate: 128000,
		},
		Channels: []string{"A", "B"},
		Burst: BurstConfig{
			Capacity:    burst.DefaultCapacity,
			DrainOnStop: false,
		},
		ADC: ADCConfig{
			VRef:       3.3,
			Oversample: 8,
		},
		Sim: SimConfig{
			Frequency:      50,
			Amplitude:      1.0,
			Offset:         1.65,
			NoiseLevel:     0.01,
			ConversionTime: time.Millisecond,
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

	if _, err := cfg.ChannelSet(); err != nil {
		return nil, fmt.Errorf("invalid channels: %w", err)
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

// ChannelSet returns the enabled channels.
func (c *Config) ChannelSet() (sample.ChannelSet, error) {
	return sample.ParseChannelSet(c.Channels)
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate <= 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if len(c.Channels) == 0 {
		c.Channels = def.Channels
	}

	if c.Burst.Capacity <= 0 {
		c.Burst.Capacity = def.Burst.Capacity
	}

	if c.ADC.VRef <= 0 {
		c.ADC.VRef = def.ADC.VRef
	}
	if c.ADC.Oversample <= 0 {
		c.ADC.Oversample = def.ADC.Oversample
	}

	if c.Sim.Frequency <= 0 {
		c.Sim.Frequency = def.Sim.Frequency
	}
	if c.Sim.ConversionTime <= 0 {
		c.Sim.ConversionTime = def.Sim.ConversionTime
	}
}
