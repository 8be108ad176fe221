package config

import (
	"os"
	"testing"
	"time"

	"github.com/itohio/launchscope/pkg/sample"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, "/dev/ttyACM0", cfg.Serial.Port)
	assert.Equal(t, 128000, cfg.Serial.BaudRate)
	assert.Equal(t, []string{"A", "B"}, cfg.Channels)
	assert.Equal(t, 16100, cfg.Burst.Capacity)
	assert.False(t, cfg.Burst.DrainOnStop)
	assert.Equal(t, float32(3.3), cfg.ADC.VRef)
	assert.Equal(t, 8, cfg.ADC.Oversample)
	assert.Equal(t, time.Millisecond, cfg.Sim.ConversionTime)

	set, err := cfg.ChannelSet()
	require.NoError(t, err)
	assert.Equal(t, sample.DualChannel, set)
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
serial:
  port: "/dev/ttyUSB1"
  baud_rate: 115200

channels: [A]

burst:
  capacity: 4096
  drain_on_stop: true

adc:
  vref: 3.0
  oversample: 4

sim:
  frequency: 1000
  amplitude: 0.5
  offset: 1.5
  noise_level: 0
  conversion_time: 250us
`)

	cfg, err := Load(name)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, 115200, cfg.Serial.BaudRate)
	assert.Equal(t, []string{"A"}, cfg.Channels)
	assert.Equal(t, 4096, cfg.Burst.Capacity)
	assert.True(t, cfg.Burst.DrainOnStop)
	assert.Equal(t, float32(3.0), cfg.ADC.VRef)
	assert.Equal(t, 4, cfg.ADC.Oversample)
	assert.Equal(t, float32(1000), cfg.Sim.Frequency)
	assert.Equal(t, float32(0.5), cfg.Sim.Amplitude)
	assert.Equal(t, 250*time.Microsecond, cfg.Sim.ConversionTime)

	set, err := cfg.ChannelSet()
	require.NoError(t, err)
	assert.Equal(t, sample.SingleChannel, set)
}

func TestLoad_InvalidYAML(t *testing.T) {
	cfg, err := Load(writeTemp(t, "invalid: yaml: content: ["))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidChannel(t *testing.T) {
	cfg, err := Load(writeTemp(t, "channels: [A, Z]\n"))
	assert.ErrorIs(t, err, sample.ErrUnknownChannel)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	cfg, err := Load(writeTemp(t, `
serial:
  port: "/dev/ttyACM3"
burst:
  capacity: -5
`))
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyACM3", cfg.Serial.Port)
	assert.Equal(t, 128000, cfg.Serial.BaudRate)      // default
	assert.Equal(t, []string{"A", "B"}, cfg.Channels) // default
	assert.Equal(t, 16100, cfg.Burst.Capacity)        // default
	assert.Equal(t, float32(3.3), cfg.ADC.VRef)       // default
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Serial.Port = "/dev/ttyUSB0"
	cfg.Channels = []string{"B"}
	cfg.Burst.DrainOnStop = true

	name := writeTemp(t, "")
	require.NoError(t, cfg.Save(name))

	loaded, err := Load(name)
	require.NoError(t, err)
	assert.Equal(t, "/dev/ttyUSB0", loaded.Serial.Port)
	assert.Equal(t, []string{"B"}, loaded.Channels)
	assert.True(t, loaded.Burst.DrainOnStop)
	assert.Equal(t, cfg.Sim, loaded.Sim)
}
