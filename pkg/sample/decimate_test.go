package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ramp(n int) []Sample {
	samples := make([]Sample, n)
	for i := range samples {
		samples[i] = Sample{Channel: Channel(i % NumChannels), Value: uint16(i)}
	}
	return samples
}

func TestDecimate_NoDecimation(t *testing.T) {
	samples := ramp(3)

	result := Decimate(nil, samples, 10)
	assert.Equal(t, samples, result)

	dst := make([]Sample, 0, 10)
	result = Decimate(dst, samples, 10)
	assert.Equal(t, samples, result)
	assert.Equal(t, cap(dst), cap(result))
}

func TestDecimate_WithDecimation(t *testing.T) {
	samples := ramp(100)

	dst := make([]Sample, 0, 20)
	result := Decimate(dst, samples, 10)
	require.Len(t, result, 10)

	assert.Equal(t, samples[0], result[0])
	assert.Equal(t, samples[90], result[9])
	for i := 1; i < len(result); i++ {
		assert.Greater(t, result[i].Value, result[i-1].Value)
	}
	assert.Equal(t, cap(dst), cap(result))
}

func TestDecimate_DestinationReuse(t *testing.T) {
	dst := make([]Sample, 0, 10)

	first := Decimate(dst, ramp(2), 10)
	require.Len(t, first, 2)

	second := Decimate(first, ramp(3), 10)
	require.Len(t, second, 3)
	assert.Equal(t, uint16(2), second[2].Value)
}

func TestDecimate_EdgeCases(t *testing.T) {
	assert.Empty(t, Decimate(nil, nil, 10))
	assert.Empty(t, Decimate(nil, ramp(5), 0))
	assert.Len(t, Decimate(nil, ramp(5), 1), 1)
}
