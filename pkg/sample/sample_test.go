package sample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannel_Tag(t *testing.T) {
	assert.Equal(t, uint16(0x8000), ChannelA.Tag())
	assert.Equal(t, uint16(0x4000), ChannelB.Tag())
	assert.Equal(t, uint16(0), Channel(7).Tag())
}

func TestParseChannel(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Channel
		wantErr bool
	}{
		{name: "upper A", in: "A", want: ChannelA},
		{name: "lower b", in: "b", want: ChannelB},
		{name: "padded", in: " a ", want: ChannelA},
		{name: "unknown", in: "C", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseChannel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownChannel)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChannelSet(t *testing.T) {
	assert.True(t, SingleChannel.Has(ChannelA))
	assert.False(t, SingleChannel.Has(ChannelB))
	assert.Equal(t, []Channel{ChannelA}, SingleChannel.Channels())
	assert.Equal(t, "A", SingleChannel.String())

	assert.True(t, DualChannel.Has(ChannelB))
	assert.Equal(t, []Channel{ChannelA, ChannelB}, DualChannel.Channels())
	assert.Equal(t, 2, DualChannel.Len())
	assert.Equal(t, "AB", DualChannel.String())

	var empty ChannelSet
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, "-", empty.String())
	assert.False(t, DualChannel.Has(Channel(5)))

	set, err := ParseChannelSet([]string{"B"})
	require.NoError(t, err)
	assert.Equal(t, []Channel{ChannelB}, set.Channels())

	_, err = ParseChannelSet([]string{"A", "X"})
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestTag(t *testing.T) {
	tests := []struct {
		name string
		in   Sample
		want Word
	}{
		{name: "A zero", in: Sample{Channel: ChannelA, Value: 0}, want: 0x8000},
		{name: "A full scale", in: Sample{Channel: ChannelA, Value: MaxValue}, want: 0x8FFF},
		{name: "B 0xABC", in: Sample{Channel: ChannelB, Value: 0x0ABC}, want: 0x4ABC},
		{name: "magnitude masked", in: Sample{Channel: ChannelB, Value: 0xFFFF}, want: 0x7FFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tag(tt.in))
		})
	}
}

func TestWord_RoundTrip(t *testing.T) {
	for _, c := range DualChannel.Channels() {
		for v := uint16(0); v <= MaxValue; v++ {
			s := Sample{Channel: c, Value: v}
			got, err := Tag(s).Sample()
			require.NoError(t, err)
			require.Equal(t, s, got)
		}
	}
}

func TestWord_BadTag(t *testing.T) {
	_, err := Word(0x0123).Sample()
	assert.ErrorIs(t, err, ErrUnknownChannel)

	_, err = Word(0xC123).Channel()
	assert.ErrorIs(t, err, ErrUnknownChannel)
}

func TestVolts(t *testing.T) {
	tests := []struct {
		name string
		adc  uint16
		vref float32
		want float32
	}{
		{name: "zero ADC", adc: 0, vref: 3.3, want: 0},
		{name: "max ADC", adc: 4095, vref: 3.3, want: 3.3},
		{name: "half ADC", adc: 2047, vref: 3.3, want: 1.65},
		{name: "vcc report", adc: 0x0A8F, vref: 5.0, want: 3.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Volts(tt.adc, tt.vref), 0.01)
		})
	}
}

func TestFromVolts(t *testing.T) {
	tests := []struct {
		name  string
		volts float32
		want  uint16
	}{
		{name: "negative clamps", volts: -1, want: 0},
		{name: "zero", volts: 0, want: 0},
		{name: "one volt", volts: 1.0, want: 1241},
		{name: "max", volts: 3.3, want: 4095},
		{name: "above max clamps", volts: 5, want: 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromVolts(tt.volts, 3.3))
		})
	}

	assert.Equal(t, uint16(0), FromVolts(1, 0))
}
