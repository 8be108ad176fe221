package sample

import (
	"errors"
	"fmt"
	"strings"

	"github.com/chewxy/math32"
)

const (
	// Bits is the resolution of an oversampled reading.
	Bits = 12
	// MaxValue is the largest reading a channel can produce (0-4095).
	MaxValue = 1<<Bits - 1

	// MagnitudeMask keeps the magnitude clear of the two tag bits.
	MagnitudeMask = 0x3FFF
	// TagMask selects the two tag bits of a Word.
	TagMask = 0xC000
)

// ErrUnknownChannel is returned when a channel name or tag does not map to a channel.
var ErrUnknownChannel = errors.New("unknown channel")

// Channel identifies one of the two independent ADC units.
type Channel uint8

const (
	ChannelA Channel = iota
	ChannelB

	// NumChannels is the number of ADC units on the board.
	NumChannels = 2
)

// Tag returns the channel's identity bits in Word position.
// Channel A is tagged 10, channel B is tagged 01.
func (c Channel) Tag() uint16 {
	switch c {
	case ChannelA:
		return 0x8000
	case ChannelB:
		return 0x4000
	}
	return 0
}

func (c Channel) String() string {
	switch c {
	case ChannelA:
		return "A"
	case ChannelB:
		return "B"
	}
	return fmt.Sprintf("Channel(%d)", uint8(c))
}

// ParseChannel parses a channel name ("A" or "B", case-insensitive).
func ParseChannel(s string) (Channel, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return ChannelA, nil
	case "B":
		return ChannelB, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownChannel, s)
}

// ChannelSet is the set of channels that are wired up and allowed to capture.
type ChannelSet uint8

const (
	SingleChannel ChannelSet = 1 << ChannelA
	DualChannel   ChannelSet = 1<<ChannelA | 1<<ChannelB
)

// Has reports whether c is enabled.
func (s ChannelSet) Has(c Channel) bool {
	return c < NumChannels && s&(1<<c) != 0
}

// With returns the set with c enabled.
func (s ChannelSet) With(c Channel) ChannelSet {
	return s | 1<<c
}

// Channels lists the enabled channels, A first.
func (s ChannelSet) Channels() []Channel {
	chans := make([]Channel, 0, NumChannels)
	for c := ChannelA; c < NumChannels; c++ {
		if s.Has(c) {
			chans = append(chans, c)
		}
	}
	return chans
}

// Len returns the number of enabled channels.
func (s ChannelSet) Len() int {
	return len(s.Channels())
}

func (s ChannelSet) String() string {
	var b strings.Builder
	for _, c := range s.Channels() {
		b.WriteString(c.String())
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

// ParseChannelSet builds a set from channel names.
func ParseChannelSet(names []string) (ChannelSet, error) {
	var set ChannelSet
	for _, name := range names {
		c, err := ParseChannel(name)
		if err != nil {
			return 0, err
		}
		set = set.With(c)
	}
	return set, nil
}

// Sample is a single reading and the channel that produced it.
type Sample struct {
	Channel Channel
	Value   uint16 // 12-bit oversampled reading (0-4095)
}

// Word is a tagged sample as stored in the burst buffer: two tag bits
// followed by a 14-bit magnitude.
type Word uint16

// Tag packs a sample into a Word.
func Tag(s Sample) Word {
	return Word(s.Channel.Tag() | s.Value&MagnitudeMask)
}

// Channel decodes the tag bits.
func (w Word) Channel() (Channel, error) {
	switch uint16(w) & TagMask {
	case ChannelA.Tag():
		return ChannelA, nil
	case ChannelB.Tag():
		return ChannelB, nil
	}
	return 0, fmt.Errorf("%w: tag %02b", ErrUnknownChannel, uint16(w)>>14)
}

// Magnitude returns the untagged value.
func (w Word) Magnitude() uint16 {
	return uint16(w) & MagnitudeMask
}

// Sample unpacks the word.
func (w Word) Sample() (Sample, error) {
	c, err := w.Channel()
	if err != nil {
		return Sample{}, err
	}
	return Sample{Channel: c, Value: w.Magnitude()}, nil
}

// Volts converts a 12-bit reading to volts against the reference.
func Volts(v uint16, vref float32) float32 {
	return float32(v) / MaxValue * vref
}

// FromVolts converts a voltage to the nearest 12-bit reading, clamped to the ADC range.
func FromVolts(v, vref float32) uint16 {
	if vref <= 0 {
		return 0
	}
	raw := math32.Round(v / vref * MaxValue)
	if raw < 0 {
		return 0
	}
	if raw > MaxValue {
		return MaxValue
	}
	return uint16(raw)
}
