package capture

import (
	"errors"

	"github.com/itohio/launchscope/pkg/sample"
)

var (
	// ErrNoConversion is returned by Source.Collect when the channel has no
	// finished conversion, e.g. for a completion that raced with Stop.
	ErrNoConversion = errors.New("no conversion pending")
	// ErrChannelDisabled is returned for a channel outside the enable set.
	ErrChannelDisabled = errors.New("channel disabled")
)

// Source owns hardware-triggered acquisition for each channel.
// Channels are independent: arming B never waits on A.
type Source interface {
	// Configure brings up the channel's capture unit. Idempotent.
	Configure(ch sample.Channel) error
	// Arm disables the unit, reconfigures it and requests one conversion.
	Arm(ch sample.Channel) error
	// Collect disables the unit, clears the completion and returns the reading.
	Collect(ch sample.Channel) (uint16, error)
	// Disable stops the unit and drops any pending completion.
	Disable(ch sample.Channel) error
}

// Notifier is implemented by sources that signal completions asynchronously.
type Notifier interface {
	Completed() <-chan sample.Channel
}

// LED names a status light.
type LED uint8

const (
	// LEDActivity is lit while streaming, draining or running the speed test.
	LEDActivity LED = iota
	// LEDBurst is lit while a burst is filling.
	LEDBurst
)

func (l LED) String() string {
	switch l {
	case LEDActivity:
		return "activity"
	case LEDBurst:
		return "burst"
	}
	return "unknown"
}

// Indicator drives status lights. It never affects protocol behavior.
type Indicator interface {
	On(l LED)
	Off(l LED)
}

// NopIndicator ignores all signals.
type NopIndicator struct{}

func (NopIndicator) On(LED)  {}
func (NopIndicator) Off(LED) {}
