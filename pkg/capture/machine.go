// Package capture implements the acquisition state machine that arbitrates
// between idle, continuous streaming and burst capture.
package capture

import (
	"errors"
	"fmt"
	"log"

	"github.com/itohio/launchscope/pkg/burst"
	"github.com/itohio/launchscope/pkg/frame"
	"github.com/itohio/launchscope/pkg/sample"
)

// Mode is the capture mode. Exactly one is active at any time.
type Mode uint8

const (
	ModeIdle Mode = iota
	ModeContinuous
	ModeBurst
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeContinuous:
		return "continuous"
	case ModeBurst:
		return "burst"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// Streaming reports whether acquisition is running.
func (m Mode) Streaming() bool {
	return m == ModeContinuous || m == ModeBurst
}

// Options configures a Machine.
type Options struct {
	Channels sample.ChannelSet
	// DrainOnStop flushes a partially filled burst when Stop arrives.
	// The default discards it.
	DrainOnStop bool
}

// Machine owns the capture mode, the enabled sources and the burst buffer.
// It is not safe for concurrent use; a single goroutine must deliver both
// commands and completions.
type Machine struct {
	opts Options
	mode Mode

	src Source
	enc *frame.Encoder
	buf *burst.Buffer
	led Indicator
}

// New configures every enabled channel on src and returns an idle Machine.
func New(opts Options, src Source, enc *frame.Encoder, buf *burst.Buffer, led Indicator) (*Machine, error) {
	if opts.Channels.Len() == 0 {
		return nil, fmt.Errorf("no channels enabled")
	}
	if led == nil {
		led = NopIndicator{}
	}

	for _, ch := range opts.Channels.Channels() {
		if err := src.Configure(ch); err != nil {
			return nil, fmt.Errorf("failed to configure channel %v: %w", ch, err)
		}
	}

	return &Machine{
		opts: opts,
		mode: ModeIdle,
		src:  src,
		enc:  enc,
		buf:  buf,
		led:  led,
	}, nil
}

// Mode returns the current capture mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Channels returns the enable set.
func (m *Machine) Channels() sample.ChannelSet {
	return m.opts.Channels
}

// Buffered returns the number of words captured in the current burst.
func (m *Machine) Buffered() int {
	return m.buf.Len()
}

// Start begins continuous streaming on all enabled channels.
// A running burst is left alone.
func (m *Machine) Start() error {
	if m.mode == ModeBurst {
		return nil
	}
	m.mode = ModeContinuous
	return m.armAll()
}

// StartBurst rewinds the burst buffer and starts filling it. A stream or
// burst already in progress is replaced.
func (m *Machine) StartBurst() error {
	m.buf.Reset()
	m.mode = ModeBurst
	m.led.On(LEDBurst)
	return m.armAll()
}

// Stop halts acquisition immediately. A partial burst is discarded unless
// DrainOnStop is set.
func (m *Machine) Stop() error {
	if m.mode == ModeIdle {
		return nil
	}
	wasBurst := m.mode == ModeBurst

	err := m.halt()
	if wasBurst {
		m.led.Off(LEDBurst)
		if m.opts.DrainOnStop && m.buf.Len() > 0 {
			err = errors.Join(err, m.drain())
		}
	}
	return err
}

// Complete handles a finished conversion on ch: the sample is either sent
// straight away or stored, and the channel is re-armed while streaming.
// When the burst buffer fills, acquisition stops and the buffer is drained
// before Complete returns.
func (m *Machine) Complete(ch sample.Channel) error {
	if !m.opts.Channels.Has(ch) {
		return fmt.Errorf("completion on channel %v: %w", ch, ErrChannelDisabled)
	}

	v, err := m.src.Collect(ch)
	if errors.Is(err, ErrNoConversion) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to collect channel %v: %w", ch, err)
	}
	s := sample.Sample{Channel: ch, Value: v}

	switch m.mode {
	case ModeIdle:
		// late completion after Stop
		return nil

	case ModeContinuous:
		err = m.enc.Continuous(s)

	case ModeBurst:
		full, appendErr := m.buf.Append(sample.Tag(s))
		if appendErr != nil {
			return fmt.Errorf("channel %v: %w", ch, appendErr)
		}
		if full {
			m.led.Off(LEDBurst)
			return errors.Join(m.halt(), m.drain())
		}
	}

	if m.mode.Streaming() {
		if armErr := m.src.Arm(ch); armErr != nil {
			err = errors.Join(err, fmt.Errorf("failed to re-arm channel %v: %w", ch, armErr))
		}
	}
	return err
}

func (m *Machine) armAll() error {
	var errs []error
	for _, ch := range m.opts.Channels.Channels() {
		if err := m.src.Arm(ch); err != nil {
			errs = append(errs, fmt.Errorf("failed to arm channel %v: %w", ch, err))
		}
	}
	m.led.On(LEDActivity)
	return errors.Join(errs...)
}

// halt returns to idle and disables every enabled source.
func (m *Machine) halt() error {
	m.mode = ModeIdle
	var errs []error
	for _, ch := range m.opts.Channels.Channels() {
		if err := m.src.Disable(ch); err != nil {
			errs = append(errs, fmt.Errorf("failed to disable channel %v: %w", ch, err))
		}
	}
	m.led.Off(LEDActivity)
	return errors.Join(errs...)
}

func (m *Machine) drain() error {
	m.led.On(LEDActivity)
	defer m.led.Off(LEDActivity)

	n := 0
	for w := range m.buf.Drain() {
		if err := m.enc.Burst(w); err != nil {
			return fmt.Errorf("burst drain aborted after %d of %d words: %w", n, m.buf.Len(), err)
		}
		n++
	}
	log.Printf("Burst drained: %d words", n)
	return nil
}
