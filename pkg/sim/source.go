// Package sim provides a simulated two-channel ADC so the front end can run
// on a development machine.
package sim

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/chewxy/math32"

	"github.com/itohio/launchscope/pkg/capture"
	"github.com/itohio/launchscope/pkg/config"
	"github.com/itohio/launchscope/pkg/sample"
)

// Source simulates one ADC unit per channel. Channel A sees a sine wave,
// channel B the same wave shifted by 90 degrees.
type Source struct {
	cfg  *config.SimConfig
	vref float32
	now  func() time.Time

	mu         sync.Mutex
	start      time.Time
	configured [sample.NumChannels]bool
	timers     [sample.NumChannels]*time.Timer
	ready      [sample.NumChannels]bool
	generation [sample.NumChannels]uint64

	done chan sample.Channel
}

var (
	_ capture.Source   = (*Source)(nil)
	_ capture.Notifier = (*Source)(nil)
)

// New creates a simulated source. A nil cfg selects the default signal.
func New(cfg *config.SimConfig, vref float32) *Source {
	if cfg == nil {
		def := config.Default()
		cfg = &def.Sim
	}
	if vref <= 0 {
		vref = config.Default().ADC.VRef
	}

	return &Source{
		cfg:   cfg,
		vref:  vref,
		now:   time.Now,
		start: time.Now(),
		done:  make(chan sample.Channel, 2*sample.NumChannels),
	}
}

// Configure powers up the simulated unit for ch.
func (s *Source) Configure(ch sample.Channel) error {
	if ch >= sample.NumChannels {
		return fmt.Errorf("%w: %v", sample.ErrUnknownChannel, ch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configured[ch] = true
	return nil
}

// Arm starts one conversion that completes after the configured conversion time.
func (s *Source) Arm(ch sample.Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch >= sample.NumChannels || !s.configured[ch] {
		return fmt.Errorf("channel %v not configured", ch)
	}

	s.disarmLocked(ch)
	gen := s.generation[ch]
	s.timers[ch] = time.AfterFunc(s.cfg.ConversionTime, func() {
		s.finish(ch, gen)
	})
	return nil
}

// Collect returns the simulated reading of a finished conversion.
func (s *Source) Collect(ch sample.Channel) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ch >= sample.NumChannels || !s.ready[ch] {
		return 0, capture.ErrNoConversion
	}
	s.ready[ch] = false

	t := float32(s.now().Sub(s.start).Seconds())
	return sample.FromVolts(s.voltage(ch, t), s.vref), nil
}

// Disable cancels any conversion in flight on ch.
func (s *Source) Disable(ch sample.Channel) error {
	if ch >= sample.NumChannels {
		return fmt.Errorf("%w: %v", sample.ErrUnknownChannel, ch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disarmLocked(ch)
	return nil
}

// Completed returns the channel of finished conversions.
func (s *Source) Completed() <-chan sample.Channel {
	return s.done
}

func (s *Source) disarmLocked(ch sample.Channel) {
	if s.timers[ch] != nil {
		s.timers[ch].Stop()
		s.timers[ch] = nil
	}
	s.ready[ch] = false
	s.generation[ch]++
}

// finish marks a conversion done unless it was superseded by a re-arm or disable.
func (s *Source) finish(ch sample.Channel, gen uint64) {
	s.mu.Lock()
	if s.generation[ch] != gen {
		s.mu.Unlock()
		return
	}
	s.ready[ch] = true
	s.timers[ch] = nil
	s.mu.Unlock()

	select {
	case s.done <- ch:
	default:
		log.Printf("Completion queue full, dropping channel %v", ch)
	}
}

// voltage returns the simulated input voltage on ch at t seconds.
func (s *Source) voltage(ch sample.Channel, t float32) float32 {
	phase := 2 * math32.Pi * s.cfg.Frequency * t
	if ch == sample.ChannelB {
		phase += math32.Pi / 2
	}

	// Deterministic pseudo-noise
	noise := (math32.Sin(t*1000) + math32.Cos(t*1300)) * s.cfg.NoiseLevel * 0.5

	return s.cfg.Offset + s.cfg.Amplitude*math32.Sin(phase) + noise
}
