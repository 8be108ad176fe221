//go:build tinygo

package main

import (
	"machine"
	"sync/atomic"

	"github.com/itohio/launchscope/pkg/capture"
	"github.com/itohio/launchscope/pkg/sample"
)

// adcSource runs one conversion per arm on the on-chip ADC. Conversions are
// performed by poll from the main loop; the engine goroutine only flips flags.
type adcSource struct {
	adcs  [sample.NumChannels]machine.ADC
	cfg   machine.ADCConfig
	chans []sample.Channel

	armed [sample.NumChannels]atomic.Bool
	ready [sample.NumChannels]atomic.Bool
	value [sample.NumChannels]atomic.Uint32

	done chan sample.Channel
}

var (
	_ capture.Source   = (*adcSource)(nil)
	_ capture.Notifier = (*adcSource)(nil)
)

func newADCSource() *adcSource {
	return &adcSource{
		adcs: [sample.NumChannels]machine.ADC{
			sample.ChannelA: {Pin: PIN_ADC_A},
			sample.ChannelB: {Pin: PIN_ADC_B},
		},
		cfg: machine.ADCConfig{
			Reference:  ADC_REFERENCE_MV,
			Resolution: ADC_RESOLUTION,
			Samples:    ADC_OVERSAMPLE,
		},
		chans: CHANNELS.Channels(),
		done:  make(chan sample.Channel, 2*sample.NumChannels),
	}
}

func (a *adcSource) Configure(ch sample.Channel) error {
	a.adcs[ch].Pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	a.adcs[ch].Configure(a.cfg)
	return nil
}

func (a *adcSource) Arm(ch sample.Channel) error {
	a.ready[ch].Store(false)
	a.armed[ch].Store(true)
	return nil
}

func (a *adcSource) Collect(ch sample.Channel) (uint16, error) {
	if !a.ready[ch].Swap(false) {
		return 0, capture.ErrNoConversion
	}
	return uint16(a.value[ch].Load()), nil
}

func (a *adcSource) Disable(ch sample.Channel) error {
	a.armed[ch].Store(false)
	a.ready[ch].Store(false)
	return nil
}

func (a *adcSource) Completed() <-chan sample.Channel {
	return a.done
}

// poll converts every armed channel and signals completion.
func (a *adcSource) poll() {
	for _, ch := range a.chans {
		if !a.armed[ch].CompareAndSwap(true, false) {
			continue
		}
		// machine.ADC scales readings to 16 bits
		a.value[ch].Store(uint32(a.adcs[ch].Get() >> (16 - ADC_RESOLUTION)))
		a.ready[ch].Store(true)
		select {
		case a.done <- ch:
		default:
		}
	}
}
