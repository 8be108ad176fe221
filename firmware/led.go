//go:build tinygo

package main

import (
	"machine"

	"github.com/itohio/launchscope/pkg/capture"
)

type leds struct {
	pins [2]machine.Pin
}

func newLEDs() *leds {
	l := &leds{pins: [2]machine.Pin{
		capture.LEDActivity: PIN_LED_ACTIVITY,
		capture.LEDBurst:    PIN_LED_BURST,
	}}
	for _, p := range l.pins {
		p.Configure(machine.PinConfig{Mode: machine.PinOutput})
		p.Low()
	}
	return l
}

func (l *leds) On(led capture.LED)  { l.pins[led].High() }
func (l *leds) Off(led capture.LED) { l.pins[led].Low() }
