//go:build tinygo

package main

import (
	"machine"

	"github.com/itohio/launchscope/pkg/sample"
)

const (
	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits (12-bit = 0-4095)
	ADC_OVERSAMPLE   = 8    // Hardware oversampling factor

	// Enabled channels. SingleChannel leaves PIN_ADC_B unconfigured.
	CHANNELS = sample.DualChannel

	// Burst memory depth in samples. The SAMD21 has 32 KiB of RAM, so this
	// is half of the LaunchPad depth (burst.DefaultCapacity).
	BURST_CAPACITY = 8192

	// ADC pins
	PIN_ADC_A = machine.A1
	PIN_ADC_B = machine.A10

	// Status LEDs
	PIN_LED_ACTIVITY = machine.D7
	PIN_LED_BURST    = machine.D8

	// Serial configuration
	// Continuous mode sends 2 bytes per sample. UART 8N1 at 128000 baud
	// moves 12,800 bytes/sec, so ~6,400 samples/sec shared by both channels.
	UART_BAUD_RATE = 128000
)
