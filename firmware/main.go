//go:build tinygo

//go:generate tinygo flash -target=xiao

package main

import (
	"context"
	"io"
	"log"
	"machine"
	"runtime"
	"time"

	"github.com/itohio/launchscope/pkg/burst"
	"github.com/itohio/launchscope/pkg/capture"
	"github.com/itohio/launchscope/pkg/command"
	"github.com/itohio/launchscope/pkg/frame"
	"github.com/itohio/launchscope/pkg/scope"
)

var uart = machine.UART0

func main() {
	// The serial port carries the binary protocol; keep log text off it.
	log.SetOutput(io.Discard)

	machine.InitADC()
	indicator := newLEDs()

	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	src := newADCSource()
	enc := frame.NewEncoder(uart)

	buf, err := burst.New(BURST_CAPACITY)
	if err != nil {
		fail(indicator)
	}

	m, err := capture.New(capture.Options{Channels: CHANNELS}, src, enc, buf, indicator)
	if err != nil {
		fail(indicator)
	}

	eng := scope.New(m, command.NewDispatcher(m, enc, indicator), src.Completed())
	go eng.Run(context.Background())

	// Main loop
	for {
		for uart.Buffered() > 0 {
			b, err := uart.ReadByte()
			if err != nil {
				break
			}
			eng.Receive(b)
		}

		src.poll()

		// Let the engine handle what was just posted
		runtime.Gosched()
	}
}

// fail blinks both LEDs forever; bring-up cannot be retried.
func fail(l *leds) {
	for {
		l.On(capture.LEDActivity)
		l.On(capture.LEDBurst)
		time.Sleep(200 * time.Millisecond)
		l.Off(capture.LEDActivity)
		l.Off(capture.LEDBurst)
		time.Sleep(200 * time.Millisecond)
	}
}
