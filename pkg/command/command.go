// Package command decodes the single-byte host protocol.
package command

import (
	"fmt"

	"github.com/itohio/launchscope/pkg/capture"
	"github.com/itohio/launchscope/pkg/frame"
)

// Code is an ASCII command byte sent by the host.
type Code byte

const (
	TestSpeed Code = 0x31 // '1': emit 256 counting frames
	ReadOnce  Code = 0x32 // '2': reserved
	Stream    Code = 0x33 // '3': start continuous streaming
	Stop      Code = 0x34 // '4': stop streaming
	ReadTemp  Code = 0x35 // '5': reserved
	ReadVCC   Code = 0x36 // '6': report the fixed reference voltage
	Burst     Code = 0x37 // '7': capture one burst
)

// Fixed READ_VCC frame. The host scales it to 3.3 V.
const (
	VCCHigh byte = 0x0A
	VCCLow  byte = 0x8F
)

// SpeedTestFrames is the number of frames TEST_SPEED emits.
const SpeedTestFrames = 0x100

var names = map[Code]string{
	TestSpeed: "TEST_SPEED",
	ReadOnce:  "READ_ONCE",
	Stream:    "STREAM",
	Stop:      "STOP",
	ReadTemp:  "READ_TEMP",
	ReadVCC:   "READ_VCC",
	Burst:     "BURST",
}

func (c Code) String() string {
	if n, ok := names[c]; ok {
		return n
	}
	return fmt.Sprintf("0x%02x", byte(c))
}

// Known reports whether c is part of the protocol.
func (c Code) Known() bool {
	_, ok := names[c]
	return ok
}

// Controller is the part of the capture machine the dispatcher drives.
type Controller interface {
	Start() error
	StartBurst() error
	Stop() error
}

var _ Controller = (*capture.Machine)(nil)

// Dispatcher turns command bytes into state transitions and diagnostic replies.
type Dispatcher struct {
	ctl Controller
	enc *frame.Encoder
	led capture.Indicator
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(ctl Controller, enc *frame.Encoder, led capture.Indicator) *Dispatcher {
	if led == nil {
		led = capture.NopIndicator{}
	}
	return &Dispatcher{ctl: ctl, enc: enc, led: led}
}

// Dispatch handles one received byte. Unknown and reserved commands are
// ignored without a reply. Only transport or source failures are returned.
func (d *Dispatcher) Dispatch(b byte) error {
	switch Code(b) {
	case TestSpeed:
		return d.speedTest()
	case Stream:
		return d.ctl.Start()
	case Stop:
		return d.ctl.Stop()
	case ReadVCC:
		return d.enc.Raw(VCCHigh, VCCLow)
	case Burst:
		return d.ctl.StartBurst()
	case ReadOnce, ReadTemp:
		// not implemented on this board
	}
	return nil
}

// speedTest sends the counter 0..255 as 16-bit values so the host can
// measure link throughput.
func (d *Dispatcher) speedTest() error {
	d.led.On(capture.LEDActivity)
	defer d.led.Off(capture.LEDActivity)

	for i := range SpeedTestFrames {
		if err := d.enc.Raw(0, byte(i)); err != nil {
			return fmt.Errorf("speed test aborted at frame %d: %w", i, err)
		}
	}
	return nil
}
