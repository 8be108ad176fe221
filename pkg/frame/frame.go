// Package frame implements the two-byte wire format the board uses to report
// samples and diagnostic values to the host.
//
// Continuous samples and raw values go out low byte first. Burst drains go
// out high byte first. Hosts rely on this asymmetry.
package frame

import (
	"fmt"

	"github.com/itohio/launchscope/pkg/sample"
)

// Transport is the single-byte send side of the serial link.
// machine.UART, bufio.Writer and bytes.Buffer all satisfy it.
type Transport interface {
	WriteByte(c byte) error
}

// Encoder turns samples into frames and hands them to the Transport one byte
// at a time. It holds no state besides the Transport.
type Encoder struct {
	t Transport
}

// NewEncoder creates an Encoder writing to t.
func NewEncoder(t Transport) *Encoder {
	return &Encoder{t: t}
}

// Continuous emits a sample in continuous mode: the low 8 bits of the reading,
// then the channel tag OR'd with the reading's high bits.
func (e *Encoder) Continuous(s sample.Sample) error {
	w := sample.Tag(s)
	return e.Raw(byte(w>>8), byte(w))
}

// Burst emits one stored word, high byte first.
func (e *Encoder) Burst(w sample.Word) error {
	if err := e.t.WriteByte(byte(w >> 8)); err != nil {
		return fmt.Errorf("failed to send burst high byte: %w", err)
	}
	if err := e.t.WriteByte(byte(w)); err != nil {
		return fmt.Errorf("failed to send burst low byte: %w", err)
	}
	return nil
}

// Raw emits a diagnostic frame, low byte first.
func (e *Encoder) Raw(msb, lsb byte) error {
	if err := e.t.WriteByte(lsb); err != nil {
		return fmt.Errorf("failed to send low byte: %w", err)
	}
	if err := e.t.WriteByte(msb); err != nil {
		return fmt.Errorf("failed to send high byte: %w", err)
	}
	return nil
}
