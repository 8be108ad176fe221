package frame

import (
	"fmt"
	"io"

	"github.com/itohio/launchscope/pkg/sample"
)

// Decoder reads frames back from a byte stream, the way a host does.
type Decoder struct {
	r   io.Reader
	buf [2]byte
}

// NewDecoder creates a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Raw reads a low-byte-first frame and returns it as a 16-bit value.
func (d *Decoder) Raw() (uint16, error) {
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		return 0, err
	}
	return uint16(d.buf[1])<<8 | uint16(d.buf[0]), nil
}

// Continuous reads one continuous-mode sample.
func (d *Decoder) Continuous() (sample.Sample, error) {
	v, err := d.Raw()
	if err != nil {
		return sample.Sample{}, err
	}
	s, err := sample.Word(v).Sample()
	if err != nil {
		return sample.Sample{}, fmt.Errorf("invalid continuous frame %04x: %w", v, err)
	}
	return s, nil
}

// Burst reads one drained burst word, high byte first.
func (d *Decoder) Burst() (sample.Sample, error) {
	if _, err := io.ReadFull(d.r, d.buf[:]); err != nil {
		return sample.Sample{}, err
	}
	w := sample.Word(uint16(d.buf[0])<<8 | uint16(d.buf[1]))
	s, err := w.Sample()
	if err != nil {
		return sample.Sample{}, fmt.Errorf("invalid burst frame %04x: %w", uint16(w), err)
	}
	return s, nil
}
