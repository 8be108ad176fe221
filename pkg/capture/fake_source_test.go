package capture

import (
	"errors"

	"github.com/itohio/launchscope/pkg/sample"
)

// fakeSource hands out queued readings per channel and records what the
// machine asked of it.
type fakeSource struct {
	readings   map[sample.Channel][]uint16
	armed      map[sample.Channel]bool
	configured map[sample.Channel]int
	arms       map[sample.Channel]int
	disables   map[sample.Channel]int

	configureErr error
	armErr       error
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		readings:   make(map[sample.Channel][]uint16),
		armed:      make(map[sample.Channel]bool),
		configured: make(map[sample.Channel]int),
		arms:       make(map[sample.Channel]int),
		disables:   make(map[sample.Channel]int),
	}
}

func (f *fakeSource) queue(ch sample.Channel, values ...uint16) {
	f.readings[ch] = append(f.readings[ch], values...)
}

func (f *fakeSource) Configure(ch sample.Channel) error {
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configured[ch]++
	return nil
}

func (f *fakeSource) Arm(ch sample.Channel) error {
	f.arms[ch]++
	if f.armErr != nil {
		return f.armErr
	}
	f.armed[ch] = true
	return nil
}

func (f *fakeSource) Collect(ch sample.Channel) (uint16, error) {
	if !f.armed[ch] {
		return 0, ErrNoConversion
	}
	f.armed[ch] = false
	q := f.readings[ch]
	if len(q) == 0 {
		return 0, errors.New("no reading queued")
	}
	f.readings[ch] = q[1:]
	return q[0], nil
}

func (f *fakeSource) Disable(ch sample.Channel) error {
	f.disables[ch]++
	f.armed[ch] = false
	return nil
}

type ledEvent struct {
	led LED
	on  bool
}

type recordingIndicator struct {
	events []ledEvent
	lit    map[LED]bool
}

func newRecordingIndicator() *recordingIndicator {
	return &recordingIndicator{lit: make(map[LED]bool)}
}

func (r *recordingIndicator) On(l LED) {
	r.events = append(r.events, ledEvent{l, true})
	r.lit[l] = true
}

func (r *recordingIndicator) Off(l LED) {
	r.events = append(r.events, ledEvent{l, false})
	r.lit[l] = false
}

// flakyTransport fails every write while down is set.
type flakyTransport struct {
	down bool
	got  []byte
}

var errTransport = errors.New("transport down")

func (f *flakyTransport) WriteByte(c byte) error {
	if f.down {
		return errTransport
	}
	f.got = append(f.got, c)
	return nil
}
