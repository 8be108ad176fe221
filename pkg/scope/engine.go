// Package scope runs the oscilloscope front end: one goroutine owns the
// capture machine and handles received command bytes and finished
// conversions one at a time, each to completion.
package scope

import (
	"context"
	"log"

	"github.com/itohio/launchscope/pkg/capture"
	"github.com/itohio/launchscope/pkg/command"
	"github.com/itohio/launchscope/pkg/sample"
)

// Engine serializes commands and completions onto the capture machine.
type Engine struct {
	m           *capture.Machine
	d           *command.Dispatcher
	completions <-chan sample.Channel

	// rx holds at most one unhandled command byte.
	rx chan byte
}

// New creates an Engine. completions delivers finished conversions, usually
// from a capture.Notifier.
func New(m *capture.Machine, d *command.Dispatcher, completions <-chan sample.Channel) *Engine {
	return &Engine{
		m:           m,
		d:           d,
		completions: completions,
		rx:          make(chan byte, 1),
	}
}

// Receive latches a command byte. If the previous byte has not been handled
// yet it is overwritten. Receive never blocks.
func (e *Engine) Receive(b byte) {
	for {
		select {
		case e.rx <- b:
			return
		default:
		}
		select {
		case old := <-e.rx:
			log.Printf("Command %v overwritten by %v before it was handled", command.Code(old), command.Code(b))
		default:
		}
	}
}

// Run handles events until ctx is cancelled, then halts acquisition.
func (e *Engine) Run(ctx context.Context) error {
	defer func() {
		if err := e.m.Stop(); err != nil {
			log.Printf("Failed to stop capture: %v", err)
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case b := <-e.rx:
			before := e.m.Mode()
			if err := e.d.Dispatch(b); err != nil {
				log.Printf("Command %v failed: %v", command.Code(b), err)
			}
			if after := e.m.Mode(); after != before {
				log.Printf("Capture mode %v -> %v", before, after)
			}

		case ch, ok := <-e.completions:
			if !ok {
				log.Printf("Completion channel closed")
				e.completions = nil
				continue
			}
			before := e.m.Mode()
			if err := e.m.Complete(ch); err != nil {
				log.Printf("Completion on channel %v failed: %v", ch, err)
			}
			if after := e.m.Mode(); after != before {
				log.Printf("Capture mode %v -> %v", before, after)
			}
		}
	}
}
