package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/itohio/launchscope/pkg/command"
	"github.com/itohio/launchscope/pkg/config"
	"github.com/itohio/launchscope/pkg/frame"
	"github.com/itohio/launchscope/pkg/sample"
	"github.com/itohio/launchscope/pkg/scope"
)

const (
	CapacityOptionName = "capacity"
	SamplesOptionName  = "samples"

	// quietPeriod without a reply byte means the board has nothing more to send.
	quietPeriod = 250 * time.Millisecond
)

var errQuiet = errors.New("no reply")

func newSelfTestCommand(opts *options) *cobra.Command {
	var capacity, samples int
	cmd := &cobra.Command{
		Use:   "selftest",
		Short: "Run every command against an in-process board and summarize the replies",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if capacity > 0 {
				cfg.Burst.Capacity = capacity
			}
			rep, err := runSelfTest(cmd.Context(), cfg, samples)
			if err != nil {
				return err
			}
			rep.print(cmd.OutOrStdout(), cfg.ADC.VRef)
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, CapacityOptionName, 64, "Burst depth used for the test")
	cmd.Flags().IntVar(&samples, SamplesOptionName, 32, "Continuous samples to read before STOP")
	return cmd
}

// loopback carries reply bytes from the engine to the host side of the test.
type loopback struct {
	ch   chan byte
	done <-chan struct{}
}

func (l *loopback) WriteByte(c byte) error {
	select {
	case l.ch <- c:
		return nil
	case <-l.done:
		return io.ErrClosedPipe
	}
}

// Read returns errQuiet once nothing has arrived for quietPeriod.
func (l *loopback) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	select {
	case b := <-l.ch:
		p[0] = b
		return 1, nil
	case <-time.After(quietPeriod):
		return 0, errQuiet
	}
}

type report struct {
	SpeedFrames int
	VCC         uint16
	Stream      []sample.Sample
	AfterStop   int
	Burst       []sample.Sample
}

func runSelfTest(ctx context.Context, cfg *config.Config, samples int) (*report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	lb := &loopback{ch: make(chan byte, 64), done: ctx.Done()}

	b, err := newBoard(cfg, lb)
	if err != nil {
		return nil, err
	}

	rep := &report{}
	g.Go(func() error {
		return b.eng.Run(ctx)
	})
	g.Go(func() error {
		defer cancel()
		return rep.probe(b.eng, frame.NewDecoder(lb), samples, cfg.Burst.Capacity)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rep, nil
}

func (r *report) probe(eng *scope.Engine, dec *frame.Decoder, samples, capacity int) error {
	eng.Receive(byte(command.TestSpeed))
	for i := range command.SpeedTestFrames {
		v, err := dec.Raw()
		if err != nil {
			return fmt.Errorf("speed test frame %d: %w", i, err)
		}
		if v != uint16(i) {
			return fmt.Errorf("speed test frame %d: got %d", i, v)
		}
		r.SpeedFrames++
	}

	eng.Receive(byte(command.ReadVCC))
	v, err := dec.Raw()
	if err != nil {
		return fmt.Errorf("read vcc: %w", err)
	}
	if want := uint16(command.VCCHigh)<<8 | uint16(command.VCCLow); v != want {
		return fmt.Errorf("read vcc: got %04x, want %04x", v, want)
	}
	r.VCC = v

	eng.Receive(byte(command.Stream))
	for len(r.Stream) < samples {
		s, err := dec.Continuous()
		if err != nil {
			return fmt.Errorf("stream sample %d: %w", len(r.Stream), err)
		}
		r.Stream = append(r.Stream, s)
	}
	eng.Receive(byte(command.Stop))
	for {
		_, err := dec.Continuous()
		if errors.Is(err, errQuiet) {
			break
		}
		if err != nil {
			return fmt.Errorf("stream after stop: %w", err)
		}
		r.AfterStop++
	}

	eng.Receive(byte(command.Burst))
	for len(r.Burst) < capacity {
		s, err := dec.Burst()
		if err != nil {
			return fmt.Errorf("burst word %d: %w", len(r.Burst), err)
		}
		r.Burst = append(r.Burst, s)
	}
	if _, err := dec.Burst(); !errors.Is(err, errQuiet) {
		return fmt.Errorf("burst sent more than %d words", capacity)
	}
	return nil
}

// previewPoints is how many burst samples the summary shows.
const previewPoints = 8

func (r *report) print(w io.Writer, vref float32) {
	fmt.Fprintf(w, "Speed test: %d frames\n", r.SpeedFrames)
	fmt.Fprintf(w, "VCC marker: 0x%04X\n", r.VCC)
	fmt.Fprintf(w, "Stream: %d samples, %d after STOP\n", len(r.Stream), r.AfterStop)
	printStats(w, sample.Summarize(r.Stream), vref)
	fmt.Fprintf(w, "Burst: %d words\n", len(r.Burst))
	printStats(w, sample.Summarize(r.Burst), vref)
	if len(r.Burst) > 0 {
		fmt.Fprint(w, "  preview:")
		for _, s := range sample.Decimate(nil, r.Burst, previewPoints) {
			fmt.Fprintf(w, " %v=%.2fV", s.Channel, sample.Volts(s.Value, vref))
		}
		fmt.Fprintln(w)
	}
}

func printStats(w io.Writer, stats [sample.NumChannels]sample.Stats, vref float32) {
	for ch, st := range stats {
		if st.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "  %v: %d samples, %.3fV..%.3fV, mean %.3fV\n",
			sample.Channel(ch), st.Count,
			sample.Volts(st.Min, vref), sample.Volts(st.Max, vref), sample.Volts(st.Mean(), vref))
	}
}
