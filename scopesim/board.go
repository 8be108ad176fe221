package main

import (
	"github.com/itohio/launchscope/pkg/burst"
	"github.com/itohio/launchscope/pkg/capture"
	"github.com/itohio/launchscope/pkg/command"
	"github.com/itohio/launchscope/pkg/config"
	"github.com/itohio/launchscope/pkg/frame"
	"github.com/itohio/launchscope/pkg/scope"
	"github.com/itohio/launchscope/pkg/sim"
)

// board is the firmware wiring with the simulated converter in place of the ADC.
type board struct {
	src *sim.Source
	m   *capture.Machine
	eng *scope.Engine
}

func newBoard(cfg *config.Config, t frame.Transport) (*board, error) {
	chans, err := cfg.ChannelSet()
	if err != nil {
		return nil, err
	}

	buf, err := burst.New(cfg.Burst.Capacity)
	if err != nil {
		return nil, err
	}

	src := sim.New(&cfg.Sim, cfg.ADC.VRef)
	enc := frame.NewEncoder(t)
	leds := &sim.Indicator{}

	m, err := capture.New(capture.Options{
		Channels:    chans,
		DrainOnStop: cfg.Burst.DrainOnStop,
	}, src, enc, buf, leds)
	if err != nil {
		return nil, err
	}

	return &board{
		src: src,
		m:   m,
		eng: scope.New(m, command.NewDispatcher(m, enc, leds), src.Completed()),
	}, nil
}
