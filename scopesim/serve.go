package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/itohio/launchscope/pkg/config"
	"github.com/itohio/launchscope/pkg/link"
	"github.com/itohio/launchscope/pkg/scope"
)

const (
	PortOptionName     = "port"
	BaudRateOptionName = "baud-rate"
)

var errLinkClosed = errors.New("serial link closed")

func newServeCommand(opts *options) *cobra.Command {
	var port string
	var baudRate int
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Answer host commands on a serial port with simulated samples",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if port != "" {
				cfg.Serial.Port = port
			}
			if baudRate != 0 {
				cfg.Serial.BaudRate = baudRate
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
	cmd.Flags().StringVar(&port, PortOptionName, "", fmt.Sprintf("Serial port. E.g. %s", config.Default().Serial.Port))
	cmd.Flags().IntVar(&baudRate, BaudRateOptionName, 0, fmt.Sprintf("Baud rate. E.g. %d", link.DefaultBaudRate))
	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	conn := link.New(cfg.Serial.Port, cfg.Serial.BaudRate, 0)
	if err := conn.Open(); err != nil {
		return err
	}
	defer conn.Close()

	b, err := newBoard(cfg, conn)
	if err != nil {
		return err
	}

	log.Printf("Serving channels %v on %s at %d baud", cfg.Channels, cfg.Serial.Port, cfg.Serial.BaudRate)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.eng.Run(ctx)
	})
	g.Go(func() error {
		return forward(ctx, conn.Received(), b.eng)
	})

	err = g.Wait()
	log.Printf("Stopped serving %s", cfg.Serial.Port)
	return err
}

// forward hands received bytes to the engine until ctx ends or rx closes.
func forward(ctx context.Context, rx <-chan byte, eng *scope.Engine) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case b, ok := <-rx:
			if !ok {
				return errLinkClosed
			}
			eng.Receive(b)
		}
	}
}
