package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/itohio/launchscope/pkg/config"
)

const (
	ConfigOptionName = "config"
	DefaultConfig    = "scopesim.yaml"
)

type options struct {
	configPath string
	cfg        *config.Config
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "scopesim",
		Short:        "Emulate the two-channel scope board",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(cmd.ErrOrStderr())
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			opts.cfg = cfg
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, ConfigOptionName, DefaultConfig, "Path to the YAML configuration")

	cmd.AddCommand(newServeCommand(opts))
	cmd.AddCommand(newPortsCommand())
	cmd.AddCommand(newSelfTestCommand(opts))
	return cmd
}
