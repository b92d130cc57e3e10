package main

import (
	"github.com/spf13/cobra"
)

func newRootCommand() *cobra.Command {
	var opts cliOptions

	cmd := &cobra.Command{
		Use:   "facilitator [HOST] [PORT]",
		Short: "Register client addresses with HTTP POST and serve them out again with HTTP GET",
		Long: `Register client addresses with HTTP POST requests and serve them out again
with HTTP GET, oldest first and each one exactly once. Listen on HOST and PORT,
by default 0.0.0.0 9002. A single numeric argument is taken as the port.`,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.LogFileSet = cmd.Flags().Changed("log")
			config, err := LoadConfig(args, opts)
			if err != nil {
				return err
			}
			return run(cmd.Context(), config)
		},
	}

	cmd.Flags().BoolVarP(&opts.Debug, "debug", "d", false, "don't daemonize, log to stdout")
	cmd.Flags().StringVarP(&opts.LogFile, "log", "l", defaultLogFile, "write log to `FILENAME`")
	cmd.Flags().StringVar(&opts.ConfigPath, "config", "", "optional YAML configuration `PATH` (overrides "+envConfigPath+")")
	cmd.Flags().StringVar(&opts.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on `ADDR` (overrides "+envMetricsAddr+")")

	return cmd
}
