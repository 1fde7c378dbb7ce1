package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/paa/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "paa: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var opts app.Options

	cmd := &cobra.Command{
		Use:   "paa",
		Short: "Personal Agentic Assistant: chat with a local model in the terminal",
		Long: `paa is a terminal chat front-end for a model served by Ollama.

The screen starts in Navigation mode. Press Esc or i to start typing, Enter to
send, and Esc again to go back. Press q in Navigation mode to quit.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.ConfigPath, "config", "", "config file path (default ~/.config/paa/config.toml)")
	flags.StringVar(&opts.Model, "model", "", "model name, overrides the config file")
	flags.StringVar(&opts.URL, "url", "", "Ollama server URL, overrides the config file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debug logging")
	return cmd
}
