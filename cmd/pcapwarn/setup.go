package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pcapkit/internal/config"
	"pcapkit/internal/emit"
	"pcapkit/internal/trace"
)

// loadConfig reads the filter file and environment, then applies the
// persistent flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Root().PersistentFlags()

	path, err := flags.GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return config.Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return config.Config{}, err
	}

	if flags.Changed("color") {
		if cfg.Color, err = flags.GetString("color"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("show-location") {
		if cfg.ShowLocation, err = flags.GetBool("show-location"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get show-location flag: %w", err)
		}
	}
	if flags.Changed("width") {
		if cfg.Width, err = flags.GetInt("width"); err != nil {
			return config.Config{}, fmt.Errorf("failed to get width flag: %w", err)
		}
	}
	return cfg, nil
}

// buildEmitter wires configuration, the command's stderr and the context
// tracer into an Emitter.
func buildEmitter(cmd *cobra.Command, cfg config.Config) (*emit.Emitter, error) {
	opts, err := cfg.EmitOptions(isTerminal(os.Stderr) && cmd.ErrOrStderr() == os.Stderr)
	if err != nil {
		if cfg.Path != "" {
			return nil, fmt.Errorf("%s: %w", cfg.Path, err)
		}
		return nil, err
	}
	opts.Sink = emit.WriterSink{W: cmd.ErrOrStderr()}
	opts.Tracer = trace.FromContext(cmd.Context())
	return emit.New(opts), nil
}
