package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pcapkit/internal/emit"
	"pcapkit/internal/warning"
)

type emitOptions struct {
	repeat   int
	filters  []string
	defAct   string
	location string
}

func newEmitCmd() *cobra.Command {
	var opts emitOptions
	cmd := &cobra.Command{
		Use:   "emit CATEGORY MESSAGE [ARG...]",
		Short: "Emit a warning through the configured filters",
		Long: `Emit renders MESSAGE with positional ARGs ({0}, {1}, ...) under CATEGORY
and passes it through the configured filter state. Use --repeat to check
deduplication and --trace to see every decision.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEmit(cmd, args, opts)
		},
	}
	cmd.Flags().IntVar(&opts.repeat, "repeat", 1, "emit the warning this many times from one call site")
	cmd.Flags().StringArrayVar(&opts.filters, "filter", nil, "extra rule action:Category[:nopropagate] (repeatable)")
	cmd.Flags().StringVar(&opts.defAct, "default", "", "override the default action")
	cmd.Flags().StringVar(&opts.location, "at", "", "attribute the warning to this logical location")
	return cmd
}

func runEmit(cmd *cobra.Command, args []string, opts emitOptions) error {
	cat, ok := warning.Lookup(args[0])
	if !ok {
		return fmt.Errorf("unknown category %q", args[0])
	}
	if opts.repeat < 0 {
		return fmt.Errorf("--repeat must not be negative")
	}

	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	e, err := buildEmitter(cmd, cfg)
	if err != nil {
		return err
	}

	if opts.defAct != "" {
		act, err := emit.ParseAction(opts.defAct)
		if err != nil {
			return err
		}
		e.SetDefaultAction(act)
	}
	for _, f := range opts.filters {
		r, err := emit.ParseRule(f)
		if err != nil {
			return err
		}
		e.AddRule(r)
	}

	msgArgs := make([]any, 0, len(args)-2)
	for _, a := range args[2:] {
		msgArgs = append(msgArgs, a)
	}

	p := e.For(cat)
	for range opts.repeat {
		if opts.location != "" {
			p.WarnAt(emit.At(opts.location), args[1], msgArgs...)
			continue
		}
		p.Warn(args[1], msgArgs...)
	}
	return nil
}
