package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pcapkit/internal/warning"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check CATEGORY ANCESTOR",
		Short: "Report whether CATEGORY is ANCESTOR or one of its descendants",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cands := make([]warning.Category, 2)
			for i, name := range args {
				c, ok := warning.Lookup(name)
				if !ok {
					return fmt.Errorf("unknown category %q", name)
				}
				cands[i] = c
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is-a %s: %t\n", cands[0], cands[1], warning.IsDescendantOf(cands[0], cands[1]))
			return nil
		},
	}
}
