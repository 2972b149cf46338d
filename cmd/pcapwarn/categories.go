package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"pcapkit/internal/warning"
)

type categoryJSON struct {
	Name        string `json:"name"`
	Parent      string `json:"parent,omitempty"`
	Depth       int    `json:"depth"`
	Description string `json:"description"`
}

func newCategoriesCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "categories [CATEGORY]",
		Short: "Print the warning taxonomy",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := warning.Base
			if len(args) == 1 {
				c, ok := warning.Lookup(args[0])
				if !ok {
					return fmt.Errorf("unknown category %q", args[0])
				}
				root = c
			}
			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "tree":
				fmt.Fprintln(out, root.Name())
				renderTree(out, root, "")
				return nil
			case "list":
				for _, c := range subtree(root) {
					fmt.Fprintf(out, "%-22s %s\n", c.Name(), c.Description())
				}
				return nil
			case "json":
				return renderCategoriesJSON(out, subtree(root))
			}
			return fmt.Errorf("unsupported format %q (must be tree, list or json)", format)
		},
	}
	cmd.Flags().StringVar(&format, "format", "tree", "output format (tree|list|json)")
	return cmd
}

func subtree(root warning.Category) []warning.Category {
	return append([]warning.Category{root}, root.Descendants()...)
}

func renderTree(out io.Writer, c warning.Category, prefix string) {
	children := c.Children()
	for i, child := range children {
		branch, next := "├─ ", "│   "
		if i == len(children)-1 {
			branch, next = "└─ ", "    "
		}
		fmt.Fprintf(out, "%s%s%s\n", prefix, branch, child.Name())
		renderTree(out, child, prefix+next)
	}
}

func renderCategoriesJSON(out io.Writer, cats []warning.Category) error {
	payload := make([]categoryJSON, 0, len(cats))
	for _, c := range cats {
		item := categoryJSON{Name: c.Name(), Depth: c.Depth(), Description: c.Description()}
		if p, ok := c.Parent(); ok {
			item.Parent = p.Name()
		}
		payload = append(payload, item)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(payload)
}
