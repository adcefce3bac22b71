package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/randalmurphal/artifactname/pkg/mapping/registry"
	"github.com/spf13/cobra"
)

func newPatternsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "patterns",
		Short: "List the built-in pattern names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry.New()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, name := range reg.Names() {
				pattern, _ := reg.Get(name)
				fmt.Fprintf(w, "%s\t%s\n", name, pattern)
			}
			return w.Flush()
		},
	}
}
