package main

import (
	"fmt"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check PATTERN",
		Short: "Validate a pattern and list its tokens",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := mapping.Tokens(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, tok := range tokens {
				kind := "required"
				if tok.Optional {
					kind = "optional"
				}
				fmt.Fprintf(out, "%d\t%s\t%s\n", tok.Start, tok.Name, kind)
			}
			fmt.Fprintf(out, "ok: %d tokens\n", len(tokens))
			return nil
		},
	}
}
