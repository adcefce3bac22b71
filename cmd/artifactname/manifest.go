package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/randalmurphal/artifactname/pkg/mapping/manifest"
	"github.com/spf13/cobra"
)

func newManifestCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "manifest [RUN_ID]",
		Short: "Show recorded batch runs",
		Long:  "Without RUN_ID, list the runs recorded in the manifest. With RUN_ID, list that run's entries.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := manifest.NewSQLiteStore(dbPath)
			if err != nil {
				return err
			}
			defer store.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			if len(args) == 0 {
				runs, err := store.Runs()
				if err != nil {
					return err
				}
				for _, r := range runs {
					fmt.Fprintf(w, "%s\t%d\t%s\n", r.RunID, r.Entries, r.Started.Format(time.RFC3339))
				}
				return w.Flush()
			}

			entries, err := store.List(args[0])
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				return fmt.Errorf("run %s: %w", args[0], manifest.ErrNotFound)
			}
			for _, e := range entries {
				fmt.Fprintf(w, "%d\t%s\t%s\n", e.Sequence, e.ArtifactID, e.FileName)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "SQLite manifest database")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}
