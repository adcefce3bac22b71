package main

import (
	"fmt"

	"github.com/randalmurphal/artifactname/pkg/mapping/batch"
	"github.com/randalmurphal/artifactname/pkg/mapping/config"
	"github.com/randalmurphal/artifactname/pkg/mapping/manifest"
	"github.com/randalmurphal/artifactname/pkg/mapping/observability"
	"github.com/randalmurphal/artifactname/pkg/mapping/registry"
	"github.com/spf13/cobra"
)

type batchOptions struct {
	configPath      string
	manifestPath    string
	runID           string
	failOnCollision bool
}

func newBatchCmd(a *app) *cobra.Command {
	opts := &batchOptions{}

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Map every artifact of a mapping file",
		Long: "Read a YAML or JSON mapping file and print one 'id -> file name' line per artifact. " +
			"With --manifest the results are recorded in a SQLite database.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBatch(cmd, a, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.configPath, "config", "c", "", "mapping file (.yaml, .yml or .json)")
	f.StringVar(&opts.manifestPath, "manifest", "", "SQLite manifest database to record the run in")
	f.StringVar(&opts.runID, "run-id", "", "run ID (default: a new UUID)")
	f.BoolVar(&opts.failOnCollision, "fail-on-collision", false, "fail when two artifacts map to the same file name")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

func runBatch(cmd *cobra.Command, a *app, opts *batchOptions) error {
	file, err := config.FromFile(opts.configPath)
	if err != nil {
		return err
	}
	if err := file.Validate(); err != nil {
		return fmt.Errorf("invalid mapping file %s: %w", opts.configPath, err)
	}

	reg := registry.New()
	if err := reg.RegisterAll(file.Patterns); err != nil {
		return err
	}

	items := make([]batch.Item, len(file.Artifacts))
	for i, spec := range file.Artifacts {
		items[i] = batch.Item{Artifact: spec.Artifact(), Pattern: file.PatternFor(i)}
	}

	mapperOpts := []batch.Option{
		batch.WithRegistry(reg),
		batch.WithLogger(a.logger),
		batch.WithMetrics(observability.NewMetricsRecorder()),
		batch.WithSpans(observability.NewSpanManager()),
		batch.WithRunID(opts.runID),
		batch.WithFailOnCollision(opts.failOnCollision),
	}
	if opts.manifestPath != "" {
		store, err := manifest.NewSQLiteStore(opts.manifestPath)
		if err != nil {
			return err
		}
		defer store.Close()
		mapperOpts = append(mapperOpts, batch.WithStore(store))
	}

	result, err := batch.New(mapperOpts...).Map(cmd.Context(), items)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, m := range result.Mapped {
		fmt.Fprintf(out, "%s -> %s\n", m.ArtifactID, m.FileName)
	}
	if opts.manifestPath != "" {
		fmt.Fprintf(out, "run: %s\n", result.RunID)
	}
	return nil
}
