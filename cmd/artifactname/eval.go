package main

import (
	"fmt"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/randalmurphal/artifactname/pkg/mapping/config"
	"github.com/randalmurphal/artifactname/pkg/mapping/registry"
	"github.com/spf13/cobra"
)

func newEvalCmd(a *app) *cobra.Command {
	var spec config.ArtifactSpec

	cmd := &cobra.Command{
		Use:   "eval PATTERN",
		Short: "Print the file name of one artifact",
		Long: "Evaluate PATTERN against the artifact described by the flags. PATTERN is either a " +
			"pattern such as @{artifactId}@.@{extension}@ or a built-in pattern name.",
		Example: "  artifactname eval default --artifact-id core --version 1.0\n" +
			"  artifactname eval '@{artifactId}@@{dashClassifier?}@.@{extension}@' --artifact-id core --classifier sources",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern, err := registry.New().Resolve(args[0])
			if err != nil {
				return err
			}

			artifact := spec.Artifact()
			name, err := mapping.Evaluate(pattern, artifact)
			if err != nil {
				return err
			}

			a.logger.Debug("artifact mapped",
				"artifact_id", artifact.ID(),
				"pattern", pattern,
				"file_name", name,
			)
			fmt.Fprintln(cmd.OutOrStdout(), name)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&spec.GroupID, "group-id", "", "artifact group ID")
	f.StringVar(&spec.ArtifactID, "artifact-id", "", "artifact ID")
	f.StringVar(&spec.Version, "version", "", "artifact version")
	f.StringVar(&spec.BaseVersion, "base-version", "", "base version (default: derived from --version)")
	f.StringVar(&spec.Classifier, "classifier", "", "artifact classifier")
	f.StringVar(&spec.Type, "type", config.DefaultType, "artifact type, selects the packaging handler")
	f.StringVar(&spec.Extension, "extension", "", "file extension (default: from the type's handler)")
	f.StringVar(&spec.Scope, "scope", "", "dependency scope")
	f.BoolVar(&spec.Optional, "optional", false, "mark the dependency optional")

	return cmd
}
