package config

import (
	"errors"
	"fmt"

	"github.com/randalmurphal/artifactname/pkg/mapping"
	"github.com/randalmurphal/artifactname/pkg/mapping/registry"
)

// DefaultType is the artifact type assumed when a spec leaves it unset.
const DefaultType = "jar"

// ErrMissingField indicates an artifact spec lacks a required field.
var ErrMissingField = errors.New("missing required field")

// File is the content of a mapping file.
type File struct {
	// Pattern is the pattern name or literal used for artifacts without
	// their own. Defaults to registry.Default.
	Pattern string `yaml:"pattern" json:"pattern"`

	// Patterns are extra named patterns, registered before mapping.
	Patterns map[string]string `yaml:"patterns" json:"patterns"`

	Artifacts []ArtifactSpec `yaml:"artifacts" json:"artifacts"`
}

// ArtifactSpec describes one artifact in a mapping file.
type ArtifactSpec struct {
	GroupID     string `yaml:"groupId" json:"groupId"`
	ArtifactID  string `yaml:"artifactId" json:"artifactId"`
	Version     string `yaml:"version" json:"version"`
	BaseVersion string `yaml:"baseVersion" json:"baseVersion"`
	Classifier  string `yaml:"classifier" json:"classifier"`
	Extension   string `yaml:"extension" json:"extension"`
	Scope       string `yaml:"scope" json:"scope"`
	Type        string `yaml:"type" json:"type"`
	Optional    bool   `yaml:"optional" json:"optional"`

	// Pattern overrides File.Pattern for this artifact.
	Pattern string `yaml:"pattern" json:"pattern"`
}

// DefaultPattern returns the file-wide pattern reference.
func (f *File) DefaultPattern() string {
	if f.Pattern != "" {
		return f.Pattern
	}
	return registry.Default
}

// PatternFor returns the pattern reference for the artifact at index i.
func (f *File) PatternFor(i int) string {
	if p := f.Artifacts[i].Pattern; p != "" {
		return p
	}
	return f.DefaultPattern()
}

// Validate checks every literal pattern and artifact in the file and
// returns all problems found, joined.
func (f *File) Validate() error {
	var errs []error

	if registry.IsLiteral(f.Pattern) {
		if err := mapping.Validate(f.Pattern); err != nil {
			errs = append(errs, fmt.Errorf("pattern: %w", err))
		}
	}
	for name, p := range f.Patterns {
		if err := mapping.Validate(p); err != nil {
			errs = append(errs, fmt.Errorf("patterns.%s: %w", name, err))
		}
	}
	for i, a := range f.Artifacts {
		if a.ArtifactID == "" {
			errs = append(errs, fmt.Errorf("artifacts[%d]: %w: artifactId", i, ErrMissingField))
		}
		if a.Version == "" {
			errs = append(errs, fmt.Errorf("artifacts[%d]: %w: version", i, ErrMissingField))
		}
		if registry.IsLiteral(a.Pattern) {
			if err := mapping.Validate(a.Pattern); err != nil {
				errs = append(errs, fmt.Errorf("artifacts[%d].pattern: %w", i, err))
			}
		}
	}

	return errors.Join(errs...)
}

// Artifact converts s to an artifact with the stock handler for
// its type.
func (s ArtifactSpec) Artifact() *mapping.Artifact {
	typ := s.Type
	if typ == "" {
		typ = DefaultType
	}
	return &mapping.Artifact{
		GroupID:     s.GroupID,
		ArtifactID:  s.ArtifactID,
		Version:     s.Version,
		BaseVersion: s.BaseVersion,
		Classifier:  s.Classifier,
		Extension:   s.Extension,
		Scope:       s.Scope,
		Type:        typ,
		Optional:    s.Optional,
		Handler:     mapping.HandlerFor(typ),
	}
}
