// Package registry holds named file name patterns.
//
// A registry starts with the built-in patterns and accepts user patterns,
// validating each one before it is stored. Callers refer to a pattern either
// by name or by writing the pattern itself; Resolve accepts both.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/randalmurphal/artifactname/pkg/mapping"
)

// Names of the built-in patterns.
const (
	Default            = "default"
	DefaultClassifier  = "default-classifier"
	OptionalClassifier = "optional-classifier"
)

// OptionalClassifierMapping names an artifact with its classifier when it
// has one and without a stray separator when it does not.
const OptionalClassifierMapping = "@{artifactId}@-@{baseVersion}@@{dashClassifier?}@.@{extension}@"

// Sentinel errors for registry operations.
var (
	// ErrUnknownPattern indicates no pattern is registered under a name.
	ErrUnknownPattern = errors.New("unknown pattern")

	// ErrInvalidName indicates a pattern name that could be mistaken for a pattern.
	ErrInvalidName = errors.New("invalid pattern name")
)

// Registry is a thread-safe set of named patterns.
// It uses sync.RWMutex since lookups far outnumber registrations.
type Registry struct {
	mu       sync.RWMutex
	patterns map[string]string
}

// New creates a registry preloaded with the built-in patterns.
func New() *Registry {
	return &Registry{
		patterns: map[string]string{
			Default:            mapping.DefaultFileNameMapping,
			DefaultClassifier:  mapping.DefaultFileNameMappingClassifier,
			OptionalClassifier: OptionalClassifierMapping,
		},
	}
}

// Register adds or replaces a named pattern. The pattern must be well formed.
func (r *Registry) Register(name, pattern string) error {
	if name == "" || strings.Contains(name, "@{") {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if err := mapping.Validate(pattern); err != nil {
		return fmt.Errorf("register pattern %s: %w", name, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.patterns[name] = pattern
	return nil
}

// RegisterAll registers every entry of patterns. It stops at the first
// invalid entry; entries registered before it are kept.
func (r *Registry) RegisterAll(patterns map[string]string) error {
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := r.Register(name, patterns[name]); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the pattern registered under name and whether it exists.
func (r *Registry) Get(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.patterns[name]
	return p, ok
}

// Has returns true if a pattern is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.patterns))
	for name := range r.patterns {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve turns a reference into a pattern. A reference containing a token
// marker is a literal pattern and is validated; anything else is looked up
// by name.
func (r *Registry) Resolve(ref string) (string, error) {
	if IsLiteral(ref) {
		if err := mapping.Validate(ref); err != nil {
			return "", err
		}
		return ref, nil
	}
	p, ok := r.Get(ref)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPattern, ref)
	}
	return p, nil
}

// IsLiteral reports whether ref is written as a pattern rather than a name.
func IsLiteral(ref string) bool {
	return strings.Contains(ref, "@{")
}
