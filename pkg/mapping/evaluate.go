package mapping

import "fmt"

// Built-in file name patterns.
const (
	// DefaultFileNameMapping names an artifact artifactId-baseVersion.extension.
	DefaultFileNameMapping = "@{artifactId}@-@{baseVersion}@.@{extension}@"

	// DefaultFileNameMappingClassifier also includes the classifier. Without
	// a classifier this yields a doubled separator, e.g. lib-1.0-.jar.
	DefaultFileNameMappingClassifier = "@{artifactId}@-@{baseVersion}@-@{classifier}@.@{extension}@"
)

// Evaluator evaluates file name patterns against artifacts.
//
// Create with NewEvaluator() and configure with Option functions.
// Evaluator is safe for concurrent use after construction.
type Evaluator struct {
	extra []Source
}

// NewEvaluator creates a new Evaluator with the given options.
func NewEvaluator(opts ...Option) *Evaluator {
	e := &Evaluator{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sources returns the lookup sources for a, highest precedence first:
// the artifact's fields, its handler's fields, the synthetic classifier
// fields, then any sources configured with WithSources.
func (e *Evaluator) Sources(a *Artifact) []Source {
	var (
		handler    *Handler
		classifier string
	)
	if a != nil {
		handler = a.Handler
		classifier = a.Classifier
	}

	sources := make([]Source, 0, 3+len(e.extra))
	sources = append(sources, a, handler, MapSource(DashClassifierFields(classifier)))
	return append(sources, e.extra...)
}

// Evaluate substitutes the tokens of pattern with fields of a.
//
// Returns an *InterpolationError when a required token cannot be resolved
// or the pattern is malformed.
//
// Example:
//
//	a := &mapping.Artifact{ArtifactID: "lib", Version: "1.0", Extension: "jar"}
//	name, err := mapping.NewEvaluator().Evaluate("@{artifactId}@-@{version}@.@{extension}@", a)
//	// name: "lib-1.0.jar"
func (e *Evaluator) Evaluate(pattern string, a *Artifact) (string, error) {
	return Interpolate(pattern, e.Sources(a)...)
}

// MustEvaluate evaluates pattern and panics on error.
//
// Use this for patterns known to be valid for the artifact, such as
// DefaultFileNameMapping with a fully populated artifact.
func (e *Evaluator) MustEvaluate(pattern string, a *Artifact) string {
	result, err := e.Evaluate(pattern, a)
	if err != nil {
		panic(fmt.Sprintf("mapping: %v", err))
	}
	return result
}

// defaultEvaluator is the package-level evaluator with no extra sources.
var defaultEvaluator = NewEvaluator()

// Evaluate evaluates pattern for a using the default evaluator.
func Evaluate(pattern string, a *Artifact) (string, error) {
	return defaultEvaluator.Evaluate(pattern, a)
}
