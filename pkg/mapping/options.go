package mapping

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithSources appends sources consulted after the artifact, handler and
// synthetic classifier fields. Earlier sources win over later ones.
//
// Example:
//
//	props := mapping.MapSource{"buildNumber": "42"}
//	ev := mapping.NewEvaluator(mapping.WithSources(props))
//	name, _ := ev.Evaluate("@{artifactId}@-b@{buildNumber}@.@{extension}@", a)
func WithSources(sources ...Source) Option {
	return func(e *Evaluator) {
		e.extra = append(e.extra, sources...)
	}
}
