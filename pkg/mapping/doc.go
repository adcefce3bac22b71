/*
Package mapping computes artifact output file names from patterns.

# Overview

A pattern is literal text with tokens of the form @{name}@ or @{name?}@.
Each token is replaced with a field of the artifact being named:

	a := &mapping.Artifact{
	    GroupID:    "org.apache.sample",
	    ArtifactID: "maven-test-lib",
	    Version:    "1.0",
	    Extension:  "jar",
	}
	name, err := mapping.Evaluate("@{artifactId}@-@{version}@.@{extension}@", a)
	// name: "maven-test-lib-1.0.jar"

Two patterns are built in: DefaultFileNameMapping and
DefaultFileNameMappingClassifier.

# Field Lookup

Token names are looked up case-sensitively in an ordered list of sources,
first match wins:

 1. the artifact's own fields (groupId, artifactId, version, baseVersion,
    classifier, extension, scope, type, optional, id, dependencyConflictId)
 2. the artifact's Handler (extension, directory, classifier, packaging,
    language, addedToClasspath, includesDependencies)
 3. synthetic fields derived from the classifier (see DashClassifierFields)
 4. sources added with WithSources

Empty artifact and handler fields do not match, so the handler supplies
the extension when the artifact leaves it unset.

# Optional Classifier

The dashClassifier field is "-" + classifier, or empty without one. It
expresses name-version[-classifier].ext as a single pattern:

	mapping.Evaluate("@{artifactId}@-@{version}@@{dashClassifier?}@.@{extension}@", a)
	// "maven-test-lib-1.0.jar" or "maven-test-lib-1.0-sources.jar"

Naming classifier directly on an artifact without one yields the empty
string, so DefaultFileNameMappingClassifier produces "maven-test-lib-1.0-.jar".

# Missing Fields

A required token (@{name}@) with no match fails with an
*InterpolationError matching ErrUnresolvedToken. An optional token
(@{name?}@) with no match becomes the empty string. An opening marker
without a closing one fails with ErrMalformedPattern.

Evaluation is a single pass: substituted values are never rescanned.

# Thread Safety

Evaluator is safe for concurrent use after construction. Artifacts are only
read and may be shared.
*/
package mapping
