/*
Package config loads mapping files.

# Overview

A mapping file lists the artifacts to name and the patterns to name them
with. It may be written in YAML or JSON:

	pattern: optional-classifier
	patterns:
	  short: "@{artifactId}@.@{extension}@"
	artifacts:
	  - groupId: org.apache.sample
	    artifactId: maven-test-lib
	    version: "1.0"
	    type: jar
	  - artifactId: docs
	    version: "1.0"
	    type: zip
	    pattern: short

The top-level pattern applies to every artifact without its own. Both may be
the name of a registered pattern or a literal pattern. Unknown keys are
rejected so that typos do not silently fall back to defaults.

# File Loading

	f, err := config.FromFile("mapping.yaml")
	if err != nil {
	    log.Fatal(err)
	}
	if err := f.Validate(); err != nil {
	    log.Fatal(err)
	}

	// Or load from bytes
	f, err = config.FromYAML(yamlBytes)
	f, err = config.FromJSON(jsonBytes)
*/
package config
