package mapping

import (
	"regexp"
	"strconv"
)

// SnapshotQualifier is the version suffix of an unreleased artifact.
const SnapshotQualifier = "SNAPSHOT"

// timestampVersion matches a resolved snapshot version such as
// 1.0-20240101.120000-3.
var timestampVersion = regexp.MustCompile(`^(.*)-(\d{8}\.\d{6})-(\d+)$`)

// Artifact describes the artifact being named.
//
// Empty string fields are treated as unset: a pattern token naming one of
// them does not match this artifact and falls through to the handler and
// synthetic fields. Artifact is never modified by evaluation and may be
// shared between goroutines.
type Artifact struct {
	GroupID    string
	ArtifactID string

	// Version is the full version, including any snapshot timestamp.
	Version string

	// BaseVersion is Version with snapshot timestamps normalized to
	// SNAPSHOT. When empty it is derived from Version.
	BaseVersion string

	Classifier string
	Extension  string
	Scope      string
	Type       string
	Optional   bool

	// Handler supplies packaging defaults such as the extension.
	// May be nil.
	Handler *Handler
}

// artifactFields maps pattern field names to artifact accessors.
var artifactFields = map[string]func(*Artifact) string{
	"groupId":              func(a *Artifact) string { return a.GroupID },
	"artifactId":           func(a *Artifact) string { return a.ArtifactID },
	"version":              func(a *Artifact) string { return a.Version },
	"baseVersion":          (*Artifact).ResolvedBaseVersion,
	"classifier":           func(a *Artifact) string { return a.Classifier },
	"extension":            func(a *Artifact) string { return a.Extension },
	"scope":                func(a *Artifact) string { return a.Scope },
	"type":                 (*Artifact).ResolvedType,
	"optional":             func(a *Artifact) string { return strconv.FormatBool(a.Optional) },
	"id":                   (*Artifact).ID,
	"dependencyConflictId": (*Artifact).DependencyConflictID,
}

// ArtifactFieldNames returns the field names an Artifact answers to.
func ArtifactFieldNames() []string {
	return sortedKeys(artifactFields)
}

// Lookup implements Source over the artifact's own fields.
func (a *Artifact) Lookup(name string) (string, bool) {
	if a == nil {
		return "", false
	}
	get, ok := artifactFields[name]
	if !ok {
		return "", false
	}
	v := get(a)
	return v, v != ""
}

// ResolvedBaseVersion returns BaseVersion, or the normalized Version when
// BaseVersion is unset.
func (a *Artifact) ResolvedBaseVersion() string {
	if a.BaseVersion != "" {
		return a.BaseVersion
	}
	return NormalizeBaseVersion(a.Version)
}

// ResolvedType returns Type, falling back to the handler's type.
func (a *Artifact) ResolvedType() string {
	if a.Type == "" && a.Handler != nil {
		return a.Handler.Type
	}
	return a.Type
}

// DependencyConflictID returns groupId:artifactId:type[:classifier].
func (a *Artifact) DependencyConflictID() string {
	id := a.GroupID + ":" + a.ArtifactID + ":" + a.ResolvedType()
	if a.Classifier != "" {
		id += ":" + a.Classifier
	}
	return id
}

// ID returns groupId:artifactId:type[:classifier]:baseVersion.
func (a *Artifact) ID() string {
	return a.DependencyConflictID() + ":" + a.ResolvedBaseVersion()
}

// String returns the artifact ID.
func (a *Artifact) String() string {
	return a.ID()
}

// NormalizeBaseVersion replaces a snapshot timestamp qualifier with
// SNAPSHOT. Other versions are returned unchanged.
//
// Example:
//
//	NormalizeBaseVersion("1.0-20240101.120000-3") // "1.0-SNAPSHOT"
//	NormalizeBaseVersion("1.0")                   // "1.0"
func NormalizeBaseVersion(version string) string {
	m := timestampVersion.FindStringSubmatch(version)
	if m == nil {
		return version
	}
	return m[1] + "-" + SnapshotQualifier
}
