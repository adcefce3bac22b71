package mapping

import (
	"slices"
	"strconv"
)

// Handler describes how an artifact type is packaged. Its fields are
// consulted after the artifact's own fields, so it supplies defaults
// such as the file extension for a type.
//
// Unset string fields fall back the way Maven's default handler does:
// Extension and Packaging fall back to Type, Directory to Packaging + "s",
// and Language to "none".
type Handler struct {
	Type                 string
	Extension            string
	Directory            string
	Classifier           string
	Packaging            string
	Language             string
	AddedToClasspath     bool
	IncludesDependencies bool
}

// handlerFields maps pattern field names to handler accessors.
var handlerFields = map[string]func(*Handler) string{
	"extension":            (*Handler).ResolvedExtension,
	"directory":            (*Handler).ResolvedDirectory,
	"classifier":           func(h *Handler) string { return h.Classifier },
	"packaging":            (*Handler).ResolvedPackaging,
	"language":             (*Handler).ResolvedLanguage,
	"addedToClasspath":     func(h *Handler) string { return strconv.FormatBool(h.AddedToClasspath) },
	"includesDependencies": func(h *Handler) string { return strconv.FormatBool(h.IncludesDependencies) },
}

// HandlerFieldNames returns the field names a Handler answers to.
func HandlerFieldNames() []string {
	return sortedKeys(handlerFields)
}

// NewHandler returns a handler for typ with every other field defaulted.
func NewHandler(typ string) *Handler {
	return &Handler{Type: typ}
}

// stockHandlers are the packaging handlers Maven ships for its core types.
var stockHandlers = map[string]Handler{
	"pom":          {Type: "pom"},
	"jar":          {Type: "jar", Language: "java", AddedToClasspath: true},
	"ejb":          {Type: "ejb", Extension: "jar", Language: "java", AddedToClasspath: true},
	"ejb-client":   {Type: "ejb-client", Extension: "jar", Classifier: "client", Packaging: "ejb", Language: "java", AddedToClasspath: true},
	"test-jar":     {Type: "test-jar", Extension: "jar", Classifier: "tests", Packaging: "jar", Language: "java", AddedToClasspath: true},
	"maven-plugin": {Type: "maven-plugin", Extension: "jar", Language: "java", AddedToClasspath: true},
	"java-source":  {Type: "java-source", Extension: "jar", Classifier: "sources", Language: "java"},
	"javadoc":      {Type: "javadoc", Extension: "jar", Classifier: "javadoc", Language: "java", AddedToClasspath: true},
	"war":          {Type: "war", Language: "java", IncludesDependencies: true},
	"ear":          {Type: "ear", Language: "java", IncludesDependencies: true},
	"rar":          {Type: "rar", Language: "java", IncludesDependencies: true},
}

// HandlerFor returns the stock handler for a known artifact type, or a
// plain handler whose extension is the type itself.
func HandlerFor(typ string) *Handler {
	if h, ok := stockHandlers[typ]; ok {
		return &h
	}
	return NewHandler(typ)
}

// Lookup implements Source over the handler's fields.
func (h *Handler) Lookup(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	get, ok := handlerFields[name]
	if !ok {
		return "", false
	}
	v := get(h)
	return v, v != ""
}

// ResolvedExtension returns Extension, falling back to Type.
func (h *Handler) ResolvedExtension() string {
	if h.Extension != "" {
		return h.Extension
	}
	return h.Type
}

// ResolvedPackaging returns Packaging, falling back to Type.
func (h *Handler) ResolvedPackaging() string {
	if h.Packaging != "" {
		return h.Packaging
	}
	return h.Type
}

// ResolvedDirectory returns Directory, falling back to the packaging
// followed by "s".
func (h *Handler) ResolvedDirectory() string {
	if h.Directory != "" {
		return h.Directory
	}
	if p := h.ResolvedPackaging(); p != "" {
		return p + "s"
	}
	return ""
}

// ResolvedLanguage returns Language, falling back to "none".
func (h *Handler) ResolvedLanguage() string {
	if h.Language != "" {
		return h.Language
	}
	return "none"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
