package mapping

// Source resolves a field name to its value.
// The bool result is false when the source has no value for name.
type Source interface {
	Lookup(name string) (string, bool)
}

// SourceFunc adapts a function to the Source interface.
type SourceFunc func(name string) (string, bool)

// Lookup implements Source.
func (f SourceFunc) Lookup(name string) (string, bool) {
	return f(name)
}

// MapSource is a Source backed by a fixed name -> value table.
type MapSource map[string]string

// Lookup implements Source.
func (m MapSource) Lookup(name string) (string, bool) {
	v, ok := m[name]
	return v, ok
}

// DashClassifierFields returns the synthetic fields derived from a classifier.
//
// With a classifier, dashClassifier and dashClassifier? are "-" + classifier.
// Without one (the empty string), both are empty and classifier itself is
// forced to the empty string so patterns naming it still resolve.
func DashClassifierFields(classifier string) map[string]string {
	if classifier != "" {
		return map[string]string{
			"dashClassifier":  "-" + classifier,
			"dashClassifier?": "-" + classifier,
		}
	}
	return map[string]string{
		"dashClassifier":  "",
		"dashClassifier?": "",
		"classifier":      "",
	}
}
