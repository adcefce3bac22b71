package mapping

import (
	"regexp"
	"strings"
)

// Token markers. A token is openMarker + name + optional "?" + closeMarker.
const (
	openMarker     = "@{"
	closeMarker    = "}@"
	optionalSuffix = "?"
)

// tokenPattern matches @{body}@ with the body ending at the first }@.
var tokenPattern = regexp.MustCompile(`(?s)@\{(.*?)\}@`)

// Token is a single placeholder found in a pattern.
type Token struct {
	// Name is the field name with any optional marker stripped.
	Name string

	// Optional is true for @{name?}@ tokens.
	Optional bool

	// Start and End are byte offsets of the whole token in the pattern,
	// End exclusive.
	Start int
	End   int
}

// String returns the token as written in a pattern.
func (t Token) String() string {
	if t.Optional {
		return openMarker + t.Name + optionalSuffix + closeMarker
	}
	return openMarker + t.Name + closeMarker
}

// Tokens scans pattern left to right and returns its tokens in order.
//
// Returns an *InterpolationError of kind MalformedPattern when an opening
// marker is never closed, when markers overlap, or when a token has no name.
func Tokens(pattern string) ([]Token, error) {
	locs := tokenPattern.FindAllStringSubmatchIndex(pattern, -1)

	tokens := make([]Token, 0, len(locs))
	prev := 0
	for _, loc := range locs {
		if i := strings.Index(pattern[prev:loc[0]], openMarker); i >= 0 {
			return nil, malformed(pattern, prev+i, "unterminated token marker")
		}

		body := pattern[loc[2]:loc[3]]
		if i := strings.Index(body, openMarker); i >= 0 {
			return nil, malformed(pattern, loc[0], "overlapping token markers")
		}

		tok := Token{Start: loc[0], End: loc[1]}
		tok.Name, tok.Optional = strings.CutSuffix(body, optionalSuffix)
		if tok.Name == "" {
			return nil, malformed(pattern, loc[0], "empty token name")
		}
		if strings.ContainsAny(tok.Name, "{}") {
			return nil, malformed(pattern, loc[0], "brace in token name")
		}

		tokens = append(tokens, tok)
		prev = loc[1]
	}

	if i := strings.Index(pattern[prev:], openMarker); i >= 0 {
		return nil, malformed(pattern, prev+i, "unterminated token marker")
	}
	return tokens, nil
}

// Validate checks that pattern is well formed without resolving any token.
func Validate(pattern string) error {
	_, err := Tokens(pattern)
	return err
}

// Interpolate substitutes every token in pattern with the first value found
// in sources, consulted in order.
//
// Optional tokens with no match become the empty string. A required token
// with no match fails the whole call with an UnresolvedToken error.
// Substituted values are copied verbatim and never rescanned.
func Interpolate(pattern string, sources ...Source) (string, error) {
	tokens, err := Tokens(pattern)
	if err != nil {
		return "", err
	}
	if len(tokens) == 0 {
		return pattern, nil
	}

	var b strings.Builder
	b.Grow(len(pattern))

	prev := 0
	for _, tok := range tokens {
		b.WriteString(pattern[prev:tok.Start])

		val, ok := lookup(tok.Name, sources)
		if !ok && !tok.Optional {
			return "", &InterpolationError{
				Kind:    UnresolvedToken,
				Name:    tok.Name,
				Pattern: pattern,
				Offset:  tok.Start,
			}
		}
		b.WriteString(val)
		prev = tok.End
	}
	b.WriteString(pattern[prev:])

	return b.String(), nil
}

// lookup returns the first match for name across sources.
func lookup(name string, sources []Source) (string, bool) {
	for _, src := range sources {
		if src == nil {
			continue
		}
		if val, ok := src.Lookup(name); ok {
			return val, true
		}
	}
	return "", false
}
