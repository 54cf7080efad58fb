package name

import (
	"fmt"
	"regexp"
	"strings"
)

// segmentRegex matches a single identifier segment.
var segmentRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidSegment reports whether s can be used as one segment of a Name.
func ValidSegment(s string) bool {
	return segmentRegex.MatchString(s)
}

// Parse creates a Name from its canonical dotted representation.
func Parse(raw string) (Name, error) {
	if raw == "" {
		return Name{}, fmt.Errorf("name cannot be empty")
	}
	for _, seg := range strings.Split(raw, separator) {
		if seg == "" {
			return Name{}, fmt.Errorf("name %q contains an empty segment", raw)
		}
		if !ValidSegment(seg) {
			return Name{}, fmt.Errorf("invalid name segment %q in %q", seg, raw)
		}
	}
	return Name{path: raw}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for tests
// and static tables.
func MustParse(raw string) Name {
	n, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return n
}
