package name

import "strings"

const separator = "."

// Name is a fully or partially qualified path of identifier segments.
type Name struct {
	path string
}

// New builds a Name from the given segments, outermost first.
func New(segments ...string) Name {
	return Name{path: strings.Join(segments, separator)}
}

// Child returns the Name of a declaration called seg inside the scope n.
func (n Name) Child(seg string) Name {
	if n.path == "" {
		return Name{path: seg}
	}
	return Name{path: n.path + separator + seg}
}

// Parent returns the enclosing scope. The parent of a single-segment Name is
// the root.
func (n Name) Parent() Name {
	i := strings.LastIndex(n.path, separator)
	if i < 0 {
		return Name{}
	}
	return Name{path: n.path[:i]}
}

// Local returns the last segment.
func (n Name) Local() string {
	i := strings.LastIndex(n.path, separator)
	if i < 0 {
		return n.path
	}
	return n.path[i+1:]
}

// Segments returns a fresh slice of the path segments.
func (n Name) Segments() []string {
	if n.path == "" {
		return nil
	}
	return strings.Split(n.path, separator)
}

// Depth is the number of segments; the root has depth 0.
func (n Name) Depth() int {
	if n.path == "" {
		return 0
	}
	return strings.Count(n.path, separator) + 1
}

// IsZero reports whether n is the root Name.
func (n Name) IsZero() bool {
	return n.path == ""
}

// Equal reports structural equality.
func (n Name) Equal(other Name) bool {
	return n.path == other.path
}

// Within reports whether n is declared inside scope, at any depth.
func (n Name) Within(scope Name) bool {
	if scope.path == "" {
		return n.path != ""
	}
	return strings.HasPrefix(n.path, scope.path+separator)
}

// String serializes the Name into its canonical dotted form.
func (n Name) String() string {
	return n.path
}
