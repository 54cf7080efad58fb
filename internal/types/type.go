// Package types defines the tagged type model shared by the raw declaration
// tree and the resolved system model.
//
// A Type is a (Kind, Refs) pair. Refs is set only for user-defined Data types
// and names the canonical declaration of the structure. The two unsolved kinds
// are placeholders produced by the front end; they never survive a successful
// resolution and are refused by the export codec.
package types

import (
	"fmt"

	"github.com/specialistvlad/sysdc/internal/name"
)

// Kind tags the variant held by a Type.
type Kind int

const (
	// UnsolvedNoHint is a placeholder for a position without any lexical type
	// name. It is the zero Kind, so an omitted type decodes to it.
	UnsolvedNoHint Kind = iota
	// UnsolvedHinted is a placeholder carrying the lexical type name.
	UnsolvedHinted
	// Int32 is the built-in 32-bit integer.
	Int32
	// Data is a resolved reference to a declared structure.
	Data
)

// Kinds lists every Kind. Code that must handle each Kind explicitly (the
// export gate) is tested against this list.
func Kinds() []Kind {
	return []Kind{UnsolvedNoHint, UnsolvedHinted, Int32, Data}
}

func (k Kind) String() string {
	switch k {
	case UnsolvedNoHint:
		return "UnsolvedNoHint"
	case UnsolvedHinted:
		return "UnsolvedHinted"
	case Int32:
		return "i32"
	case Data:
		return "Data"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// primitives maps lexical primitive names to their kinds.
var primitives = map[string]Kind{
	"i32": Int32,
}

// Type is a value's type together with its resolution state.
type Type struct {
	Kind Kind
	// Hint is the lexical type name; meaningful only for UnsolvedHinted.
	Hint string
	// Refs is the canonical Name of the declaring structure; set only for Data.
	Refs name.Name
}

// FromHint builds a Type from a lexical type name. Primitive names resolve
// immediately; anything else stays unsolved until the scope resolver matches
// it against a Data declaration.
func FromHint(text string) Type {
	if k, ok := primitives[text]; ok {
		return Type{Kind: k}
	}
	return Type{Kind: UnsolvedHinted, Hint: text}
}

// NoHint returns the placeholder for a position with no lexical type name.
func NoHint() Type {
	return Type{Kind: UnsolvedNoHint}
}

// NewInt32 returns the primitive 32-bit integer type.
func NewInt32() Type {
	return Type{Kind: Int32}
}

// NewData returns a resolved user-defined type referring to decl.
func NewData(decl name.Name) Type {
	return Type{Kind: Data, Refs: decl}
}

// LookupPrimitive reports whether text names a primitive type.
func LookupPrimitive(text string) (Type, bool) {
	k, ok := primitives[text]
	if !ok {
		return Type{}, false
	}
	return Type{Kind: k}, true
}

// Solved reports whether the type is free of placeholders.
func (t Type) Solved() bool {
	return t.Kind == Int32 || t.Kind == Data
}

// HasRefs reports whether the type carries a back-reference.
func (t Type) HasRefs() bool {
	return !t.Refs.IsZero()
}

// Equal reports structural equality of kind, hint and back-reference.
func (t Type) Equal(other Type) bool {
	return t == other
}

func (t Type) String() string {
	switch t.Kind {
	case UnsolvedNoHint:
		return "<no hint>"
	case UnsolvedHinted:
		return "?" + t.Hint
	case Int32:
		return "i32"
	case Data:
		return "Data(" + t.Refs.String() + ")"
	}
	return t.Kind.String()
}
