// Package diag classifies the failures the resolver, the flow validator and
// the export codec can report. Every error names the declaration or reference
// it is about; callers inspect them with errors.As.
package diag

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
)

// at renders a source prefix when the range is known.
func at(r hcl.Range) string {
	if r.Filename == "" {
		return ""
	}
	return r.String() + ": "
}

// SourceFault is implemented by every error caused by the user's
// declarations rather than by the tool itself. Wrapping errors such as
// *FunctionError are looked through with errors.As.
type SourceFault interface {
	error
	SourceRange() hcl.Range
}

// IsSourceFault reports whether err, or an error it wraps, is a SourceFault.
func IsSourceFault(err error) bool {
	var fault SourceFault
	return errors.As(err, &fault)
}

// InvalidNameError reports a declared name that cannot be used as a single
// segment of a canonical Name, such as one containing a dot or a space.
type InvalidNameError struct {
	Scope   name.Name
	Segment string
	Range   hcl.Range
}

func (e *InvalidNameError) Error() string {
	if e.Scope.IsZero() {
		return fmt.Sprintf("%sinvalid name %q", at(e.Range), e.Segment)
	}
	return fmt.Sprintf("%sinvalid name %q in %q", at(e.Range), e.Segment, e.Scope)
}

func (e *InvalidNameError) SourceRange() hcl.Range { return e.Range }

// UnresolvedTypeError reports a hint that matched no primitive and no visible
// Data declaration, or a hint-less position with no binding site to infer from.
type UnresolvedTypeError struct {
	Name   name.Name
	Hint   string
	NoHint bool
	Range  hcl.Range
}

func (e *UnresolvedTypeError) Error() string {
	if e.NoHint {
		return fmt.Sprintf("%scannot infer type of %q: no hint and no binding site", at(e.Range), e.Name)
	}
	return fmt.Sprintf("%sunresolved type %q for %q", at(e.Range), e.Hint, e.Name)
}

func (e *UnresolvedTypeError) SourceRange() hcl.Range { return e.Range }

// DuplicateDeclarationError reports two declarations with the same qualified
// Name in one parent scope, including a spawn or let binding shadowing a local.
type DuplicateDeclarationError struct {
	Name  name.Name
	Range hcl.Range
}

func (e *DuplicateDeclarationError) Error() string {
	return fmt.Sprintf("%sduplicate declaration of %q", at(e.Range), e.Name)
}

func (e *DuplicateDeclarationError) SourceRange() hcl.Range { return e.Range }

// UndeclaredVariableError reports a reference to a variable that is not bound
// at that point of the function body.
type UndeclaredVariableError struct {
	Name  name.Name
	Range hcl.Range
}

func (e *UndeclaredVariableError) Error() string {
	return fmt.Sprintf("%sundeclared variable %q", at(e.Range), e.Name)
}

func (e *UndeclaredVariableError) SourceRange() hcl.Range { return e.Range }

// UndeclaredFunctionError reports a let_to callee that does not resolve.
type UndeclaredFunctionError struct {
	Ref   string
	From  name.Name
	Range hcl.Range
}

func (e *UndeclaredFunctionError) Error() string {
	return fmt.Sprintf("%sundeclared function %q referenced from %q", at(e.Range), e.Ref, e.From)
}

func (e *UndeclaredFunctionError) SourceRange() hcl.Range { return e.Range }

// ArityMismatchError reports a call whose argument count differs from the
// callee's parameter count.
type ArityMismatchError struct {
	Func  name.Name
	Want  int
	Got   int
	Range hcl.Range
}

func (e *ArityMismatchError) Error() string {
	return fmt.Sprintf("%sfunction %q takes %d argument(s), got %d", at(e.Range), e.Func, e.Want, e.Got)
}

func (e *ArityMismatchError) SourceRange() hcl.Range { return e.Range }

// TypeMismatchError reports a reference whose declared Type disagrees with
// the Type recorded at its binding site.
type TypeMismatchError struct {
	Name     name.Name
	Expected types.Type
	Found    types.Type
	Range    hcl.Range
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%stype mismatch for %q: expected %s, found %s", at(e.Range), e.Name, e.Expected, e.Found)
}

func (e *TypeMismatchError) SourceRange() hcl.Range { return e.Range }

// SerializationInvariantError reports an unsolved Type reaching the export
// boundary. It indicates a resolver defect rather than bad input.
type SerializationInvariantError struct {
	Path string
	Type types.Type
}

func (e *SerializationInvariantError) Error() string {
	return fmt.Sprintf("internal error: unsolved type %s at %s cannot be exported", e.Type, e.Path)
}

// InvariantError reports a placeholder type that survived compilation. Like
// SerializationInvariantError it indicates a resolver defect.
type InvariantError struct {
	Path    string
	Binding name.Name
	Type    types.Type
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("internal error: %s (%s) left unsolved as %s", e.Path, e.Binding, e.Type)
}

// FunctionError attributes a failure to a function and, when the failure
// happened inside the body, to the annotation index.
type FunctionError struct {
	Function   name.Name
	Annotation int // -1 for signature errors
	Err        error
}

func (e *FunctionError) Error() string {
	if e.Annotation < 0 {
		return fmt.Sprintf("function %q: %v", e.Function, e.Err)
	}
	return fmt.Sprintf("function %q, annotation #%d: %v", e.Function, e.Annotation, e.Err)
}

func (e *FunctionError) Unwrap() error {
	return e.Err
}
