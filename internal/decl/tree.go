package decl

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/types"
)

// System is the root of a raw declaration tree.
type System struct {
	Units []*Unit
}

// Unit is a top-level namespace.
type Unit struct {
	Name    string
	Data    []*Data
	Modules []*Module
	Range   hcl.Range
}

// Module groups Data declarations and Functions.
type Module struct {
	Name      string
	Data      []*Data
	Functions []*Function
	Range     hcl.Range
}

// Data is a user-defined structure.
type Data struct {
	Name   string
	Fields []Binding
	Range  hcl.Range
}

// Function is a named operation with ordered parameters and annotations.
type Function struct {
	Name        string
	Params      []Binding
	Returns     *Binding
	Annotations []Annotation
	Range       hcl.Range
}

// Binding pairs a bare identifier with its (possibly unsolved) Type.
type Binding struct {
	Name  string
	Type  types.Type
	Range hcl.Range
}

// Annotation is one step of a function's data flow: *Modify or *Spawn.
type Annotation interface {
	annotation()
	// SourceRange is the location of the annotation, if known.
	SourceRange() hcl.Range
}

// Modify overwrites an in-scope variable using other in-scope variables.
type Modify struct {
	Target Binding
	Uses   []Binding
	Range  hcl.Range
}

// Spawn introduces a new variable computed from ordered details.
type Spawn struct {
	Result  Binding
	Details []SpawnDetail
	Range   hcl.Range
}

func (*Modify) annotation() {}
func (*Spawn) annotation()  {}

func (m *Modify) SourceRange() hcl.Range { return m.Range }
func (s *Spawn) SourceRange() hcl.Range  { return s.Range }

// SpawnDetail is one sub-step of a Spawn: *Use, *LetTo, *Return or *Unknown.
type SpawnDetail interface {
	spawnDetail()
}

// Use references an existing variable as an input of the spawn.
type Use struct {
	Binding
}

// LetTo binds Name to the result of calling Func with Args.
type LetTo struct {
	Name  string
	Type  types.Type
	Func  string
	Args  []Binding
	Range hcl.Range
}

// Return names the variable whose value becomes the spawn result.
type Return struct {
	Binding
}

// Unknown is a detail kind the front end recognised syntactically but the
// resolver has no semantics for. It is carried through untouched.
type Unknown struct {
	Kind  string
	Range hcl.Range
}

func (*Use) spawnDetail()     {}
func (*LetTo) spawnDetail()   {}
func (*Return) spawnDetail()  {}
func (*Unknown) spawnDetail() {}
