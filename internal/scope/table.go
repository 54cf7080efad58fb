package scope

import (
	"strings"

	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
)

// FrameKind distinguishes the levels of the containment hierarchy.
type FrameKind int

const (
	SystemFrame FrameKind = iota
	UnitFrame
	ModuleFrame
	FunctionFrame
)

func (k FrameKind) String() string {
	switch k {
	case SystemFrame:
		return "system"
	case UnitFrame:
		return "unit"
	case ModuleFrame:
		return "module"
	case FunctionFrame:
		return "function"
	}
	return "unknown"
}

// FrameID indexes a frame in the table's arena.
type FrameID int

// NoFrame is the parent of the root frame.
const NoFrame FrameID = -1

type frame struct {
	kind     FrameKind
	name     name.Name
	parent   FrameID
	data     map[string]name.Name
	funcs    map[string]name.Name
	children map[string]FrameID
}

// Signature is the resolved interface of a function.
type Signature struct {
	Name    name.Name
	Frame   FrameID
	Params  []model.Binding
	Returns *model.Binding
}

// Table is the symbol table of one resolution run.
type Table struct {
	frames []frame
	sigs   map[name.Name]*Signature
}

// NewTable returns a table holding only the system root frame.
func NewTable() *Table {
	t := &Table{sigs: make(map[name.Name]*Signature)}
	t.frames = append(t.frames, newFrame(SystemFrame, name.Name{}, NoFrame))
	return t
}

func newFrame(kind FrameKind, n name.Name, parent FrameID) frame {
	return frame{
		kind:     kind,
		name:     n,
		parent:   parent,
		data:     make(map[string]name.Name),
		funcs:    make(map[string]name.Name),
		children: make(map[string]FrameID),
	}
}

// Root returns the system frame.
func (t *Table) Root() FrameID {
	return 0
}

// Name returns the canonical Name of the scope a frame represents.
func (t *Table) Name(id FrameID) name.Name {
	return t.frames[id].name
}

// Kind returns the level of a frame.
func (t *Table) Kind(id FrameID) FrameKind {
	return t.frames[id].kind
}

// Parent returns the enclosing frame, or NoFrame for the root.
func (t *Table) Parent(id FrameID) FrameID {
	return t.frames[id].parent
}

// Open creates a child scope called seg. It returns false if parent already
// has a child scope or a Data declaration of that name, since both would share
// one canonical Name.
func (t *Table) Open(parent FrameID, kind FrameKind, seg string) (FrameID, bool) {
	p := &t.frames[parent]
	if _, exists := p.children[seg]; exists {
		return NoFrame, false
	}
	if _, exists := p.data[seg]; exists {
		return NoFrame, false
	}
	id := FrameID(len(t.frames))
	childName := p.name.Child(seg)
	p.children[seg] = id
	if kind == FunctionFrame {
		p.funcs[seg] = childName
	}
	// p may be invalidated by the append below.
	t.frames = append(t.frames, newFrame(kind, childName, parent))
	return id, true
}

// DeclareData records a Data declaration in a frame. It returns false if the
// frame already declares Data or a child scope of that name.
func (t *Table) DeclareData(id FrameID, seg string) (name.Name, bool) {
	f := &t.frames[id]
	if _, exists := f.data[seg]; exists {
		return name.Name{}, false
	}
	if _, exists := f.children[seg]; exists {
		return name.Name{}, false
	}
	n := f.name.Child(seg)
	f.data[seg] = n
	return n, true
}

// LookupData resolves a bare Data name from a frame outward to the root.
// Sibling units and modules are never searched.
func (t *Table) LookupData(from FrameID, short string) (name.Name, bool) {
	for id := from; id != NoFrame; id = t.frames[id].parent {
		if n, ok := t.frames[id].data[short]; ok {
			return n, true
		}
	}
	return name.Name{}, false
}

// ResolveHint turns a hinted placeholder into a solved Type. Solved types are
// returned unchanged; UnsolvedNoHint cannot be resolved by name and reports
// false.
func (t *Table) ResolveHint(from FrameID, ty types.Type) (types.Type, bool) {
	switch ty.Kind {
	case types.Int32, types.Data:
		return ty, true
	case types.UnsolvedHinted:
		if prim, ok := types.LookupPrimitive(ty.Hint); ok {
			return prim, true
		}
		if n, ok := t.LookupData(from, ty.Hint); ok {
			return types.NewData(n), true
		}
	}
	return ty, false
}

// LookupFunction resolves a possibly dotted function reference. At each frame
// from the starting one outward, the reference is tried as a path of child
// scopes ending in a function name; the first frame where it resolves wins.
func (t *Table) LookupFunction(from FrameID, ref string) (*Signature, bool) {
	if ref == "" {
		return nil, false
	}
	segs := strings.Split(ref, ".")
	for id := from; id != NoFrame; id = t.frames[id].parent {
		if n, ok := t.descend(id, segs); ok {
			sig, found := t.sigs[n]
			return sig, found
		}
	}
	return nil, false
}

func (t *Table) descend(id FrameID, segs []string) (name.Name, bool) {
	for _, seg := range segs[:len(segs)-1] {
		child, ok := t.frames[id].children[seg]
		if !ok {
			return name.Name{}, false
		}
		id = child
	}
	n, ok := t.frames[id].funcs[segs[len(segs)-1]]
	return n, ok
}

// Signature returns the resolved signature of a function.
func (t *Table) Signature(n name.Name) (*Signature, bool) {
	sig, ok := t.sigs[n]
	return sig, ok
}

func (t *Table) setSignature(sig *Signature) {
	t.sigs[sig.Name] = sig
}
