package flow

import (
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
)

type entry struct {
	name name.Name
	ty   types.Type
	next *entry
}

// Local is an immutable snapshot of the variables bound inside a function.
// The zero Local is empty.
type Local struct {
	head *entry
	size int
}

// Bind returns a new scope extending l with n. The receiver is unchanged.
func (l Local) Bind(n name.Name, ty types.Type) Local {
	return Local{head: &entry{name: n, ty: ty, next: l.head}, size: l.size + 1}
}

// Lookup returns the type bound to n.
func (l Local) Lookup(n name.Name) (types.Type, bool) {
	for e := l.head; e != nil; e = e.next {
		if e.name == n {
			return e.ty, true
		}
	}
	return types.Type{}, false
}

// Len is the number of bindings.
func (l Local) Len() int {
	return l.size
}

// Names lists the bound names in binding order.
func (l Local) Names() []name.Name {
	out := make([]name.Name, l.size)
	i := l.size - 1
	for e := l.head; e != nil; e = e.next {
		out[i] = e.name
		i--
	}
	return out
}
