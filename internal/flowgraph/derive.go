package flowgraph

import (
	"github.com/specialistvlad/sysdc/internal/model"
)

// ForFunction derives the flow graph of one function.
func ForFunction(fn *model.Function) *Graph {
	g := New()
	addFunction(g, fn)
	return g
}

// ForSystem derives the union of the flow graphs of every function. Canonical
// names never collide across functions, so the union is disjoint.
func ForSystem(sys *model.System) *Graph {
	g := New()
	for _, fn := range sys.Functions() {
		addFunction(g, fn)
	}
	return g
}

func addFunction(g *Graph, fn *model.Function) {
	for _, p := range fn.Params {
		g.AddNode(p.Name)
	}
	for _, a := range fn.Annotations {
		switch a := a.(type) {
		case *model.Modify:
			g.AddNode(a.Target.Name)
			for _, u := range a.Uses {
				g.link(u.Name, a.Target.Name)
			}
		case *model.Spawn:
			g.AddNode(a.Result.Name)
			for _, d := range a.Details {
				switch d := d.(type) {
				case *model.Use:
					g.link(d.Name, a.Result.Name)
				case *model.LetTo:
					g.AddNode(d.Name)
					for _, arg := range d.Args {
						g.link(arg.Name, d.Name)
					}
				case *model.Return:
					g.link(d.Name, a.Result.Name)
				case *model.Unknown:
					// No flow semantics.
				}
			}
		}
	}
}
