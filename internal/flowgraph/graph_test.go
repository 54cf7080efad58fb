package flowgraph

import (
	"testing"

	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bind(n string) model.Binding {
	return model.Binding{Name: name.MustParse(n), Type: types.NewInt32()}
}

func TestGraph_AddEdge(t *testing.T) {
	a, b := name.MustParse("f.a"), name.MustParse("f.b")

	t.Run("missing nodes are rejected", func(t *testing.T) {
		g := New()
		g.AddNode(a)
		require.Error(t, g.AddEdge(a, b))
		require.Error(t, g.AddEdge(b, a))
	})

	t.Run("self-loops are allowed and duplicates collapse", func(t *testing.T) {
		g := New()
		g.AddNode(a)
		require.NoError(t, g.AddEdge(a, a))
		require.NoError(t, g.AddEdge(a, a))
		assert.Equal(t, []Edge{{From: "f.a", To: "f.a"}}, g.Edges)
	})

	t.Run("dependencies", func(t *testing.T) {
		g := New()
		g.AddNode(a)
		g.AddNode(b)
		require.NoError(t, g.AddEdge(a, b))

		deps, err := g.Dependencies(b)
		require.NoError(t, err)
		assert.Equal(t, []string{"f.a"}, deps)

		_, err = g.Dependencies(name.MustParse("f.c"))
		require.Error(t, err)
	})
}

func TestGraph_Clone(t *testing.T) {
	a, b := name.MustParse("f.a"), name.MustParse("f.b")
	g := New()
	g.AddNode(a)
	g.AddNode(b)
	require.NoError(t, g.AddEdge(a, b))

	c := g.Clone()
	c.AddNode(name.MustParse("f.c"))
	require.NoError(t, c.AddEdge(b, a))
	c.Nodes[0] = "f.z"

	assert.Equal(t, []string{"f.a", "f.b"}, g.Nodes)
	assert.Equal(t, []Edge{{From: "f.a", To: "f.b"}}, g.Edges)
	deps, err := g.Dependencies(a)
	require.NoError(t, err)
	assert.Empty(t, deps)
	assert.Len(t, c.Edges, 2)
}

func TestForFunction_ModifySelfLoop(t *testing.T) {
	p := bind("u.m.f.p")
	fn := &model.Function{
		Name:        name.MustParse("u.m.f"),
		Params:      []model.Binding{p},
		Annotations: []model.Annotation{&model.Modify{Target: p, Uses: []model.Binding{p}}},
	}

	g := ForFunction(fn)

	assert.Equal(t, []string{"u.m.f.p"}, g.Nodes)
	assert.Equal(t, []Edge{{From: "u.m.f.p", To: "u.m.f.p"}}, g.Edges)
}

func TestForFunction_SpawnDetails(t *testing.T) {
	fn := &model.Function{
		Name:   name.MustParse("u.m.f"),
		Params: []model.Binding{bind("u.m.f.a"), bind("u.m.f.b")},
		Annotations: []model.Annotation{
			&model.Spawn{
				Result: bind("u.m.f.r"),
				Details: []model.SpawnDetail{
					&model.Use{Binding: bind("u.m.f.a")},
					&model.LetTo{
						Name: name.MustParse("u.m.f.tmp"),
						Type: types.NewInt32(),
						Func: name.MustParse("u.m.add"),
						Args: []model.Binding{bind("u.m.f.a"), bind("u.m.f.b")},
					},
					&model.Unknown{Kind: "await"},
					&model.Return{Binding: bind("u.m.f.tmp")},
				},
			},
			&model.Modify{Target: bind("u.m.f.b"), Uses: []model.Binding{bind("u.m.f.r")}},
		},
	}

	g := ForFunction(fn)

	assert.Equal(t, []string{"u.m.f.a", "u.m.f.b", "u.m.f.r", "u.m.f.tmp"}, g.Nodes)
	assert.Equal(t, []Edge{
		{From: "u.m.f.a", To: "u.m.f.r"},
		{From: "u.m.f.a", To: "u.m.f.tmp"},
		{From: "u.m.f.b", To: "u.m.f.tmp"},
		{From: "u.m.f.tmp", To: "u.m.f.r"},
		{From: "u.m.f.r", To: "u.m.f.b"},
	}, g.Edges)
}

func TestForSystem_UnionOfFunctions(t *testing.T) {
	f := &model.Function{Name: name.MustParse("u.m.f"), Params: []model.Binding{bind("u.m.f.x")}}
	g := &model.Function{Name: name.MustParse("u.n.g"), Params: []model.Binding{bind("u.n.g.x")}}
	sys := &model.System{Units: []*model.Unit{{
		Name: name.MustParse("u"),
		Modules: []*model.Module{
			{Name: name.MustParse("u.m"), Functions: []*model.Function{f}},
			{Name: name.MustParse("u.n"), Functions: []*model.Function{g}},
		},
	}}}

	graph := ForSystem(sys)

	assert.Equal(t, []string{"u.m.f.x", "u.n.g.x"}, graph.Nodes)
	assert.Empty(t, graph.Edges)
}

func TestForFunction_DoesNotMutateModel(t *testing.T) {
	p := bind("u.m.f.p")
	fn := &model.Function{
		Name:        name.MustParse("u.m.f"),
		Params:      []model.Binding{p},
		Annotations: []model.Annotation{&model.Modify{Target: p, Uses: []model.Binding{p}}},
	}
	before := *fn

	_ = ForFunction(fn)

	assert.Equal(t, before, *fn)
}
