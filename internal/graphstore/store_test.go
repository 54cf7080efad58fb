package graphstore

import (
	"context"
	"sync"
	"testing"

	"github.com/specialistvlad/sysdc/internal/diag"
	"github.com/specialistvlad/sysdc/internal/flowgraph"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func system(fnName string, ty types.Type) *model.System {
	fn := name.MustParse(fnName)
	p := model.Binding{Name: fn.Child("p"), Type: ty}
	return &model.System{Units: []*model.Unit{{
		Name: fn.Parent().Parent(),
		Modules: []*model.Module{{
			Name: fn.Parent(),
			Functions: []*model.Function{{
				Name:        fn,
				Params:      []model.Binding{p},
				Annotations: []model.Annotation{&model.Modify{Target: p, Uses: []model.Binding{p}}},
			}},
		}},
	}}}
}

func TestNewSnapshot_RefusesUnsolvedModel(t *testing.T) {
	_, err := NewSnapshot(system("u.m.f", types.FromHint("Point")))

	var gate *diag.SerializationInvariantError
	require.ErrorAs(t, err, &gate)
}

func TestSnapshot_FunctionGraph(t *testing.T) {
	snap, err := NewSnapshot(system("u.m.f", types.NewInt32()))
	require.NoError(t, err)
	assert.NotEmpty(t, snap.Encoded)

	g, ok := snap.FunctionGraph(name.MustParse("u.m.f"))
	require.True(t, ok)
	assert.Equal(t, []string{"u.m.f.p"}, g.Nodes)

	again, ok := snap.FunctionGraph(name.MustParse("u.m.f"))
	require.True(t, ok)
	assert.NotSame(t, g, again, "each reader gets its own copy")
	assert.Equal(t, g.Nodes, again.Nodes)
	assert.Equal(t, g.Edges, again.Edges)

	_, ok = snap.FunctionGraph(name.MustParse("u.m.missing"))
	assert.False(t, ok)
	_, ok = snap.FunctionGraph(name.Name{})
	assert.False(t, ok)
}

func TestSnapshot_ConcurrentReaders(t *testing.T) {
	snap, err := NewSnapshot(system("u.m.f", types.NewInt32()))
	require.NoError(t, err)

	var wg sync.WaitGroup
	seen := make(chan *flowgraph.Graph, 32)
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			seen <- snap.SystemGraph()
		}()
		go func() {
			defer wg.Done()
			g, _ := snap.FunctionGraph(name.MustParse("u.m.f"))
			seen <- g
		}()
	}
	wg.Wait()
	close(seen)

	for g := range seen {
		assert.Equal(t, []string{"u.m.f.p"}, g.Nodes)
		assert.Equal(t, []flowgraph.Edge{{From: "u.m.f.p", To: "u.m.f.p"}}, g.Edges)
	}
}

func TestSnapshot_ReadersCannotChangeCachedGraphs(t *testing.T) {
	// --- Arrange ---
	snap, err := NewSnapshot(system("u.m.f", types.NewInt32()))
	require.NoError(t, err)
	p := name.MustParse("u.m.f.p")
	intruder := name.MustParse("u.m.f.x")

	// --- Act ---
	for _, g := range []*flowgraph.Graph{snap.SystemGraph(), mustFunctionGraph(t, snap, "u.m.f")} {
		g.AddNode(intruder)
		require.NoError(t, g.AddEdge(intruder, p))
		g.Nodes[0] = "rewritten"
		g.Edges[0].From = "rewritten"
	}

	// --- Assert ---
	for _, g := range []*flowgraph.Graph{snap.SystemGraph(), mustFunctionGraph(t, snap, "u.m.f")} {
		assert.Equal(t, []string{"u.m.f.p"}, g.Nodes)
		assert.Equal(t, []flowgraph.Edge{{From: "u.m.f.p", To: "u.m.f.p"}}, g.Edges)
		assert.False(t, g.HasNode(intruder))
		deps, err := g.Dependencies(p)
		require.NoError(t, err)
		assert.Equal(t, []string{"u.m.f.p"}, deps)
	}
}

func mustFunctionGraph(t *testing.T, snap *Snapshot, fn string) *flowgraph.Graph {
	t.Helper()
	g, ok := snap.FunctionGraph(name.MustParse(fn))
	require.True(t, ok)
	return g
}

func TestStore_InstallKeepsReadersSnapshot(t *testing.T) {
	ctx := context.Background()
	store := New()
	assert.Nil(t, store.Current())

	first, err := NewSnapshot(system("u.m.f", types.NewInt32()))
	require.NoError(t, err)
	assert.Nil(t, store.Install(ctx, first))

	held := store.Current()

	second, err := NewSnapshot(system("v.m.g", types.NewInt32()))
	require.NoError(t, err)
	prev := store.Install(ctx, second)

	assert.Same(t, first, prev)
	assert.Same(t, second, store.Current())
	_, ok := held.FunctionGraph(name.MustParse("u.m.f"))
	assert.True(t, ok, "a reader keeps using the snapshot it loaded")
}
