package graphstore

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/sysdc/internal/codec"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/flowgraph"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
)

// systemKey caches the whole-system graph. It cannot clash with a function
// name because canonical names are never empty.
const systemKey = ""

// Snapshot is one resolved model together with its derived views. All fields
// are read-only once the Snapshot is built.
type Snapshot struct {
	System  *model.System
	Encoded []byte

	graphs sync.Map // Key: canonical function name, Value: *flowgraph.Graph
}

// NewSnapshot encodes sys through the export gate. A model that fails the
// gate cannot become a Snapshot.
func NewSnapshot(sys *model.System) (*Snapshot, error) {
	data, err := codec.Encode(sys)
	if err != nil {
		return nil, err
	}
	return &Snapshot{System: sys, Encoded: data}, nil
}

// SystemGraph returns the flow graph of every function in the snapshot. The
// result is a private copy; the cached graph is never handed out.
func (s *Snapshot) SystemGraph() *flowgraph.Graph {
	if g, ok := s.graphs.Load(systemKey); ok {
		return g.(*flowgraph.Graph).Clone()
	}
	g, _ := s.graphs.LoadOrStore(systemKey, flowgraph.ForSystem(s.System))
	return g.(*flowgraph.Graph).Clone()
}

// FunctionGraph returns a private copy of the flow graph of the named function.
func (s *Snapshot) FunctionGraph(n name.Name) (*flowgraph.Graph, bool) {
	key := n.String()
	if key == systemKey {
		return nil, false
	}
	if g, ok := s.graphs.Load(key); ok {
		return g.(*flowgraph.Graph).Clone(), true
	}
	fn, ok := s.System.Function(n)
	if !ok {
		return nil, false
	}
	g, _ := s.graphs.LoadOrStore(key, flowgraph.ForFunction(fn))
	return g.(*flowgraph.Graph).Clone(), true
}

// Store publishes the current Snapshot.
type Store struct {
	current atomic.Pointer[Snapshot]
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Install makes snap the current Snapshot and returns the one it replaced.
func (s *Store) Install(ctx context.Context, snap *Snapshot) *Snapshot {
	prev := s.current.Swap(snap)
	ctxlog.FromContext(ctx).Debug("Installed system snapshot.", "units", len(snap.System.Units), "bytes", len(snap.Encoded), "replaced", prev != nil)
	return prev
}

// Current returns the current Snapshot, or nil before the first Install.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}
