// Package flowgraph derives the data-flow graph of a resolved function or of a
// whole system.
//
// Nodes are the canonical names of variables: parameters, spawn results and
// the names introduced or consumed by spawn details. An edge a -> b records
// that b is produced or overwritten using a. A modify of p using p yields the
// self-loop p -> p, which is kept. The graph is a read-only projection of the
// model; building it never changes the model.
package flowgraph
