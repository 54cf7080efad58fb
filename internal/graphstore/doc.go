// Package graphstore holds resolved system snapshots for concurrent readers.
//
// # Purpose
//
// A Snapshot bundles one immutable resolved model with its gated MessagePack
// encoding and lazily derived flow graphs. The Store publishes the current
// Snapshot through an atomic pointer: installing a new one never disturbs
// readers that already hold the previous one.
//
// # Concurrency Model
//
// Flow graphs are cached per function in a sync.Map. Keys are canonical
// function names and are known up front; values are written once and then
// only read, which is the access pattern sync.Map is optimized for. Two
// readers racing on a cold key may both derive the graph; LoadOrStore makes
// them agree on one instance.
package graphstore
