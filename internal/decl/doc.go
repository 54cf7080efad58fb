// Package decl defines the raw, unresolved declaration tree handed to the
// resolver by a front end.
//
// Names in this tree are bare identifiers scoped by their position in the
// tree, and every Type is either a primitive or one of the two unsolved
// placeholders. The tree is assumed to be structurally well formed (correct
// nesting) but not semantically well formed: names and types may be wrong,
// and it is the resolver's job to find out.
//
// Source ranges are optional. Front ends that know where a declaration came
// from (such as the HCL adapter) fill them in so diagnostics can point at the
// offending text.
package decl
