/*
Package name provides the canonical hierarchical identifier used throughout
the resolver and the resolved system model.

A Name is an ordered, dot-separated path of identifier segments, for example
`shapes.geo.move.p`. Names are plain comparable values: two Names are equal
exactly when their full paths are equal, so a Name can be used directly as a
map key. The zero Name is the system root.
*/
package name
