// Package codec is the export boundary of a resolved system model.
//
// Encode is the serialization gate: it walks the model and refuses any
// placeholder type with a *diag.SerializationInvariantError before a single
// byte is produced. Only solved kinds have a wire tag ("i32" and "Data"), and
// Decode accepts exactly those tags, so a placeholder can neither leave nor
// re-enter the system through this package.
//
// The wire format is MessagePack. Names travel in their canonical dotted form.
package codec
