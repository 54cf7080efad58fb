// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the fully resolved, immutable system model.
//
// # Core Concepts
//
//   - System: the root, owning Units with unique names.
//   - Unit: a top-level namespace owning Data declarations and Modules.
//   - Module: owns Data declarations and Functions.
//   - Function: ordered parameters, an optional return binding, and an ordered
//     sequence of Modify/Spawn annotations.
//
// Every Name in the model is fully qualified and denotes exactly one
// declaration, and every Type is solved (Int32 or Data). Children hold no
// pointers to their parents; back-references are Names.
//
// Why immutable?
//
// The model is produced once per resolution run and then handed to any number
// of concurrent readers (the query server, the exporter, the publisher). No
// code path mutates it after the compiler returns it, so readers need no
// locking. A new run always produces a new *System; whoever still holds the
// previous one keeps a consistent snapshot.
package model
