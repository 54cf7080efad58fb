// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the annotation and spawn detail variants of a function
// body.
//
// Why a closed set with an Unknown variant?
//
// Spawn details are expected to grow with the language. New concrete variants
// are added here as they are specified; until then the front end reports an
// unrecognised detail as Unknown, which is structurally valid, carried through
// export, and ignored by flow-graph consumers.
package model

import (
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
)

// Annotation is *Modify or *Spawn.
type Annotation interface {
	annotation()
}

// Modify records that Target is overwritten using Uses.
type Modify struct {
	Target Binding
	Uses   []Binding
}

// Spawn introduces Result, computed from Details in order.
type Spawn struct {
	Result  Binding
	Details []SpawnDetail
}

func (*Modify) annotation() {}
func (*Spawn) annotation()  {}

// SpawnDetail is *Use, *LetTo, *Return or *Unknown.
type SpawnDetail interface {
	spawnDetail()
}

// Use consumes an existing variable.
type Use struct {
	Binding
}

// LetTo binds Name to the result of delegating to Func with Args.
type LetTo struct {
	Name name.Name
	Type types.Type
	Func name.Name
	Args []Binding
}

// Return names the variable that becomes the spawn result.
type Return struct {
	Binding
}

// Unknown is a detail kind without resolver semantics.
type Unknown struct {
	Kind string
}

func (*Use) spawnDetail()     {}
func (*LetTo) spawnDetail()   {}
func (*Return) spawnDetail()  {}
func (*Unknown) spawnDetail() {}
