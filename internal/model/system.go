// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file defines the containment hierarchy of the resolved model.
package model

import (
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
)

// System is the root of a resolved model.
type System struct {
	Units []*Unit
}

// Unit is a resolved top-level namespace.
type Unit struct {
	Name    name.Name
	Data    []*Data
	Modules []*Module
}

// Module is a resolved collection of Data declarations and Functions.
type Module struct {
	Name      name.Name
	Data      []*Data
	Functions []*Function
}

// Data is a resolved user-defined structure.
type Data struct {
	Name   name.Name
	Fields []Binding
}

// Function is a resolved and flow-validated operation.
type Function struct {
	Name        name.Name
	Params      []Binding
	Returns     *Binding
	Annotations []Annotation
}

// Binding pairs a canonical Name with its solved Type.
type Binding struct {
	Name name.Name
	Type types.Type
}

// Functions returns every function in declaration order.
func (s *System) Functions() []*Function {
	var fns []*Function
	for _, u := range s.Units {
		for _, m := range u.Modules {
			fns = append(fns, m.Functions...)
		}
	}
	return fns
}

// Function looks a function up by its canonical Name.
func (s *System) Function(n name.Name) (*Function, bool) {
	for _, fn := range s.Functions() {
		if fn.Name == n {
			return fn, true
		}
	}
	return nil, false
}

// DataDecls returns every Data declaration, unit-level ones first within each unit.
func (s *System) DataDecls() []*Data {
	var out []*Data
	for _, u := range s.Units {
		out = append(out, u.Data...)
		for _, m := range u.Modules {
			out = append(out, m.Data...)
		}
	}
	return out
}
