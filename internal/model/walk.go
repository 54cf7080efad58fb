// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file provides a read-only traversal over every Type in the model.
//
// Why a dedicated walker?
//
// Both the compiler's final self-check and tests need to visit every Type the
// model carries, together with a human-readable location. Keeping the walk in
// one place means a new field holding a Type is added here once instead of in
// every consumer.
package model

// TypeVisitor is called for each Type with a dotted location path.
type TypeVisitor func(path string, b Binding) error

// WalkTypes visits every binding in the model, stopping at the first error.
func (s *System) WalkTypes(visit TypeVisitor) error {
	for _, d := range s.DataDecls() {
		for _, f := range d.Fields {
			if err := visit(d.Name.String()+"{"+f.Name.Local()+"}", f); err != nil {
				return err
			}
		}
	}
	for _, fn := range s.Functions() {
		if err := walkFunction(fn, visit); err != nil {
			return err
		}
	}
	return nil
}

func walkFunction(fn *Function, visit TypeVisitor) error {
	at := fn.Name.String()
	for _, p := range fn.Params {
		if err := visit(at+"(param)", p); err != nil {
			return err
		}
	}
	if fn.Returns != nil {
		if err := visit(at+"(returns)", *fn.Returns); err != nil {
			return err
		}
	}
	for _, a := range fn.Annotations {
		switch a := a.(type) {
		case *Modify:
			if err := visit(at+"(modify)", a.Target); err != nil {
				return err
			}
			for _, u := range a.Uses {
				if err := visit(at+"(modify use)", u); err != nil {
					return err
				}
			}
		case *Spawn:
			if err := visit(at+"(spawn)", a.Result); err != nil {
				return err
			}
			for _, d := range a.Details {
				if err := walkDetail(at, d, visit); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func walkDetail(at string, d SpawnDetail, visit TypeVisitor) error {
	switch d := d.(type) {
	case *Use:
		return visit(at+"(use)", d.Binding)
	case *Return:
		return visit(at+"(return)", d.Binding)
	case *LetTo:
		if err := visit(at+"(let_to)", Binding{Name: d.Name, Type: d.Type}); err != nil {
			return err
		}
		for _, arg := range d.Args {
			if err := visit(at+"(let_to arg)", arg); err != nil {
				return err
			}
		}
	}
	return nil
}
