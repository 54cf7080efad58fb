package scope

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/decl"
	"github.com/specialistvlad/sysdc/internal/diag"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
)

// Pending is a function whose signature is resolved and whose body is still
// awaiting flow validation.
type Pending struct {
	Frame    FrameID
	Decl     *decl.Function
	Function *model.Function
}

// Result is the resolved skeleton of a system.
type Result struct {
	Table *Table
	// System has every unit, module, Data declaration and function signature
	// resolved. Function annotations are still empty.
	System  *model.System
	Pending []Pending
}

type dataSite struct {
	frame FrameID
	decl  *decl.Data
	model *model.Data
}

// Resolve builds the symbol table for sys and resolves every declared type
// outside of function bodies. It stops at the first error.
func Resolve(ctx context.Context, sys *decl.System) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Scope resolution started.", "units", len(sys.Units))

	t := NewTable()
	out := &model.System{}
	var datas []dataSite
	var pending []Pending

	for _, u := range sys.Units {
		if err := CheckSegment(name.Name{}, u.Name, u.Range); err != nil {
			return nil, err
		}
		uf, ok := t.Open(t.Root(), UnitFrame, u.Name)
		if !ok {
			return nil, &diag.DuplicateDeclarationError{Name: name.New(u.Name), Range: u.Range}
		}
		mu := &model.Unit{Name: t.Name(uf)}

		sites, err := declareData(t, uf, u.Data)
		if err != nil {
			return nil, err
		}
		for _, s := range sites {
			mu.Data = append(mu.Data, s.model)
		}
		datas = append(datas, sites...)

		for _, m := range u.Modules {
			if err := CheckSegment(mu.Name, m.Name, m.Range); err != nil {
				return nil, err
			}
			mf, ok := t.Open(uf, ModuleFrame, m.Name)
			if !ok {
				return nil, &diag.DuplicateDeclarationError{Name: mu.Name.Child(m.Name), Range: m.Range}
			}
			mm := &model.Module{Name: t.Name(mf)}

			sites, err := declareData(t, mf, m.Data)
			if err != nil {
				return nil, err
			}
			for _, s := range sites {
				mm.Data = append(mm.Data, s.model)
			}
			datas = append(datas, sites...)

			for _, fn := range m.Functions {
				if err := CheckSegment(mm.Name, fn.Name, fn.Range); err != nil {
					return nil, err
				}
				ff, ok := t.Open(mf, FunctionFrame, fn.Name)
				if !ok {
					return nil, &diag.DuplicateDeclarationError{Name: mm.Name.Child(fn.Name), Range: fn.Range}
				}
				mfn := &model.Function{Name: t.Name(ff)}
				mm.Functions = append(mm.Functions, mfn)
				pending = append(pending, Pending{Frame: ff, Decl: fn, Function: mfn})
			}
			mu.Modules = append(mu.Modules, mm)
		}
		out.Units = append(out.Units, mu)
	}
	logger.Debug("Declarations collected.", "data", len(datas), "functions", len(pending))

	for _, d := range datas {
		if err := resolveFields(t, d); err != nil {
			return nil, err
		}
	}
	logger.Debug("Data fields resolved.")

	for _, p := range pending {
		if err := resolveSignature(t, p); err != nil {
			return nil, &diag.FunctionError{Function: p.Function.Name, Annotation: -1, Err: err}
		}
	}
	logger.Debug("Function signatures resolved.")

	return &Result{Table: t, System: out, Pending: pending}, nil
}

func declareData(t *Table, id FrameID, decls []*decl.Data) ([]dataSite, error) {
	sites := make([]dataSite, 0, len(decls))
	for _, d := range decls {
		if err := CheckSegment(t.Name(id), d.Name, d.Range); err != nil {
			return nil, err
		}
		n, ok := t.DeclareData(id, d.Name)
		if !ok {
			return nil, &diag.DuplicateDeclarationError{Name: t.Name(id).Child(d.Name), Range: d.Range}
		}
		sites = append(sites, dataSite{frame: id, decl: d, model: &model.Data{Name: n}})
	}
	return sites, nil
}

func resolveFields(t *Table, d dataSite) error {
	seen := make(map[string]struct{}, len(d.decl.Fields))
	for _, f := range d.decl.Fields {
		if err := CheckSegment(d.model.Name, f.Name, f.Range); err != nil {
			return err
		}
		fieldName := d.model.Name.Child(f.Name)
		if _, dup := seen[f.Name]; dup {
			return &diag.DuplicateDeclarationError{Name: fieldName, Range: f.Range}
		}
		seen[f.Name] = struct{}{}

		ty, err := t.ResolveDeclared(d.frame, f.Type, fieldName, f.Range)
		if err != nil {
			return err
		}
		d.model.Fields = append(d.model.Fields, model.Binding{Name: fieldName, Type: ty})
	}
	return nil
}

func resolveSignature(t *Table, p Pending) error {
	fnName := p.Function.Name
	sig := &Signature{Name: fnName, Frame: p.Frame}

	seen := make(map[string]struct{}, len(p.Decl.Params))
	for _, param := range p.Decl.Params {
		if err := CheckSegment(fnName, param.Name, param.Range); err != nil {
			return err
		}
		pn := fnName.Child(param.Name)
		if _, dup := seen[param.Name]; dup {
			return &diag.DuplicateDeclarationError{Name: pn, Range: param.Range}
		}
		seen[param.Name] = struct{}{}

		ty, err := t.ResolveDeclared(p.Frame, param.Type, pn, param.Range)
		if err != nil {
			return err
		}
		sig.Params = append(sig.Params, model.Binding{Name: pn, Type: ty})
	}

	if ret := p.Decl.Returns; ret != nil {
		if err := CheckSegment(fnName, ret.Name, ret.Range); err != nil {
			return err
		}
		rn := fnName.Child(ret.Name)
		ty, err := t.ResolveDeclared(p.Frame, ret.Type, rn, ret.Range)
		if err != nil {
			return err
		}
		sig.Returns = &model.Binding{Name: rn, Type: ty}
	}

	p.Function.Params = sig.Params
	p.Function.Returns = sig.Returns
	t.setSignature(sig)
	return nil
}

// ResolveDeclared resolves the type of a declaration that must carry a hint,
// such as a field or a parameter. owner names the declaration for diagnostics.
func (t *Table) ResolveDeclared(from FrameID, ty types.Type, owner name.Name, rng hcl.Range) (types.Type, error) {
	if ty.Kind == types.UnsolvedNoHint {
		return ty, &diag.UnresolvedTypeError{Name: owner, NoHint: true, Range: rng}
	}
	solved, ok := t.ResolveHint(from, ty)
	if !ok {
		return ty, &diag.UnresolvedTypeError{Name: owner, Hint: ty.Hint, Range: rng}
	}
	return solved, nil
}

// CheckSegment rejects a declared name that is not a single identifier
// segment, so that every canonical Name denotes one declaration.
func CheckSegment(scope name.Name, seg string, rng hcl.Range) error {
	if name.ValidSegment(seg) {
		return nil
	}
	return &diag.InvalidNameError{Scope: scope, Segment: seg, Range: rng}
}
