package flow

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/decl"
	"github.com/specialistvlad/sysdc/internal/diag"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/scope"
	"github.com/specialistvlad/sysdc/internal/types"
)

type validator struct {
	table *scope.Table
	frame scope.FrameID
	fn    name.Name
}

// Validate checks the body of one pending function and, on success, stores
// the resolved annotations on p.Function. On failure p.Function is left
// without annotations and the error is a *diag.FunctionError.
func Validate(ctx context.Context, t *scope.Table, p scope.Pending) error {
	fn := p.Function
	logger := ctxlog.FromContext(ctx)
	v := &validator{table: t, frame: p.Frame, fn: fn.Name}

	var env Local
	for _, param := range fn.Params {
		env = env.Bind(param.Name, param.Type)
	}

	out := make([]model.Annotation, 0, len(p.Decl.Annotations))
	for i, a := range p.Decl.Annotations {
		var (
			resolved model.Annotation
			err      error
		)
		switch a := a.(type) {
		case *decl.Modify:
			resolved, err = v.modify(env, a)
		case *decl.Spawn:
			resolved, env, err = v.spawn(env, a)
		default:
			err = fmt.Errorf("unsupported annotation %T", a)
		}
		if err != nil {
			logger.Debug("Annotation rejected.", "index", i, "range", a.SourceRange().String(), "error", err)
			return &diag.FunctionError{Function: fn.Name, Annotation: i, Err: err}
		}
		out = append(out, resolved)
	}

	if ret := fn.Returns; ret != nil {
		if err := v.checkReturns(env, *ret, p.Decl.Returns.Range); err != nil {
			return &diag.FunctionError{Function: fn.Name, Annotation: -1, Err: err}
		}
	}

	fn.Annotations = out
	logger.Debug("Function body validated.", "annotations", len(out), "locals", env.Len())
	return nil
}

func (v *validator) modify(env Local, m *decl.Modify) (*model.Modify, error) {
	target, err := v.reference(env, m.Target)
	if err != nil {
		return nil, err
	}
	uses := make([]model.Binding, 0, len(m.Uses))
	for _, u := range m.Uses {
		b, err := v.reference(env, u)
		if err != nil {
			return nil, err
		}
		uses = append(uses, b)
	}
	return &model.Modify{Target: target, Uses: uses}, nil
}

func (v *validator) spawn(env Local, s *decl.Spawn) (*model.Spawn, Local, error) {
	if err := scope.CheckSegment(v.fn, s.Result.Name, s.Result.Range); err != nil {
		return nil, env, err
	}
	resultName := v.fn.Child(s.Result.Name)
	if _, bound := env.Lookup(resultName); bound {
		return nil, env, &diag.DuplicateDeclarationError{Name: resultName, Range: s.Result.Range}
	}

	var declared *types.Type
	if s.Result.Type.Kind != types.UnsolvedNoHint {
		ty, err := v.table.ResolveDeclared(v.frame, s.Result.Type, resultName, s.Result.Range)
		if err != nil {
			return nil, env, err
		}
		declared = &ty
	}

	inner := env
	var first *types.Type
	var returns []*model.Return
	details := make([]model.SpawnDetail, 0, len(s.Details))
	for _, d := range s.Details {
		switch d := d.(type) {
		case *decl.Use:
			b, err := v.reference(inner, d.Binding)
			if err != nil {
				return nil, env, err
			}
			if first == nil {
				first = &b.Type
			}
			details = append(details, &model.Use{Binding: b})

		case *decl.LetTo:
			let, err := v.letTo(inner, resultName, d)
			if err != nil {
				return nil, env, err
			}
			if first == nil {
				first = &let.Type
			}
			inner = inner.Bind(let.Name, let.Type)
			details = append(details, let)

		case *decl.Return:
			b, err := v.reference(inner, d.Binding)
			if err != nil {
				return nil, env, err
			}
			if first == nil {
				first = &b.Type
			}
			ret := &model.Return{Binding: b}
			returns = append(returns, ret)
			details = append(details, ret)

		case *decl.Unknown:
			details = append(details, &model.Unknown{Kind: d.Kind})

		default:
			return nil, env, fmt.Errorf("unsupported spawn detail %T", d)
		}
	}

	var resultType types.Type
	switch {
	case declared != nil:
		resultType = *declared
	case first != nil:
		resultType = *first
	default:
		return nil, env, &diag.UnresolvedTypeError{Name: resultName, NoHint: true, Range: s.Result.Range}
	}

	for _, r := range returns {
		if !r.Type.Equal(resultType) {
			return nil, env, &diag.TypeMismatchError{Name: resultName, Expected: resultType, Found: r.Type, Range: s.Range}
		}
	}

	result := model.Binding{Name: resultName, Type: resultType}
	return &model.Spawn{Result: result, Details: details}, inner.Bind(resultName, resultType), nil
}

func (v *validator) letTo(env Local, resultName name.Name, d *decl.LetTo) (*model.LetTo, error) {
	if err := scope.CheckSegment(v.fn, d.Name, d.Range); err != nil {
		return nil, err
	}
	letName := v.fn.Child(d.Name)
	if _, bound := env.Lookup(letName); bound || letName == resultName {
		return nil, &diag.DuplicateDeclarationError{Name: letName, Range: d.Range}
	}

	sig, ok := v.table.LookupFunction(v.frame, d.Func)
	if !ok {
		return nil, &diag.UndeclaredFunctionError{Ref: d.Func, From: v.fn, Range: d.Range}
	}

	args := make([]model.Binding, 0, len(d.Args))
	for _, a := range d.Args {
		b, err := v.reference(env, a)
		if err != nil {
			return nil, err
		}
		args = append(args, b)
	}
	if len(args) != len(sig.Params) {
		return nil, &diag.ArityMismatchError{Func: sig.Name, Want: len(sig.Params), Got: len(args), Range: d.Range}
	}
	for i, param := range sig.Params {
		if !args[i].Type.Equal(param.Type) {
			return nil, &diag.TypeMismatchError{Name: param.Name, Expected: param.Type, Found: args[i].Type, Range: d.Range}
		}
	}

	var ty types.Type
	switch {
	case d.Type.Kind != types.UnsolvedNoHint:
		resolved, err := v.table.ResolveDeclared(v.frame, d.Type, letName, d.Range)
		if err != nil {
			return nil, err
		}
		if sig.Returns != nil && !sig.Returns.Type.Equal(resolved) {
			return nil, &diag.TypeMismatchError{Name: letName, Expected: sig.Returns.Type, Found: resolved, Range: d.Range}
		}
		ty = resolved
	case sig.Returns != nil:
		ty = sig.Returns.Type
	default:
		return nil, &diag.UnresolvedTypeError{Name: letName, NoHint: true, Range: d.Range}
	}

	return &model.LetTo{Name: letName, Type: ty, Func: sig.Name, Args: args}, nil
}

// reference resolves a use of a bound variable.
func (v *validator) reference(env Local, b decl.Binding) (model.Binding, error) {
	n := v.fn.Child(b.Name)
	bound, ok := env.Lookup(n)
	if !ok {
		return model.Binding{}, &diag.UndeclaredVariableError{Name: n, Range: b.Range}
	}
	ty, err := v.conform(n, b.Type, bound, b.Range)
	if err != nil {
		return model.Binding{}, err
	}
	return model.Binding{Name: n, Type: ty}, nil
}

// conform checks a reference's hint against its binding-site type. A
// reference without a hint takes the binding-site type.
func (v *validator) conform(n name.Name, hint, bound types.Type, rng hcl.Range) (types.Type, error) {
	if hint.Kind == types.UnsolvedNoHint {
		return bound, nil
	}
	solved, ok := v.table.ResolveHint(v.frame, hint)
	if !ok {
		return hint, &diag.UnresolvedTypeError{Name: n, Hint: hint.Hint, Range: rng}
	}
	if !solved.Equal(bound) {
		return solved, &diag.TypeMismatchError{Name: n, Expected: bound, Found: solved, Range: rng}
	}
	return solved, nil
}

func (v *validator) checkReturns(env Local, ret model.Binding, rng hcl.Range) error {
	bound, ok := env.Lookup(ret.Name)
	if !ok {
		return &diag.UndeclaredVariableError{Name: ret.Name, Range: rng}
	}
	if !bound.Equal(ret.Type) {
		return &diag.TypeMismatchError{Name: ret.Name, Expected: ret.Type, Found: bound, Range: rng}
	}
	return nil
}
