// Package compiler turns a raw declaration tree into the immutable system
// model: scope resolution first, then flow validation of every function body,
// then a final check that no placeholder type survived.
//
// Compilation is a synchronous batch computation. Either the whole tree
// resolves and a fresh *model.System is returned, or the first error is
// returned and nothing is exposed.
package compiler

import (
	"context"

	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/decl"
	"github.com/specialistvlad/sysdc/internal/diag"
	"github.com/specialistvlad/sysdc/internal/flow"
	"github.com/specialistvlad/sysdc/internal/model"
	"github.com/specialistvlad/sysdc/internal/scope"
)

// Compile resolves and validates sys.
func Compile(ctx context.Context, sys *decl.System) (*model.System, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Compilation started.")

	res, err := scope.Resolve(ctx, sys)
	if err != nil {
		return nil, err
	}

	for _, p := range res.Pending {
		fnCtx := ctxlog.With(ctx, "function", p.Function.Name.String())
		if err := flow.Validate(fnCtx, res.Table, p); err != nil {
			return nil, err
		}
	}
	logger.Debug("All function bodies validated.", "functions", len(res.Pending))

	if err := checkSolved(res.System); err != nil {
		return nil, err
	}

	logger.Info("Compilation successful.", "units", len(res.System.Units), "functions", len(res.Pending))
	return res.System, nil
}

// checkSolved fails with *diag.InvariantError when any placeholder type is
// left in sys.
func checkSolved(sys *model.System) error {
	return sys.WalkTypes(func(path string, b model.Binding) error {
		if !b.Type.Solved() {
			return &diag.InvariantError{Path: path, Binding: b.Name, Type: b.Type}
		}
		return nil
	})
}
