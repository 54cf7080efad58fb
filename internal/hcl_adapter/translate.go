package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/decl"
)

func (l *Loader) translateFile(ctx context.Context, body hcl.Body) ([]*decl.Unit, hcl.Diagnostics) {
	content, diags := body.Content(fileSchema)
	var units []*decl.Unit
	for _, block := range content.Blocks {
		u, unitDiags := l.translateUnit(ctx, block)
		diags = append(diags, unitDiags...)
		if u != nil {
			units = append(units, u)
		}
	}
	return units, diags
}

func (l *Loader) translateUnit(ctx context.Context, block *hcl.Block) (*decl.Unit, hcl.Diagnostics) {
	unitName, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}
	logger := ctxlog.FromContext(ctx).With("unit", unitName)
	ctx = ctxlog.WithLogger(ctx, logger)

	u := &decl.Unit{Name: unitName, Range: block.DefRange}
	content, contentDiags := block.Body.Content(unitSchema)
	diags = append(diags, contentDiags...)
	for _, b := range content.Blocks {
		switch b.Type {
		case "data":
			d, dataDiags := l.translateData(ctx, b)
			diags = append(diags, dataDiags...)
			if d != nil {
				u.Data = append(u.Data, d)
			}
		case "module":
			m, modDiags := l.translateModule(ctx, b)
			diags = append(diags, modDiags...)
			if m != nil {
				u.Modules = append(u.Modules, m)
			}
		}
	}
	logger.Debug("Translated unit.", "data", len(u.Data), "modules", len(u.Modules))
	return u, diags
}

func (l *Loader) translateModule(ctx context.Context, block *hcl.Block) (*decl.Module, hcl.Diagnostics) {
	moduleName, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	m := &decl.Module{Name: moduleName, Range: block.DefRange}
	content, contentDiags := block.Body.Content(moduleSchema)
	diags = append(diags, contentDiags...)
	for _, b := range content.Blocks {
		switch b.Type {
		case "data":
			d, dataDiags := l.translateData(ctx, b)
			diags = append(diags, dataDiags...)
			if d != nil {
				m.Data = append(m.Data, d)
			}
		case "function":
			fn, fnDiags := l.translateFunction(ctx, b)
			diags = append(diags, fnDiags...)
			if fn != nil {
				m.Functions = append(m.Functions, fn)
			}
		}
	}
	return m, diags
}

func (l *Loader) translateData(ctx context.Context, block *hcl.Block) (*decl.Data, hcl.Diagnostics) {
	dataName, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	d := &decl.Data{Name: dataName, Range: block.DefRange}
	content, contentDiags := block.Body.Content(dataSchema)
	diags = append(diags, contentDiags...)
	for _, b := range content.Blocks {
		f, fieldDiags := l.translateBinding(ctx, b)
		diags = append(diags, fieldDiags...)
		if f != nil {
			d.Fields = append(d.Fields, *f)
		}
	}
	return d, diags
}

func (l *Loader) translateFunction(ctx context.Context, block *hcl.Block) (*decl.Function, hcl.Diagnostics) {
	fnName, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	fn := &decl.Function{Name: fnName, Range: block.DefRange}
	content, contentDiags := block.Body.Content(functionSchema)
	diags = append(diags, contentDiags...)
	for _, b := range content.Blocks {
		switch b.Type {
		case "param":
			p, pDiags := l.translateBinding(ctx, b)
			diags = append(diags, pDiags...)
			if p != nil {
				fn.Params = append(fn.Params, *p)
			}
		case "returns":
			if fn.Returns != nil {
				diags = append(diags, &hcl.Diagnostic{
					Severity: hcl.DiagError,
					Summary:  "Duplicate returns block",
					Detail:   "A function declares at most one returns block.",
					Subject:  &b.DefRange,
				})
				continue
			}
			r, rDiags := l.translateBinding(ctx, b)
			diags = append(diags, rDiags...)
			fn.Returns = r
		case "modify":
			m, mDiags := l.translateModify(ctx, b)
			diags = append(diags, mDiags...)
			if m != nil {
				fn.Annotations = append(fn.Annotations, m)
			}
		case "spawn":
			s, sDiags := l.translateSpawn(ctx, b)
			diags = append(diags, sDiags...)
			if s != nil {
				fn.Annotations = append(fn.Annotations, s)
			}
		}
	}
	ctxlog.FromContext(ctx).Debug("Translated function.", "function", fnName, "params", len(fn.Params), "annotations", len(fn.Annotations))
	return fn, diags
}

// translateBinding handles every block of the form `kind "name" { type = T }`.
func (l *Loader) translateBinding(ctx context.Context, block *hcl.Block) (*decl.Binding, hcl.Diagnostics) {
	bindingName, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	var body bindingBody
	if decodeDiags := gohcl.DecodeBody(block.Body, nil, &body); decodeDiags.HasErrors() {
		return nil, append(diags, decodeDiags...)
	}
	ty, tyDiags := typeFromExpr(ctx, body.Type)
	if tyDiags.HasErrors() {
		return nil, append(diags, tyDiags...)
	}
	return &decl.Binding{Name: bindingName, Type: ty, Range: block.DefRange}, diags
}

func (l *Loader) translateModify(ctx context.Context, block *hcl.Block) (*decl.Modify, hcl.Diagnostics) {
	target, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	content, contentDiags := block.Body.Content(modifySchema)
	diags = append(diags, contentDiags...)
	if contentDiags.HasErrors() {
		return nil, diags
	}

	m := &decl.Modify{Target: decl.Binding{Name: target, Range: block.LabelRanges[0]}, Range: block.DefRange}
	if attr, ok := content.Attributes["type"]; ok {
		ty, tyDiags := typeFromExpr(ctx, attr.Expr)
		diags = append(diags, tyDiags...)
		m.Target.Type = ty
	}
	if attr, ok := content.Attributes["uses"]; ok {
		names, namesDiags := namesFromExpr(attr.Expr)
		diags = append(diags, namesDiags...)
		for _, n := range names {
			m.Uses = append(m.Uses, decl.Binding{Name: n, Range: attr.Expr.Range()})
		}
	}
	for _, b := range content.Blocks {
		u, uDiags := l.translateBinding(ctx, b)
		diags = append(diags, uDiags...)
		if u != nil {
			m.Uses = append(m.Uses, *u)
		}
	}
	return m, diags
}

// translateSpawn walks the native syntax body directly so that details keep
// their source order and blocks of unrecognised kinds are preserved.
func (l *Loader) translateSpawn(ctx context.Context, block *hcl.Block) (*decl.Spawn, hcl.Diagnostics) {
	result, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}
	body, ok := block.Body.(*hclsyntax.Body)
	if !ok {
		return nil, append(diags, &hcl.Diagnostic{
			Severity: hcl.DiagError,
			Summary:  "Unsupported syntax",
			Detail:   "spawn blocks must be written in native HCL syntax.",
			Subject:  &block.DefRange,
		})
	}

	s := &decl.Spawn{Result: decl.Binding{Name: result, Range: block.LabelRanges[0]}, Range: block.DefRange}
	for attrName, attr := range body.Attributes {
		switch attrName {
		case "type":
			ty, tyDiags := typeFromExpr(ctx, attr.Expr)
			diags = append(diags, tyDiags...)
			s.Result.Type = ty
		case "uses":
			names, namesDiags := namesFromExpr(attr.Expr)
			diags = append(diags, namesDiags...)
			for _, n := range names {
				s.Details = append(s.Details, &decl.Use{Binding: decl.Binding{Name: n, Range: attr.Expr.Range()}})
			}
		default:
			rng := attr.NameRange
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Unsupported argument",
				Detail:   "An argument named \"" + attrName + "\" is not expected in a spawn block.",
				Subject:  &rng,
			})
		}
	}

	for _, b := range body.Blocks {
		hb := b.AsHCLBlock()
		switch b.Type {
		case "use", "return":
			if len(b.Labels) != 1 {
				diags = append(diags, wrongLabels(hb))
				continue
			}
			binding, bDiags := l.translateBinding(ctx, hb)
			diags = append(diags, bDiags...)
			if binding == nil {
				continue
			}
			if b.Type == "use" {
				s.Details = append(s.Details, &decl.Use{Binding: *binding})
			} else {
				s.Details = append(s.Details, &decl.Return{Binding: *binding})
			}
		case "let_to":
			if len(b.Labels) != 1 {
				diags = append(diags, wrongLabels(hb))
				continue
			}
			let, letDiags := l.translateLetTo(ctx, hb)
			diags = append(diags, letDiags...)
			if let != nil {
				s.Details = append(s.Details, let)
			}
		default:
			ctxlog.FromContext(ctx).Debug("Keeping unrecognised spawn detail.", "kind", b.Type, "spawn", result)
			s.Details = append(s.Details, &decl.Unknown{Kind: b.Type, Range: hb.DefRange})
		}
	}
	return s, diags
}

func (l *Loader) translateLetTo(ctx context.Context, block *hcl.Block) (*decl.LetTo, hcl.Diagnostics) {
	letName, diags := label(block)
	if diags.HasErrors() {
		return nil, diags
	}

	var body letToBody
	if decodeDiags := gohcl.DecodeBody(block.Body, nil, &body); decodeDiags.HasErrors() {
		return nil, append(diags, decodeDiags...)
	}
	ty, tyDiags := typeFromExpr(ctx, body.Type)
	diags = append(diags, tyDiags...)
	args, argDiags := namesFromExpr(body.Args)
	diags = append(diags, argDiags...)
	if diags.HasErrors() {
		return nil, diags
	}

	let := &decl.LetTo{Name: letName, Type: ty, Func: body.Func, Range: block.DefRange}
	for _, a := range args {
		let.Args = append(let.Args, decl.Binding{Name: a, Range: body.Args.Range()})
	}
	return let, diags
}

func wrongLabels(block *hcl.Block) *hcl.Diagnostic {
	return &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Wrong number of labels",
		Detail:   "A " + block.Type + " block takes exactly one label: the variable name.",
		Subject:  &block.DefRange,
	}
}
