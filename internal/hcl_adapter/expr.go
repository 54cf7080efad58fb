package hcl_adapter

import (
	"context"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/specialistvlad/sysdc/internal/ctxlog"
	"github.com/specialistvlad/sysdc/internal/name"
	"github.com/specialistvlad/sysdc/internal/types"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// isExprDefined checks if an HCL expression was actually present in the source
// code. gohcl populates omitted optional hcl.Expression fields with a
// zero-width null expression, so a nil check alone is insufficient.
func isExprDefined(expr hcl.Expression) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	return r.End.Byte > r.Start.Byte
}

// typeFromExpr reads a type hint. A bare identifier (`type = Point`) and a
// string literal (`type = "Point"`) are equivalent; an omitted attribute
// yields the no-hint placeholder.
func typeFromExpr(ctx context.Context, expr hcl.Expression) (types.Type, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return types.NoHint(), nil
	}

	hint, diags := identFromExpr(expr)
	if diags.HasErrors() {
		return types.NoHint(), diags
	}
	ty := types.FromHint(hint)
	ctxlog.FromContext(ctx).Debug("Parsed type hint.", "hint", hint, "kind", ty.Kind.String())
	return ty, nil
}

// namesFromExpr reads a list of variable names such as `uses = [p, "d"]`.
func namesFromExpr(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	if !isExprDefined(expr) {
		return nil, nil
	}

	items, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		// Not a list literal; it may still evaluate to a list of strings.
		return stringsFromValue(expr)
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		n, itemDiags := identFromExpr(item)
		diags = append(diags, itemDiags...)
		if !itemDiags.HasErrors() {
			out = append(out, n)
		}
	}
	return out, diags
}

// identFromExpr accepts a single-segment traversal or a string literal that is
// a valid identifier.
func identFromExpr(expr hcl.Expression) (string, hcl.Diagnostics) {
	rng := expr.Range()
	if trav, diags := hcl.AbsTraversalForExpr(expr); !diags.HasErrors() {
		if len(trav) != 1 {
			return "", hcl.Diagnostics{{
				Severity: hcl.DiagError,
				Summary:  "Invalid identifier",
				Detail:   "Expected a single identifier, got the attribute path " + traversalText(trav) + ".",
				Subject:  &rng,
			}}
		}
		return trav.RootName(), nil
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	var s string
	str, err := convert.Convert(val, cty.String)
	if err == nil && str.IsKnown() && !str.IsNull() {
		err = gocty.FromCtyValue(str, &s)
	}
	if err != nil || s == "" {
		return "", hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid identifier",
			Detail:   "Expected an identifier or a string literal.",
			Subject:  &rng,
		}}
	}
	if !name.ValidSegment(s) {
		return "", invalidName(s, rng)
	}
	return s, nil
}

func stringsFromValue(expr hcl.Expression) ([]string, hcl.Diagnostics) {
	rng := expr.Range()
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	list, err := convert.Convert(val, cty.List(cty.String))
	if err != nil || !list.IsWhollyKnown() || list.IsNull() {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid name list",
			Detail:   "Expected a list of identifiers.",
			Subject:  &rng,
		}}
	}
	var out []string
	if err := gocty.FromCtyValue(list, &out); err != nil {
		return nil, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid name list",
			Detail:   err.Error(),
			Subject:  &rng,
		}}
	}
	for _, s := range out {
		if !name.ValidSegment(s) {
			return nil, invalidName(s, rng)
		}
	}
	return out, nil
}

// traversalText renders a traversal the way it appears in source, e.g. a.b[0].
func traversalText(t hcl.Traversal) string {
	return string(hclwrite.TokensForTraversal(t).Bytes())
}

func invalidName(s string, rng hcl.Range) hcl.Diagnostics {
	return hcl.Diagnostics{{
		Severity: hcl.DiagError,
		Summary:  "Invalid name",
		Detail:   "\"" + s + "\" is not a valid identifier; names start with a letter or underscore and contain only letters, digits and underscores.",
		Subject:  &rng,
	}}
}

// label validates the single label of a block.
func label(block *hcl.Block) (string, hcl.Diagnostics) {
	l := block.Labels[0]
	if !name.ValidSegment(l) {
		return "", invalidName(l, block.LabelRanges[0])
	}
	return l, nil
}
