package hcl

import (
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"

	"github.com/specialistvlad/resourcekit/internal/config"
)

// bodyToValue converts a block body into an object value. Attributes are
// evaluated without variables; a nested block becomes an attribute named
// after its type, with one more nesting level per label. Repeated blocks
// are deep-merged in source order.
func bodyToValue(body hcl.Body) (cty.Value, hcl.Diagnostics) {
	syntaxBody, ok := body.(*hclsyntax.Body)
	if !ok {
		attrs, diags := body.JustAttributes()
		if diags.HasErrors() {
			return cty.NilVal, diags
		}
		return attributesToValue(attrs)
	}

	attrs := make(hcl.Attributes, len(syntaxBody.Attributes))
	for name, attr := range syntaxBody.Attributes {
		attrs[name] = attr.AsHCLAttribute()
	}
	out, diags := attributesToValue(attrs)
	if diags.HasErrors() {
		return cty.NilVal, diags
	}

	for _, block := range syntaxBody.Blocks {
		if _, clash := attrs[block.Type]; clash {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Duplicate setting",
				Detail:   fmt.Sprintf("%q is set both as an attribute and as a block.", block.Type),
				Subject:  block.TypeRange.Ptr(),
			})
			continue
		}

		inner, blockDiags := bodyToValue(block.Body)
		diags = append(diags, blockDiags...)
		if blockDiags.HasErrors() {
			continue
		}
		for i := len(block.Labels) - 1; i >= 0; i-- {
			inner = cty.ObjectVal(map[string]cty.Value{block.Labels[i]: inner})
		}
		out = config.Merge(out, cty.ObjectVal(map[string]cty.Value{block.Type: inner}))
	}
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	return out, diags
}

func attributesToValue(attrs hcl.Attributes) (cty.Value, hcl.Diagnostics) {
	var diags hcl.Diagnostics
	names := make([]string, 0, len(attrs))
	for name := range attrs {
		names = append(names, name)
	}
	sort.Strings(names)

	vals := make(map[string]cty.Value, len(attrs))
	for _, name := range names {
		v, valDiags := attrs[name].Expr.Value(nil)
		diags = append(diags, valDiags...)
		vals[name] = v
	}
	if diags.HasErrors() {
		return cty.NilVal, diags
	}
	if len(vals) == 0 {
		return cty.EmptyObjectVal, diags
	}
	return cty.ObjectVal(vals), diags
}
