package hcl

import (
	"context"

	"github.com/hashicorp/hcl/v2"

	"github.com/specialistvlad/resourcekit/internal/ctxlog"
)

// isExprDefined reports whether attr was written in the source. gohcl fills
// omitted optional expressions with a zero-width placeholder, so a nil check
// is not enough.
func isExprDefined(ctx context.Context, expr hcl.Expression, attr string) bool {
	if expr == nil {
		return false
	}
	r := expr.Range()
	defined := r.End.Byte > r.Start.Byte
	ctxlog.FromContext(ctx).Debug("Checked optional attribute.", "attribute", attr, "range", r.String(), "defined", defined)
	return defined
}
