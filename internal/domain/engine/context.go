package engine

import (
	"context"

	"github.com/ThiagoSantosOFC/starship/internal/domain/facts"
)

// RunContext carries everything a step may consult during Satisfied and
// Apply: the cancellation context, the immutable fact sheet, and the dry-run
// flag.
type RunContext struct {
	ctx    context.Context
	facts  facts.Facts
	dryRun bool
}

// NewRunContext creates a RunContext.
func NewRunContext(ctx context.Context, f facts.Facts) RunContext {
	return RunContext{ctx: ctx, facts: f}
}

// Context returns the underlying context.Context.
func (r RunContext) Context() context.Context { return r.ctx }

// Facts returns the host fact sheet.
func (r RunContext) Facts() facts.Facts { return r.facts }

// DryRun reports whether this is a dry-run execution.
func (r RunContext) DryRun() bool { return r.dryRun }

// WithDryRun returns a copy with the dry-run flag set.
func (r RunContext) WithDryRun(dryRun bool) RunContext {
	r.dryRun = dryRun
	return r
}
