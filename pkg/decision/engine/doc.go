// Package engine provides a minimal decision engine for wiring and tests.
//
// The Static engine drives the full evaluation plumbing — policy
// composition through the configured finder, attribute resolution through
// the configured resolvers, status-to-Indeterminate downgrading — but does
// not interpret policy rules: every successfully composed evaluation yields
// the engine's fixed decision. Production deployments replace it with a real
// policy decision engine behind the same interface.
package engine
