package engine

import (
	"context"
	"fmt"
	"log/slog"

	"mercator-hq/themisto/pkg/attr"
	"mercator-hq/themisto/pkg/decision"
	"mercator-hq/themisto/pkg/policy"
)

// Config configures a Static engine.
type Config struct {
	// Finder is the policy-lookup collaborator, usually a policy.Composer.
	Finder policy.Finder

	// Resolvers supply attributes the request does not carry.
	Resolvers []decision.AttributeResolver

	// Decision is returned for every successfully composed evaluation.
	Decision decision.Decision

	Logger *slog.Logger
}

// Static is a decision engine with a fixed verdict. It composes the
// applicable policy set per request and degrades composition failures to
// Indeterminate, but performs no rule evaluation.
type Static struct {
	finder    policy.Finder
	resolvers []decision.AttributeResolver
	verdict   decision.Decision
	logger    *slog.Logger
}

// NewStatic creates a Static engine.
func NewStatic(cfg *Config) (*Static, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.Finder == nil {
		return nil, fmt.Errorf("policy finder cannot be nil")
	}
	if !cfg.Decision.Known() {
		return nil, fmt.Errorf("unknown decision %q", cfg.Decision)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Static{
		finder:    cfg.Finder,
		resolvers: cfg.Resolvers,
		verdict:   cfg.Decision,
		logger:    logger.With("component", "decision.static"),
	}, nil
}

// Evaluate implements decision.Engine.
func (e *Static) Evaluate(ctx context.Context, req *attr.Request) (*decision.Response, error) {
	if req == nil {
		return nil, fmt.Errorf("decision request cannot be nil")
	}

	ectx := &resolvingContext{
		ctx:       ctx,
		request:   req,
		resolvers: e.resolvers,
		logger:    e.logger,
	}

	found := e.finder.FindPolicy(ectx)
	if found.Set == nil {
		e.logger.Warn("policy composition failed", "status", found.Status)
		return decision.IndeterminateResponse(found.Status), nil
	}

	resource, _ := req.Single(attr.CategoryResource, attr.ObjectPID)
	e.logger.Debug("evaluated request",
		"policies", len(found.Set.Documents),
		"algorithm", found.Set.Algorithm.Name,
		"decision", e.verdict,
	)

	return &decision.Response{Results: []decision.Result{{
		Decision: e.verdict,
		Resource: resource,
	}}}, nil
}

// resolvingContext answers attribute lookups from the request first and
// falls back to the configured resolvers. Resolver failures degrade to an
// empty bag: unknown, not denied.
type resolvingContext struct {
	ctx       context.Context
	request   *attr.Request
	resolvers []decision.AttributeResolver
	logger    *slog.Logger
}

// Attribute implements decision.EvaluationContext.
func (rc *resolvingContext) Attribute(cat attr.Category, id string) ([]string, bool) {
	if bag, ok := rc.request.Attribute(cat, id); ok {
		return bag, true
	}

	for _, resolver := range rc.resolvers {
		bag, err := resolver.ResolveAttribute(rc.ctx, cat, id, decision.RequestContext{Request: rc.request})
		if err != nil {
			rc.logger.Warn("attribute resolution failed",
				"category", cat.String(),
				"id", id,
				"error", err,
			)
			continue
		}
		if len(bag) > 0 {
			return bag, true
		}
	}

	return nil, false
}

// Single implements decision.EvaluationContext.
func (rc *resolvingContext) Single(cat attr.Category, id string) (string, bool) {
	bag, ok := rc.Attribute(cat, id)
	if !ok || len(bag) != 1 {
		return "", false
	}
	return bag[0], true
}
