package pep

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"mercator-hq/themisto/pkg/decision"
	"mercator-hq/themisto/pkg/telemetry/metrics"
)

// EngineEnv is what the gateway hands an engine factory at build time. It
// exposes the gateway-owned state an engine's attribute resolvers need,
// most importantly the context registry for correlation-id lookups.
type EngineEnv struct {
	// Registry is the gateway's context registry. Resolvers use it to
	// reach the request context of the call being evaluated.
	Registry *ContextRegistry
}

// EngineFactory builds a decision engine. The gateway calls it once on
// Configure and again on every Reload, so each invocation must return a
// fresh engine with a freshly composed policy set; engines themselves are
// immutable once built.
type EngineFactory func(env *EngineEnv) (decision.Engine, error)

// GatewayConfig configures a Gateway. All fields except Mode are optional;
// nil telemetry fields disable the corresponding concern.
type GatewayConfig struct {
	Mode    Mode
	Logger  *slog.Logger
	Metrics *metrics.EnforcementMetrics
	Audit   AuditSink
}

// Gateway is the enforcement gateway: the single choke point every
// operation's authorization passes through. It owns the correlation-id
// source, the context registry, the enforcement mode, and the active
// decision engine handle.
//
// The engine handle is hot-swappable. Swaps hold the write lock only for
// the pointer exchange; in-flight evaluations run on whichever engine they
// captured at entry and finish on it undisturbed.
type Gateway struct {
	logger  *slog.Logger
	metrics *metrics.EnforcementMetrics
	audit   AuditSink

	mode atomic.Int32

	engineMu sync.RWMutex
	engine   decision.Engine
	factory  EngineFactory

	source   correlationSource
	registry *ContextRegistry
}

// NewGateway creates a gateway with no active engine. Until Configure is
// called, enforce-policies mode fails every call with an operational error.
func NewGateway(cfg GatewayConfig) *Gateway {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	g := &Gateway{
		logger:   logger,
		metrics:  cfg.Metrics,
		audit:    cfg.Audit,
		registry: NewContextRegistry(),
	}
	g.mode.Store(int32(cfg.Mode))
	return g
}

// Registry returns the gateway's context registry.
func (g *Gateway) Registry() *ContextRegistry {
	return g.registry
}

// Mode returns the current enforcement mode.
func (g *Gateway) Mode() Mode {
	return Mode(g.mode.Load())
}

// SetMode switches the enforcement mode. The switch takes effect
// immediately for subsequent calls; in-flight calls complete under the
// mode they observed at entry.
func (g *Gateway) SetMode(m Mode) {
	old := Mode(g.mode.Swap(int32(m)))
	if old != m {
		g.logger.Info("enforcement mode changed",
			slog.String("from", old.String()),
			slog.String("to", m.String()))
	}
}

// Configure stores the engine factory, builds an engine from it, and
// installs the result as the active engine. A build failure leaves the
// previously active engine (or the inactive state) untouched.
func (g *Gateway) Configure(factory EngineFactory) error {
	if factory == nil {
		return operational("configure", "engine factory is required", nil)
	}
	engine, err := factory(&EngineEnv{Registry: g.registry})
	if err != nil {
		return operational("configure", "engine construction failed", err)
	}

	g.engineMu.Lock()
	g.factory = factory
	g.engine = engine
	g.engineMu.Unlock()

	g.metrics.RecordEngineSwap()
	g.logger.Info("decision engine configured")
	return nil
}

// Reload rebuilds the engine from the stored factory and swaps it in. The
// old engine keeps serving until the new one is fully built, and keeps
// serving unchanged if the build fails.
func (g *Gateway) Reload() error {
	g.engineMu.RLock()
	factory := g.factory
	g.engineMu.RUnlock()
	if factory == nil {
		return operational("reload", "gateway has never been configured", nil)
	}

	engine, err := factory(&EngineEnv{Registry: g.registry})
	if err != nil {
		return operational("reload", "engine construction failed", err)
	}

	g.engineMu.Lock()
	g.engine = engine
	g.engineMu.Unlock()

	g.metrics.RecordEngineSwap()
	g.logger.Info("decision engine reloaded")
	return nil
}

// Deactivate drops the active engine. Subsequent enforce-policies calls
// fail fast with an operational error until Configure or Reload installs a
// new engine; in-flight calls finish on the engine they already hold.
func (g *Gateway) Deactivate() {
	g.engineMu.Lock()
	g.engine = nil
	g.engineMu.Unlock()
	g.logger.Info("decision engine deactivated")
}

// currentEngine snapshots the active engine handle.
func (g *Gateway) currentEngine() (decision.Engine, error) {
	g.engineMu.RLock()
	engine := g.engine
	g.engineMu.RUnlock()
	if engine == nil {
		return nil, operational("enforce", "no active decision engine", nil)
	}
	return engine, nil
}

// Enforce authorizes one operation. Denial is reported through the outcome,
// not the error; a non-nil error always means an operational fault and is
// always accompanied by OutcomeDenied.
func (g *Gateway) Enforce(ctx context.Context, req *EnforceRequest) (Outcome, error) {
	start := time.Now()
	mode := g.Mode()

	if err := validateRequest(req); err != nil {
		return OutcomeDenied, err
	}

	// The bypass modes answer before any engine contact; the invalid mode
	// fails closed on every call until an administrator fixes it.
	switch mode {
	case ModeDenyAll:
		g.finish(req, mode, OutcomeDenied, "", Tally{}, start)
		return OutcomeDenied, nil
	case ModePermitAll:
		outcome := permitOutcome(req.Context)
		g.finish(req, mode, outcome, "", Tally{}, start)
		return outcome, nil
	case ModeEnforcePolicies:
	default:
		return OutcomeDenied, operational("enforce", "invalid enforcement mode", nil)
	}

	results, cid, err := g.evaluate(ctx, req)
	if err != nil {
		return OutcomeDenied, err
	}

	permit, tally := aggregate(results)
	outcome := OutcomeDenied
	if permit {
		outcome = permitOutcome(req.Context)
	}
	g.finish(req, mode, outcome, cid.String(), tally, start)
	return outcome, nil
}

// EnforceBatch authorizes a set of operations as one unit: every request is
// evaluated independently and the union of all results is aggregated once,
// so a single deny anywhere in the batch denies the whole batch. All
// requests are validated up front; any malformed request aborts the batch
// before the engine is contacted.
func (g *Gateway) EnforceBatch(ctx context.Context, reqs []*EnforceRequest) (Outcome, error) {
	start := time.Now()
	mode := g.Mode()

	if len(reqs) == 0 {
		return OutcomeDenied, operational("enforce-batch", "batch is empty", nil)
	}
	for _, req := range reqs {
		if err := validateRequest(req); err != nil {
			return OutcomeDenied, err
		}
	}

	switch mode {
	case ModeDenyAll:
		g.finishBatch(reqs, nil, mode, OutcomeDenied, Tally{}, start)
		return OutcomeDenied, nil
	case ModePermitAll:
		g.finishBatch(reqs, nil, mode, OutcomePermitted, Tally{}, start)
		return OutcomePermitted, nil
	case ModeEnforcePolicies:
	default:
		return OutcomeDenied, operational("enforce-batch", "invalid enforcement mode", nil)
	}

	var union []decision.Result
	cids := make([]string, 0, len(reqs))
	for _, req := range reqs {
		results, cid, err := g.evaluate(ctx, req)
		if err != nil {
			return OutcomeDenied, err
		}
		cids = append(cids, cid.String())
		// Plain append: duplicate results from overlapping requests are
		// kept, and under deny-biased aggregation duplicates cannot flip
		// the verdict.
		union = append(union, results...)
	}

	permit, tally := aggregate(union)
	outcome := OutcomeDenied
	if permit {
		outcome = OutcomePermitted
	}
	g.finishBatch(reqs, cids, mode, outcome, tally, start)
	return outcome, nil
}

// evaluate runs one request through the active engine: mint a correlation
// id, register the context, assemble the decision request, evaluate, and
// unregister. The deferred unregister covers every exit path, so the
// registry can never leak an entry.
func (g *Gateway) evaluate(ctx context.Context, req *EnforceRequest) ([]decision.Result, CorrelationID, error) {
	engine, err := g.currentEngine()
	if err != nil {
		return nil, 0, err
	}

	cid := g.source.next()
	g.registry.Register(cid, req.Context)
	g.metrics.SetRegisteredContexts(g.registry.Len())
	defer func() {
		g.registry.Unregister(cid)
		g.metrics.SetRegisteredContexts(g.registry.Len())
	}()

	dreq := assemble(req, cid)

	evalStart := time.Now()
	resp, err := engine.Evaluate(ctx, dreq)
	g.metrics.RecordEvaluation(time.Since(evalStart))
	if err != nil {
		g.logger.Error("decision engine evaluation failed",
			slog.String("action", req.ActionID),
			slog.String("pid", req.PID),
			slog.String("correlation_id", cid.String()),
			slog.Any("error", err))
		return nil, cid, operational("enforce", "decision engine evaluation failed", err)
	}

	for _, r := range resp.Results {
		g.metrics.RecordDecision(string(r.Decision))
		if r.Status != nil && r.Status.Code == decision.StatusProcessingError {
			g.metrics.RecordCompositionFailure()
		}
	}
	return resp.Results, cid, nil
}

// finish emits the telemetry for a completed single-request call.
func (g *Gateway) finish(req *EnforceRequest, mode Mode, outcome Outcome, cid string, tally Tally, start time.Time) {
	g.emit(req, mode, outcome, cid, tally, start, 0)
}

// finishBatch emits one event per batch request. Every event carries the
// batch-wide outcome and tally, marked with the batch size so consumers can
// tell shared counts apart from per-call ones.
func (g *Gateway) finishBatch(reqs []*EnforceRequest, cids []string, mode Mode, outcome Outcome, tally Tally, start time.Time) {
	for i, req := range reqs {
		cid := ""
		if i < len(cids) {
			cid = cids[i]
		}
		g.emit(req, mode, outcome, cid, tally, start, len(reqs))
	}
}

func (g *Gateway) emit(req *EnforceRequest, mode Mode, outcome Outcome, cid string, tally Tally, start time.Time, batch int) {
	g.metrics.RecordEnforcement(req.API, outcome.String())

	fields := []any{
		slog.String("action", req.ActionID),
		slog.String("api", req.API),
		slog.String("pid", req.PID),
		slog.String("subject", req.Context.Subject),
		slog.String("mode", mode.String()),
		slog.String("outcome", outcome.String()),
		slog.Int("permits", tally.Permits),
		slog.Int("denies", tally.Denies),
		slog.Int("indeterminates", tally.Indeterminates),
		slog.Int("not_applicables", tally.NotApplicables),
		slog.Int("unexpected", tally.Unexpected),
		slog.Duration("duration", time.Since(start)),
	}
	if batch > 0 {
		fields = append(fields, slog.Int("batch_size", batch))
	}
	g.logger.Info("enforcement decided", fields...)

	if g.audit != nil {
		g.audit.RecordEnforcement(AuditEvent{
			Time:          time.Now(),
			CorrelationID: cid,
			Subject:       req.Context.Subject,
			ActionID:      req.ActionID,
			API:           req.API,
			PID:           req.PID,
			Namespace:     req.Namespace,
			Mode:          mode.String(),
			Outcome:       outcome.String(),
			Tally:         tally,
			Batch:         batch,
			Duration:      time.Since(start),
		})
	}
}

// validateRequest rejects requests the assembly path cannot represent.
func validateRequest(req *EnforceRequest) error {
	if req == nil {
		return operational("enforce", "request is required", nil)
	}
	if req.Context == nil {
		return operational("enforce", "request context is required", nil)
	}
	if req.ActionID == "" {
		return operational("enforce", "action id is required", nil)
	}
	return nil
}

// permitOutcome maps a permit to its check-only variant when the context
// asked for one.
func permitOutcome(rc *RequestContext) Outcome {
	if rc.NoOp {
		return OutcomePermittedNoOp
	}
	return OutcomePermitted
}
