package policy

import (
	"fmt"
	"log/slog"
	"sort"

	"mercator-hq/themisto/pkg/attr"
	"mercator-hq/themisto/pkg/decision"
)

// Finder is the policy-lookup collaborator a decision engine consults while
// evaluating a request.
type Finder interface {
	// FindPolicy assembles the policy set applicable to the request behind
	// ectx. It never fails hard: composition trouble is reported through the
	// result's Status.
	FindPolicy(ectx decision.EvaluationContext) *FinderResult
}

// FinderResult carries either an assembled policy set or the processing
// error that prevented assembly. Exactly one of Set and Status is non-nil.
type FinderResult struct {
	Set    *Set
	Status *decision.Status
}

// ResourceResolver optionally resolves one resource-specific policy document
// for a resource identifier, typically from the object's own content.
// Returning (nil, nil) means no document exists for the resource, which is
// not an error.
type ResourceResolver interface {
	ResolvePolicy(pid string) (*Document, error)
}

// ComposerConfig configures a Composer.
type ComposerConfig struct {
	// RepositoryDir holds operator-maintained repository-wide documents.
	RepositoryDir string

	// GeneratedDir holds the generated-document snapshot produced by the
	// Generator. Empty means no generated documents.
	GeneratedDir string

	// Algorithm is the combining-algorithm name; resolved eagerly.
	Algorithm string

	// ResourceResolver resolves per-resource documents. Optional.
	ResourceResolver ResourceResolver

	// Loader reads documents from disk. Nil selects a default loader.
	Loader *Loader

	Logger *slog.Logger
}

// Composer produces, per request, the policy set the engine evaluates
// against. The repository-wide collection is loaded once at construction and
// is immutable afterwards; reloading policies means building a new Composer
// (and with it a new engine instance).
type Composer struct {
	algorithm Algorithm
	resolver  ResourceResolver
	logger    *slog.Logger

	// repository is the immutable startup collection, in stable name order.
	repository []*Document
}

// NewComposer loads the repository-wide document collection and resolves the
// combining algorithm. Generated documents are loaded first and operator
// documents second, so an operator document wins a name collision.
func NewComposer(cfg ComposerConfig) (*Composer, error) {
	algorithm, err := LookupAlgorithm(cfg.Algorithm)
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "policy.composer")

	loader := cfg.Loader
	if loader == nil {
		loader = NewLoader(nil)
	}

	byName := make(map[string]*Document)
	for _, dir := range []string{cfg.GeneratedDir, cfg.RepositoryDir} {
		if dir == "" {
			continue
		}
		docs, err := loader.LoadDirectory(dir)
		if err != nil {
			return nil, err
		}
		for _, doc := range docs {
			if prev, ok := byName[doc.Name]; ok {
				logger.Warn("policy document name collision, later load wins",
					"name", doc.Name,
					"replaced", prev.Source,
					"kept", doc.Source,
				)
			}
			byName[doc.Name] = doc
		}
	}

	repository := make([]*Document, 0, len(byName))
	for _, doc := range byName {
		repository = append(repository, doc)
	}
	sort.Slice(repository, func(i, j int) bool { return repository[i].Name < repository[j].Name })

	logger.Info("repository policies loaded",
		"count", len(repository),
		"algorithm", algorithm.Name,
	)

	return &Composer{
		algorithm:  algorithm,
		resolver:   cfg.ResourceResolver,
		logger:     logger,
		repository: repository,
	}, nil
}

// RepositoryCount returns the number of repository-wide documents.
func (c *Composer) RepositoryCount() int {
	return len(c.repository)
}

// Algorithm returns the resolved combining algorithm.
func (c *Composer) Algorithm() Algorithm {
	return c.algorithm
}

// FindPolicy implements Finder. It copies the repository collection, appends
// a resource-specific document when the request names a resource the
// resolver knows, and wraps both in a set under the configured algorithm.
// Any failure — including a panicking resolver — is converted into a
// processing-error status so the evaluation degrades to Indeterminate
// instead of crashing.
func (c *Composer) FindPolicy(ectx decision.EvaluationContext) (result *FinderResult) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("policy composition panicked", "panic", r)
			result = &FinderResult{
				Status: decision.ProcessingError(fmt.Errorf("policy composition panicked: %v", r)),
			}
		}
	}()

	docs := make([]*Document, len(c.repository), len(c.repository)+1)
	copy(docs, c.repository)

	if pid, ok := ectx.Single(attr.CategoryResource, attr.ObjectPID); ok && pid != "" && c.resolver != nil {
		doc, err := c.resolver.ResolvePolicy(pid)
		if err != nil {
			c.logger.Warn("resource policy resolution failed",
				"pid", pid,
				"error", err,
			)
			return &FinderResult{Status: decision.ProcessingError(err)}
		}
		if doc != nil {
			c.logger.Debug("appended resource policy", "pid", pid, "name", doc.Name)
			docs = append(docs, doc)
		}
	}

	return &FinderResult{Set: &Set{
		Algorithm: c.algorithm,
		Documents: docs,
	}}
}
