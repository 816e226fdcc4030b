package pep

import (
	"context"
	"testing"

	"mercator-hq/themisto/pkg/attr"
	"mercator-hq/themisto/pkg/decision"
)

func TestContextResolver_ResolvesSubject(t *testing.T) {
	registry := NewContextRegistry()
	rc := &RequestContext{Subject: "carol"}
	registry.Register(CorrelationID(3), rc)

	req := testRequest()
	req.Context = rc
	ectx := decision.RequestContext{Request: assemble(req, CorrelationID(3))}

	resolver := NewContextResolver(registry)
	values, err := resolver.ResolveAttribute(context.Background(), attr.CategorySubject, attr.SubjectLoginID, ectx)
	if err != nil {
		t.Fatalf("ResolveAttribute() error = %v, want nil", err)
	}
	if len(values) != 1 || values[0] != "carol" {
		t.Errorf("ResolveAttribute() = %v, want [carol]", values)
	}
}

func TestContextResolver_ResolvesEnvironment(t *testing.T) {
	registry := NewContextRegistry()
	rc := &RequestContext{Environment: attr.Values{}}
	rc.Environment.Set(attr.EnvSecurity, "ssl")
	registry.Register(CorrelationID(9), rc)

	req := testRequest()
	req.Context = rc
	ectx := decision.RequestContext{Request: assemble(req, CorrelationID(9))}

	resolver := NewContextResolver(registry)
	values, err := resolver.ResolveAttribute(context.Background(), attr.CategoryEnvironment, attr.EnvSecurity, ectx)
	if err != nil {
		t.Fatalf("ResolveAttribute() error = %v, want nil", err)
	}
	if len(values) != 1 || values[0] != "ssl" {
		t.Errorf("ResolveAttribute() = %v, want [ssl]", values)
	}
}

func TestContextResolver_UnregisteredContextResolvesEmpty(t *testing.T) {
	registry := NewContextRegistry()

	req := testRequest()
	ectx := decision.RequestContext{Request: assemble(req, CorrelationID(404))}

	resolver := NewContextResolver(registry)
	values, err := resolver.ResolveAttribute(context.Background(), attr.CategorySubject, attr.SubjectLoginID, ectx)
	if err != nil {
		t.Fatalf("ResolveAttribute() error = %v, want nil", err)
	}
	if len(values) != 0 {
		t.Errorf("ResolveAttribute() = %v, want empty bag", values)
	}
}

func TestContextResolver_MissingCorrelationAttribute(t *testing.T) {
	registry := NewContextRegistry()

	// A request assembled outside the gateway path, with no correlation id.
	dreq := &attr.Request{}
	dreq.Add(attr.NewString(attr.CategoryAction, attr.ActionID, attr.ActionListObjects))
	ectx := decision.RequestContext{Request: dreq}

	resolver := NewContextResolver(registry)
	values, err := resolver.ResolveAttribute(context.Background(), attr.CategorySubject, attr.SubjectLoginID, ectx)
	if err != nil {
		t.Fatalf("ResolveAttribute() error = %v, want nil", err)
	}
	if len(values) != 0 {
		t.Errorf("ResolveAttribute() = %v, want empty bag", values)
	}
}

func TestContextResolver_UnknownAttributeResolvesEmpty(t *testing.T) {
	registry := NewContextRegistry()
	rc := &RequestContext{Subject: "dave"}
	registry.Register(CorrelationID(12), rc)

	req := testRequest()
	req.Context = rc
	ectx := decision.RequestContext{Request: assemble(req, CorrelationID(12))}

	resolver := NewContextResolver(registry)
	values, err := resolver.ResolveAttribute(context.Background(), attr.CategoryResource, attr.ObjectState, ectx)
	if err != nil {
		t.Fatalf("ResolveAttribute() error = %v, want nil", err)
	}
	if len(values) != 0 {
		t.Errorf("ResolveAttribute() = %v, want empty bag", values)
	}
}
