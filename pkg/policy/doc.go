// Package policy loads, generates, and composes the policy documents a
// decision engine evaluates against.
//
// Two document populations exist. Repository-wide documents are loaded once
// at startup from a configured directory and from a working directory of
// documents mechanically generated out of a security descriptor; together
// they form an immutable in-memory collection for the lifetime of the
// current engine instance. Resource-specific documents are resolved fresh on
// every request from a pluggable ResourceResolver and are never cached here.
//
// The Composer implements the engine's policy-lookup collaborator: per
// request it unions the repository collection with the optional resource
// document into a Set under the configured combining algorithm. Composition
// failures never escape as errors; they become a processing-error status the
// engine surfaces as an Indeterminate decision.
package policy
