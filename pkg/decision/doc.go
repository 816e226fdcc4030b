// Package decision defines the boundary to the external decision engine.
//
// The engine itself — target matching, condition evaluation, combining
// algorithm semantics — is a collaborator behind the Engine interface. This
// package holds the vocabulary both sides share: the Decision enumeration,
// per-result Status codes, the evaluation context resolvers consult during an
// evaluation, and the AttributeResolver plug point for external attribute
// sources.
//
// A concrete engine suitable for wiring and tests lives in the engine
// subpackage; it exercises the full composition path without interpreting
// policy rules.
package decision
