// Package pep implements the policy enforcement point: the gateway every
// repository operation passes through before it is allowed to proceed.
//
// A Gateway correlates each call with the caller's request context, builds a
// decision request from a per-operation attribute table, hands it to the
// active decision engine, and aggregates the returned decisions with a
// deny-biased rule: at least one Permit and no Deny, Indeterminate, or
// unexpected codes, or the call is denied.
//
// The gateway owns its correlation-id source and context registry, so
// independent Gateway instances never interfere. The decision engine handle
// is hot-swappable: Configure and Reload replace it atomically while
// evaluations in flight finish against the engine they started with.
package pep
