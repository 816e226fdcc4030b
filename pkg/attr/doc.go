// Package attr defines the attribute model used to describe authorization
// decision requests.
//
// An operation is described as four sets of typed, possibly multi-valued
// attributes: Subject (who is calling), Action (what they are doing),
// Resource (what they are doing it to), and Environment (ambient facts such
// as transport security). A Request bundles the four sets and is the unit
// handed to a decision engine for evaluation.
//
// Attribute identifiers are URNs under the urn:themisto:names:authz:2.0
// namespace; the canonical identifiers for repository operations live in
// ids.go.
package attr
