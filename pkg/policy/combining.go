package policy

import "sort"

// Algorithm identifies the combining algorithm a decision engine applies
// when more than one document in a set is applicable. This layer only
// selects and supplies the identifier; the semantics are the engine's.
type Algorithm struct {
	// Name is the short configuration-facing identifier.
	Name string

	// URI is the canonical identifier handed to the engine.
	URI string
}

// The combining algorithms known at build time. Configuration resolves a
// name against this registry eagerly; unknown names fail configuration, not
// the first request.
var algorithms = map[string]Algorithm{
	"deny-overrides": {
		Name: "deny-overrides",
		URI:  "urn:oasis:names:tc:xacml:1.0:policy-combining-algorithm:deny-overrides",
	},
	"permit-overrides": {
		Name: "permit-overrides",
		URI:  "urn:oasis:names:tc:xacml:1.0:policy-combining-algorithm:permit-overrides",
	},
	"first-applicable": {
		Name: "first-applicable",
		URI:  "urn:oasis:names:tc:xacml:1.0:policy-combining-algorithm:first-applicable",
	},
	"ordered-deny-overrides": {
		Name: "ordered-deny-overrides",
		URI:  "urn:oasis:names:tc:xacml:1.1:policy-combining-algorithm:ordered-deny-overrides",
	},
	"ordered-permit-overrides": {
		Name: "ordered-permit-overrides",
		URI:  "urn:oasis:names:tc:xacml:1.1:policy-combining-algorithm:ordered-permit-overrides",
	},
	"only-one-applicable": {
		Name: "only-one-applicable",
		URI:  "urn:oasis:names:tc:xacml:1.0:policy-combining-algorithm:only-one-applicable",
	},
}

// LookupAlgorithm resolves a combining-algorithm name. Both the short name
// and the full URI are accepted.
func LookupAlgorithm(name string) (Algorithm, error) {
	if alg, ok := algorithms[name]; ok {
		return alg, nil
	}
	for _, alg := range algorithms {
		if alg.URI == name {
			return alg, nil
		}
	}
	return Algorithm{}, &UnknownAlgorithmError{Name: name}
}

// AlgorithmNames returns the registered short names, sorted.
func AlgorithmNames() []string {
	names := make([]string, 0, len(algorithms))
	for name := range algorithms {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
