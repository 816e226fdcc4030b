package policy

import (
	"errors"
	"testing"
)

func TestLookupAlgorithm_ByName(t *testing.T) {
	alg, err := LookupAlgorithm("deny-overrides")
	if err != nil {
		t.Fatalf("LookupAlgorithm() error = %v, want nil", err)
	}
	if alg.Name != "deny-overrides" {
		t.Errorf("alg.Name = %q, want %q", alg.Name, "deny-overrides")
	}
	if alg.URI != "urn:oasis:names:tc:xacml:1.0:policy-combining-algorithm:deny-overrides" {
		t.Errorf("alg.URI = %q, want the canonical deny-overrides URI", alg.URI)
	}
}

func TestLookupAlgorithm_ByURI(t *testing.T) {
	uri := "urn:oasis:names:tc:xacml:1.0:policy-combining-algorithm:first-applicable"
	alg, err := LookupAlgorithm(uri)
	if err != nil {
		t.Fatalf("LookupAlgorithm() error = %v, want nil", err)
	}
	if alg.Name != "first-applicable" {
		t.Errorf("alg.Name = %q, want %q", alg.Name, "first-applicable")
	}
}

func TestLookupAlgorithm_Unknown(t *testing.T) {
	_, err := LookupAlgorithm("majority-vote")
	if err == nil {
		t.Fatal("LookupAlgorithm() error = nil, want error")
	}
	var unknownErr *UnknownAlgorithmError
	if !errors.As(err, &unknownErr) {
		t.Errorf("error type = %T, want *UnknownAlgorithmError", err)
	}
	if unknownErr.Name != "majority-vote" {
		t.Errorf("error name = %q, want %q", unknownErr.Name, "majority-vote")
	}
}

func TestAlgorithmNames_Sorted(t *testing.T) {
	names := AlgorithmNames()
	if len(names) == 0 {
		t.Fatal("AlgorithmNames() returned no names")
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("AlgorithmNames() not sorted: %q before %q", names[i-1], names[i])
		}
	}
	for _, name := range names {
		if _, err := LookupAlgorithm(name); err != nil {
			t.Errorf("LookupAlgorithm(%q) error = %v for listed name", name, err)
		}
	}
}
