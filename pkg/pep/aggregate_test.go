package pep

import (
	"testing"

	"mercator-hq/themisto/pkg/decision"
)

func results(decisions ...decision.Decision) []decision.Result {
	rs := make([]decision.Result, len(decisions))
	for i, d := range decisions {
		rs[i] = decision.Result{Decision: d}
	}
	return rs
}

func TestAggregate_DenyBiased(t *testing.T) {
	tests := []struct {
		name   string
		input  []decision.Result
		permit bool
	}{
		{
			name:   "empty set denies",
			input:  nil,
			permit: false,
		},
		{
			name:   "single permit",
			input:  results(decision.Permit),
			permit: true,
		},
		{
			name:   "single deny",
			input:  results(decision.Deny),
			permit: false,
		},
		{
			name:   "permit and deny",
			input:  results(decision.Permit, decision.Deny),
			permit: false,
		},
		{
			name:   "permit and indeterminate",
			input:  results(decision.Permit, decision.Indeterminate),
			permit: false,
		},
		{
			name:   "permit and not-applicable",
			input:  results(decision.Permit, decision.NotApplicable),
			permit: true,
		},
		{
			name:   "only not-applicable",
			input:  results(decision.NotApplicable, decision.NotApplicable),
			permit: false,
		},
		{
			name:   "many permits one deny",
			input:  results(decision.Permit, decision.Permit, decision.Permit, decision.Deny),
			permit: false,
		},
		{
			name:   "permit and unexpected code",
			input:  results(decision.Permit, decision.Decision("Maybe")),
			permit: false,
		},
		{
			name:   "only unexpected code",
			input:  results(decision.Decision("Maybe")),
			permit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			permit, tally := aggregate(tt.input)
			if permit != tt.permit {
				t.Errorf("aggregate() permit = %v, want %v", permit, tt.permit)
			}
			if tally.Total() != len(tt.input) {
				t.Errorf("tally.Total() = %d, want %d", tally.Total(), len(tt.input))
			}
		})
	}
}

func TestAggregate_TallyCounts(t *testing.T) {
	input := results(
		decision.Permit, decision.Permit,
		decision.Deny,
		decision.Indeterminate,
		decision.NotApplicable, decision.NotApplicable, decision.NotApplicable,
		decision.Decision("Bogus"),
	)

	_, tally := aggregate(input)

	if tally.Permits != 2 {
		t.Errorf("tally.Permits = %d, want 2", tally.Permits)
	}
	if tally.Denies != 1 {
		t.Errorf("tally.Denies = %d, want 1", tally.Denies)
	}
	if tally.Indeterminates != 1 {
		t.Errorf("tally.Indeterminates = %d, want 1", tally.Indeterminates)
	}
	if tally.NotApplicables != 3 {
		t.Errorf("tally.NotApplicables = %d, want 3", tally.NotApplicables)
	}
	if tally.Unexpected != 1 {
		t.Errorf("tally.Unexpected = %d, want 1", tally.Unexpected)
	}
}
