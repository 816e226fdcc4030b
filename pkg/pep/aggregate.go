package pep

import "mercator-hq/themisto/pkg/decision"

// Tally counts decision results by code. Unexpected counts codes outside
// the known enumeration; they are unreported failures and always force a
// deny, so a future or broken engine can never be silently permissive.
type Tally struct {
	Permits        int
	Denies         int
	Indeterminates int
	NotApplicables int
	Unexpected     int
}

// Total returns the number of counted results.
func (t Tally) Total() int {
	return t.Permits + t.Denies + t.Indeterminates + t.NotApplicables + t.Unexpected
}

// aggregate applies the deny-biased rule to a set of decision results: the
// aggregate is a permit iff at least one result permits and none denies, is
// indeterminate, or carries an unexpected code. NotApplicable results never
// block a permit and never grant one. An empty set denies.
func aggregate(results []decision.Result) (bool, Tally) {
	var t Tally
	for _, r := range results {
		switch r.Decision {
		case decision.Permit:
			t.Permits++
		case decision.Deny:
			t.Denies++
		case decision.Indeterminate:
			t.Indeterminates++
		case decision.NotApplicable:
			t.NotApplicables++
		default:
			t.Unexpected++
		}
	}

	permit := t.Permits >= 1 && t.Denies == 0 && t.Indeterminates == 0 && t.Unexpected == 0
	return permit, t
}
