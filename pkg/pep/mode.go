package pep

// Mode is the administrative enforcement mode. It is an override switch: the
// two bypass modes answer without contacting the decision engine, and the
// invalid mode fails every call until an administrator corrects it.
type Mode int

const (
	// ModeInvalid is the zero value, reachable only through
	// misconfiguration. Every enforcement call fails with an operational
	// error while it is set.
	ModeInvalid Mode = iota

	// ModeEnforcePolicies evaluates every call against the active engine.
	ModeEnforcePolicies

	// ModePermitAll permits every call without contacting the engine.
	ModePermitAll

	// ModeDenyAll denies every call without contacting the engine.
	ModeDenyAll
)

// ParseMode parses a configuration mode string. Unrecognized strings parse
// to ModeInvalid rather than an error: a misconfigured mode must fail
// closed at call time, not fall back to a default.
func ParseMode(s string) Mode {
	switch s {
	case "enforce-policies":
		return ModeEnforcePolicies
	case "permit-all":
		return ModePermitAll
	case "deny-all":
		return ModeDenyAll
	default:
		return ModeInvalid
	}
}

// String returns the configuration name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeEnforcePolicies:
		return "enforce-policies"
	case ModePermitAll:
		return "permit-all"
	case ModeDenyAll:
		return "deny-all"
	default:
		return "invalid"
	}
}
