package xlformula

import (
	"fmt"
	"strings"
)

// Unlimited is the sentinel argument name marking an open-ended slot. A
// required or optional sequence ending in Unlimited accepts any number of
// arguments in that position.
const Unlimited = "..."

// argSpec holds a descriptor's effective required and optional argument
// names. Names are documentation only; arguments are always bound
// positionally. The effective sequences are computed once, when the
// descriptor is defined, with inherited ancestor sequences concatenated
// ahead of the descriptor's own.
type argSpec struct {
	required []string
	optional []string
}

// inheritSpec chains the argument sequences of every base ahead of the
// descriptor's own, in base-to-descendant order
func inheritSpec(own argSpec, bases []*Descriptor) argSpec {
	if len(bases) == 0 {
		return own
	}
	var required, optional []string
	for _, base := range bases {
		required = append(required, base.spec.required...)
		optional = append(optional, base.spec.optional...)
	}
	required = append(required, own.required...)
	optional = append(optional, own.optional...)
	return argSpec{required: required, optional: optional}
}

// isOpenEnded reports whether the spec accepts an unbounded argument count
func (s argSpec) isOpenEnded() bool {
	return containsUnlimited(s.required) || containsUnlimited(s.optional)
}

// validate checks a supplied argument count against the spec. A sequence
// ending in Unlimited stretches to whatever count was supplied, so it can
// never be violated on its own side.
func (s argSpec) validate(name string, supplied int) error {
	requiredCount := len(s.required)
	if containsUnlimited(s.required) {
		requiredCount = supplied
	}
	optionalCount := len(s.optional)
	if containsUnlimited(s.optional) {
		optionalCount = supplied
	}

	if supplied < requiredCount {
		missing := s.required[supplied:]
		return NewBuildError(ErrCodeTooFewArguments, fmt.Sprintf(
			"'%s' requires %d arguments, but %d were given: arguments %s are missing",
			name, requiredCount, supplied, formatArgNames(missing)))
	}
	if supplied > requiredCount+optionalCount {
		return NewBuildError(ErrCodeTooManyArguments, fmt.Sprintf(
			"'%s' only accepts %d required and %d optional arguments, but %d were given",
			name, requiredCount, optionalCount, supplied))
	}
	return nil
}

func containsUnlimited(names []string) bool {
	for _, name := range names {
		if name == Unlimited {
			return true
		}
	}
	return false
}

func formatArgNames(names []string) string {
	quoted := make([]string, len(names))
	for i, name := range names {
		quoted[i] = "'" + name + "'"
	}
	return "(" + strings.Join(quoted, ", ") + ")"
}
