package cli

import "strings"

// Matches returns a predicate over fully-qualified benchmark names. With
// no filters every name matches; otherwise a name matches when any filter
// is a plain character prefix of it (not a path-segment match).
func Matches(filters []string) func(string) bool {
	if len(filters) == 0 {
		return func(string) bool { return true }
	}
	return func(name string) bool {
		for _, f := range filters {
			if strings.HasPrefix(name, f) {
				return true
			}
		}
		return false
	}
}

// Select returns the names matching the filters, preserving their
// original declared order.
func Select(names, filters []string) []string {
	match := Matches(filters)
	var out []string
	for _, n := range names {
		if match(n) {
			out = append(out, n)
		}
	}
	return out
}
