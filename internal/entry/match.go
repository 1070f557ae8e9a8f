package entry

// NameMatcher selects entries by name. The zero value matches nothing;
// use AnyName or Named to construct one.
type NameMatcher struct {
	valid bool
	any   bool
	name  string
}

// AnyName returns a matcher that matches every entry.
func AnyName() NameMatcher {
	return NameMatcher{valid: true, any: true}
}

// Named returns a matcher that matches entries whose attribute name equals
// name exactly.
func Named(name string) NameMatcher {
	return NameMatcher{valid: true, name: name}
}

// IsAny reports whether the matcher is the wildcard.
func (m NameMatcher) IsAny() bool {
	return m.valid && m.any
}

// Matches reports whether the entry satisfies the matcher.
func (m NameMatcher) Matches(e *Entry) bool {
	if !m.valid || e == nil {
		return false
	}
	if m.any {
		return true
	}
	return e.Attributes.Name == m.name
}

// String returns the string representation of the matcher.
func (m NameMatcher) String() string {
	switch {
	case !m.valid:
		return "none"
	case m.any:
		return "any"
	default:
		return "name=" + m.name
	}
}
