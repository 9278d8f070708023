package optic

// Kind tells how many foci an Optic addresses.
type Kind int

const (
	// KindLens addresses exactly one focus.
	KindLens Kind = iota

	// KindOptional addresses zero or one focus.
	KindOptional

	// KindTraversal addresses zero or more foci.
	KindTraversal
)

// String provides a string representation of Kind for logging and debugging.
func (k Kind) String() string {
	switch k {
	case KindLens:
		return "lens"
	case KindOptional:
		return "optional"
	case KindTraversal:
		return "traversal"
	default:
		return "unknown"
	}
}

// join returns the kind of a composition.
func join(a, b Kind) Kind {
	return max(a, b)
}
