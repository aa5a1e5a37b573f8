package oafown

// LifetimeTracker implements the scope-depth stack discipline from
// spec.md §3/§4.4: EnterScope increments the current depth, ExitScope
// decrements it, and a Token is valid only while its bound
// LifetimeDepth() <= the tracker's current depth.
//
// Accessing a token after its scope has exited does not mutate the
// token's state machine — validity is a property the LifetimeTracker
// checks externally, not something the token enforces on itself (spec.md
// §4.4: "the token becomes invalid but the state machine is not mutated").
type LifetimeTracker struct {
	currentDepth int
	maxDepth     int
}

// NewLifetimeTracker returns a tracker bounding scope nesting at maxDepth.
func NewLifetimeTracker(maxDepth int) *LifetimeTracker {
	return &LifetimeTracker{maxDepth: maxDepth}
}

// CurrentDepth returns the current scope nesting depth.
func (l *LifetimeTracker) CurrentDepth() int { return l.currentDepth }

// MaxDepth returns the configured maximum scope nesting depth.
func (l *LifetimeTracker) MaxDepth() int { return l.maxDepth }

// EnterScope increments the current depth. Fails (returns false, depth
// unchanged) if already at MaxDepth.
func (l *LifetimeTracker) EnterScope() bool {
	if l.currentDepth >= l.maxDepth {
		return false
	}
	l.currentDepth++
	return true
}

// ExitScope decrements the current depth. Fails (returns false) if
// already at zero.
func (l *LifetimeTracker) ExitScope() bool {
	if l.currentDepth == 0 {
		return false
	}
	l.currentDepth--
	return true
}

// Valid reports whether t's bound lifetime depth is still within scope.
func (l *LifetimeTracker) Valid(t *Token) bool {
	return t.LifetimeDepth() <= l.currentDepth
}
