package complaint

// reachable defines the status state machine. Resolved and Cancelled are
// terminal except for the explicit reopen out of Resolved.
var reachable = map[string][]string{
	StatusOpen:       {StatusInProgress, StatusResolved, StatusCancelled},
	StatusInProgress: {StatusResolved, StatusCancelled},
	StatusResolved:   {StatusOpen},
	StatusCancelled:  {},
}

// ValidStatus reports whether s is a known complaint status.
func ValidStatus(s string) bool {
	_, ok := reachable[s]
	return ok
}

// CanTransition reports whether the status change from -> to is allowed.
// Self transitions are not status changes and are rejected here; callers
// wanting a status-preserving audit entry append history directly.
func CanTransition(from, to string) bool {
	for _, next := range reachable[from] {
		if next == to {
			return true
		}
	}
	return false
}

// RequiresNote reports whether the transition needs a closing note.
func RequiresNote(from, to string) bool {
	return from == StatusInProgress && to == StatusResolved
}

// ValidPriority reports whether p is a known complaint priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}
