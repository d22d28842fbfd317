package session

// State is the authentication state of a Manager.
type State int

const (
	Unknown State = iota // before the first check
	Checking
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Checking:
		return "checking"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// resolved reports whether s is a terminal state.
func (s State) resolved() bool {
	return s == Authenticated || s == Anonymous
}
