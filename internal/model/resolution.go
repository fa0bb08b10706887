package model

// ResolutionState identifies the terminal state of one resolution attempt.
type ResolutionState int

const (
	// StateNotFound means no candidate matched above the similarity threshold.
	StateNotFound ResolutionState = iota
	// StateResolved means exactly one candidate won and its ticker is final.
	StateResolved
	// StateAmbiguous means several plausible candidates remain and an
	// external disambiguation step must pick one.
	StateAmbiguous
)

// String returns a human-readable state name.
func (s ResolutionState) String() string {
	switch s {
	case StateResolved:
		return "resolved"
	case StateAmbiguous:
		return "ambiguous"
	case StateNotFound:
		return "not found"
	default:
		return "unknown"
	}
}

// Resolution is the outcome of one resolution attempt. Exactly one state
// holds: Ticker is set only when resolved, Candidates only when ambiguous.
type Resolution struct {
	State      ResolutionState
	Ticker     string
	Candidates []Candidate

	// Degraded is set when at least one catalog was unreachable during the
	// attempt, so a NotFound may reflect an outage rather than a bad query.
	Degraded bool
}
