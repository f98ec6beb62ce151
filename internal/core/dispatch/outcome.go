package dispatch

// Outcome is the terminal result of a whole dispatch run, as opposed to
// Response which resolves a single offer inside the run.
type Outcome int

const (
	// OutcomeUnknown represents an invalid or undefined outcome.
	// This value (0) helps catch uninitialized Outcome values.
	OutcomeUnknown Outcome = iota

	// OutcomeAssigned means exactly one candidate claimed the task.
	OutcomeAssigned

	// OutcomeExhausted means every ranked candidate was offered the task
	// and none accepted.
	OutcomeExhausted

	// OutcomeCancelled means the dispatch was cancelled before a claim
	// succeeded.
	OutcomeCancelled
)

// getOutcomeStrings returns a map of Outcome values to their string representations.
func getOutcomeStrings() map[Outcome]string {
	return map[Outcome]string{
		OutcomeUnknown:   "Unknown",
		OutcomeAssigned:  "Assigned",
		OutcomeExhausted: "Exhausted",
		OutcomeCancelled: "Cancelled",
	}
}

// String returns the human-readable name of the outcome.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (o Outcome) String() string {
	if str, ok := getOutcomeStrings()[o]; ok {
		return str
	}
	return "Unknown"
}
