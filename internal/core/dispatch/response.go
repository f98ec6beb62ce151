package dispatch

// Response is the signal that resolves a single pending offer.
// Every offer is resolved exactly once, by whichever source fires first:
// the candidate (accepted, denied), the expiry timer (expired), or an
// external cancellation (cancelled).
type Response int

const (
	// ResponseUnknown represents an invalid or undefined response.
	// This value (0) helps catch uninitialized Response values.
	ResponseUnknown Response = iota

	// ResponseAccepted means the candidate took the offer within its window.
	ResponseAccepted

	// ResponseDenied means the candidate explicitly declined the offer.
	ResponseDenied

	// ResponseExpired means the offer window elapsed with no answer.
	ResponseExpired

	// ResponseCancelled means the dispatch was cancelled while the offer
	// was outstanding.
	ResponseCancelled
)

// getResponseStrings returns a map of Response values to their string representations.
func getResponseStrings() map[Response]string {
	return map[Response]string{
		ResponseUnknown:   "Unknown",
		ResponseAccepted:  "Accepted",
		ResponseDenied:    "Denied",
		ResponseExpired:   "Expired",
		ResponseCancelled: "Cancelled",
	}
}

// String returns the human-readable name of the response.
// Implements the fmt.Stringer interface and is safe to call on any value.
func (r Response) String() string {
	if str, ok := getResponseStrings()[r]; ok {
		return str
	}
	return "Unknown"
}
