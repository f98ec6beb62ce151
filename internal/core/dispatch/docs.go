// Package dispatch implements the broadcast-and-accept offer cascade that
// matches unclaimed tasks with candidates.
//
// The package has three moving parts:
//
//   - PendingOfferRegistry tracks every outstanding offer and guarantees
//     each resolves exactly once, whether by candidate response, window
//     expiry, or cancellation.
//   - Controller walks the ranked candidate sequence, one timed offer at
//     a time, and finalizes the run on the first accept, on exhaustion,
//     or on cancellation. The accepted signal triggers a single
//     conditional claim against storage, which arbitrates races between
//     concurrent claimers.
//   - Notifier fans the terminal result out to in-process subscribers so
//     the party that placed the task learns how the run ended.
//
// Registry and notifier state is process-local and deliberately volatile:
// a restart drops outstanding offers, and the dispatch sweep re-runs the
// cascade for any task still unclaimed in storage.
package dispatch
