package dispatch

import (
	"errors"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// ErrOfferAlreadyPending is returned by Register when an unresolved offer
// already exists for the same task and candidate pair.
var ErrOfferAlreadyPending = errors.New("offer already pending for this task and candidate")

type offerKey struct {
	taskID      kernel.UUID
	candidateID kernel.UUID
}

type pendingOffer struct {
	signal chan Response
	timer  *time.Timer
}

// PendingOfferRegistry tracks every outstanding offer in the process and
// guarantees each one resolves exactly once.
//
// An offer is keyed by (task, candidate). Register arms an expiry timer;
// whichever of candidate response, timer, or cancellation reaches the
// entry first wins, removes it, and delivers the Response on the signal
// channel. Later resolution attempts find no entry and report false,
// which callers treat as a benign no-op rather than an error.
//
// The registry is process-local state. Offers do not survive a restart;
// unclaimed tasks are picked up again by the dispatch sweep.
type PendingOfferRegistry struct {
	mu     sync.Mutex
	offers map[offerKey]*pendingOffer
}

// NewPendingOfferRegistry creates an empty registry.
func NewPendingOfferRegistry() *PendingOfferRegistry {
	return &PendingOfferRegistry{
		offers: make(map[offerKey]*pendingOffer),
	}
}

// Register records a new pending offer and returns the channel its single
// Response will arrive on. The offer expires after ttl: if nothing else
// resolves it first, the registry resolves it with ResponseExpired.
//
// Returns ErrOfferAlreadyPending if an unresolved offer for the same task
// and candidate pair is still registered.
func (r *PendingOfferRegistry) Register(taskID kernel.UUID, candidateID kernel.UUID, ttl time.Duration) (<-chan Response, error) {
	if err := taskID.Validate(); err != nil {
		return nil, err
	}
	if err := candidateID.Validate(); err != nil {
		return nil, err
	}

	key := offerKey{taskID: taskID, candidateID: candidateID}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.offers[key]; ok {
		return nil, ErrOfferAlreadyPending
	}

	offer := &pendingOffer{
		// Buffered so resolution never blocks on the reader.
		signal: make(chan Response, 1),
	}
	offer.timer = time.AfterFunc(ttl, func() {
		r.Resolve(taskID, candidateID, ResponseExpired)
	})
	r.offers[key] = offer

	return offer.signal, nil
}

// Resolve delivers resp to the pending offer for the given task and
// candidate pair and removes it from the registry. Returns true if the
// offer was still pending, false if it was already resolved or never
// existed (a late accept after expiry, a duplicate deny, and so on).
func (r *PendingOfferRegistry) Resolve(taskID kernel.UUID, candidateID kernel.UUID, resp Response) bool {
	key := offerKey{taskID: taskID, candidateID: candidateID}

	r.mu.Lock()
	offer, ok := r.offers[key]
	if ok {
		delete(r.offers, key)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	offer.timer.Stop()
	offer.signal <- resp
	return true
}

// CancelTask resolves every pending offer for the task with
// ResponseCancelled and returns how many offers were resolved. Under the
// sequential cascade at most one offer is outstanding per task, but the
// registry does not rely on that.
func (r *PendingOfferRegistry) CancelTask(taskID kernel.UUID) int {
	r.mu.Lock()
	resolved := make([]*pendingOffer, 0, 1)
	for key, offer := range r.offers {
		if key.taskID.IsEqual(taskID) {
			delete(r.offers, key)
			resolved = append(resolved, offer)
		}
	}
	r.mu.Unlock()

	for _, offer := range resolved {
		offer.timer.Stop()
		offer.signal <- ResponseCancelled
	}
	return len(resolved)
}

// PendingCount reports how many offers are currently unresolved.
func (r *PendingOfferRegistry) PendingCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.offers)
}
