package dispatch

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/candidate"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrDispatchInProgress is returned when Dispatch is called for a task
	// that already has an active offer cascade in this process.
	ErrDispatchInProgress = errors.New("dispatch already in progress for this task")

	// errOfferUndeliverable marks an offer that never reached its candidate
	// and should be skipped without consuming its window.
	errOfferUndeliverable = errors.New("offer undeliverable")
)

// Config holds the tunable parameters of the offer cascade.
type Config struct {
	// OfferTTL is how long each candidate has to answer an offer.
	OfferTTL time.Duration

	// FulfillmentRadiusMeters bounds the candidate search for
	// fulfillment tasks.
	FulfillmentRadiusMeters float64

	// CarriageRadiusMeters bounds the candidate search for
	// carriage tasks.
	CarriageRadiusMeters float64
}

func (c Config) validate() error {
	if c.OfferTTL <= 0 {
		return errs.NewValueIsRequiredError("offerTTL")
	}
	if c.FulfillmentRadiusMeters <= 0 {
		return errs.NewValueIsRequiredError("fulfillmentRadiusMeters")
	}
	if c.CarriageRadiusMeters <= 0 {
		return errs.NewValueIsRequiredError("carriageRadiusMeters")
	}
	return nil
}

func (c Config) radiusFor(kind task.Kind) float64 {
	if kind == task.CarriageAssignment {
		return c.CarriageRadiusMeters
	}
	return c.FulfillmentRadiusMeters
}

// Result summarizes a finished dispatch run.
type Result struct {
	Outcome    Outcome
	AssigneeID *kernel.UUID
	OffersMade int
}

// Controller drives the offer cascade for one task at a time per task:
// rank the eligible candidates nearest first, offer the task to each in
// turn with a bounded response window, and finalize on the first accept,
// on cascade exhaustion, or on cancellation.
//
// The accepted signal triggers exactly one conditional claim against
// storage; storage arbitrates races between concurrent claimers, never
// the controller's own bookkeeping.
type Controller struct {
	registry   *PendingOfferRegistry
	notifier   *Notifier
	uowFactory ports.UnitOfWorkFactory
	channel    ports.OfferChannel
	ranker     services.CandidateRanker
	cfg        Config
	logger     *slog.Logger

	mu     sync.Mutex
	active map[kernel.UUID]*cascadeState
}

// cascadeState is the per-run bookkeeping entry held while a cascade is
// active. The cancelled flag lets Cancel reach a run even in the moments
// when it has no offer registered.
type cascadeState struct {
	cancelled bool
}

// NewController creates a Controller with its collaborators.
func NewController(
	registry *PendingOfferRegistry,
	notifier *Notifier,
	uowFactory ports.UnitOfWorkFactory,
	channel ports.OfferChannel,
	cfg Config,
	logger *slog.Logger,
) (*Controller, error) {
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if uowFactory == nil {
		return nil, errs.NewValueIsRequiredError("uowFactory")
	}
	if channel == nil {
		return nil, errs.NewValueIsRequiredError("channel")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}

	return &Controller{
		registry:   registry,
		notifier:   notifier,
		uowFactory: uowFactory,
		channel:    channel,
		ranker:     services.NewCandidateRanker(),
		cfg:        cfg,
		logger:     logger,
		active:     make(map[kernel.UUID]*cascadeState),
	}, nil
}

// Registry exposes the pending offer registry for response submission.
func (c *Controller) Registry() *PendingOfferRegistry {
	return c.registry
}

// Notifier exposes the terminal notification fan-out.
func (c *Controller) Notifier() *Notifier {
	return c.notifier
}

// Accept resolves the pending offer for the pair with ResponseAccepted.
// Returns false when no such offer is outstanding, for example when the
// window already expired or the cascade moved on.
func (c *Controller) Accept(taskID kernel.UUID, candidateID kernel.UUID) bool {
	return c.registry.Resolve(taskID, candidateID, ResponseAccepted)
}

// Deny resolves the pending offer for the pair with ResponseDenied,
// advancing the cascade immediately instead of waiting out the window.
// Returns false when no such offer is outstanding.
func (c *Controller) Deny(taskID kernel.UUID, candidateID kernel.UUID) bool {
	return c.registry.Resolve(taskID, candidateID, ResponseDenied)
}

// CancelOffers resolves every outstanding offer of the task with
// ResponseCancelled and returns how many were resolved. A return of zero
// means no cascade was waiting and the caller must produce the terminal
// cancellation notification itself.
func (c *Controller) CancelOffers(taskID kernel.UUID) int {
	return c.registry.CancelTask(taskID)
}

// Cancel cancels the dispatch of the task. The stored task moves to
// Cancelled first, so a concurrent accept can no longer claim it. An
// active cascade is then flagged and any outstanding offer resolved, so
// the run unwinds promptly and produces the terminal notification even
// when Cancel lands between two offers. With no cascade running in this
// process, Cancel produces the notification itself.
//
// Cancelling a task that already reached a terminal status returns the
// storage error, typically ports.ErrTaskAlreadyFinalized.
func (c *Controller) Cancel(ctx context.Context, taskID kernel.UUID) error {
	if err := taskID.Validate(); err != nil {
		return err
	}

	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	cancelled, err := uow.TaskRepository().ConditionalCancel(ctx, taskID)
	if err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.Commit(ctx); err != nil {
		return err
	}

	flagged := c.flagCancelled(taskID)
	resolved := c.registry.CancelTask(taskID)
	if !flagged && resolved == 0 {
		c.finish(ctx, Notification{
			TaskID:     cancelled.ID(),
			Outcome:    OutcomeCancelled,
			OccurredAt: time.Now().UTC(),
		})
	}
	return nil
}

// Dispatch runs the full offer cascade for the task and blocks until the
// run reaches a terminal outcome or ctx is done. A ctx error leaves the
// task unclaimed in storage, where the sweep can pick it up again.
//
// Only one cascade per task may run in a process; a second call while one
// is active returns ErrDispatchInProgress.
func (c *Controller) Dispatch(ctx context.Context, taskID kernel.UUID) (Result, error) {
	if err := taskID.Validate(); err != nil {
		return Result{}, err
	}
	if !c.tryAcquire(taskID) {
		return Result{}, ErrDispatchInProgress
	}
	defer c.release(taskID)

	t, ranked, err := c.prepare(ctx, taskID)
	if err != nil {
		return Result{}, err
	}

	c.logger.Info("dispatch started",
		"taskID", t.ID().String(),
		"kind", t.Kind().String(),
		"candidates", len(ranked))

	offersMade := 0
	for _, rc := range ranked {
		// A cancellation can land while no offer is registered; the flag
		// keeps the cascade from offering a cancelled task to anyone else.
		if c.isCancelled(taskID) {
			return c.finalizeCancelled(ctx, t, offersMade)
		}

		resp, err := c.offerAndAwait(ctx, t, rc.Candidate)
		if errors.Is(err, errOfferUndeliverable) {
			continue
		}
		if err != nil {
			return Result{}, err
		}
		offersMade++

		switch resp {
		case ResponseAccepted:
			return c.finalizeAssigned(ctx, t, rc.Candidate, offersMade)
		case ResponseCancelled:
			return c.finalizeCancelled(ctx, t, offersMade)
		case ResponseDenied, ResponseExpired:
			c.logger.Info("offer declined, advancing cascade",
				"taskID", t.ID().String(),
				"candidateID", rc.Candidate.ID().String(),
				"response", resp.String())
		case ResponseUnknown:
			// Cannot be produced by the registry.
		}
	}

	if c.isCancelled(taskID) {
		return c.finalizeCancelled(ctx, t, offersMade)
	}
	return c.finalizeExhausted(ctx, t, offersMade)
}

func (c *Controller) tryAcquire(taskID kernel.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[taskID]; ok {
		return false
	}
	c.active[taskID] = &cascadeState{}
	return true
}

func (c *Controller) release(taskID kernel.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, taskID)
}

// flagCancelled marks the task's active cascade as cancelled, if one is
// running in this process. Returns whether a cascade was flagged; a
// flagged cascade owes the terminal cancellation notification.
func (c *Controller) flagCancelled(taskID kernel.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.active[taskID]
	if ok {
		state.cancelled = true
	}
	return ok
}

func (c *Controller) isCancelled(taskID kernel.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.active[taskID]
	return ok && state.cancelled
}

// prepare loads the task, checks it is still dispatchable, and builds the
// ranked candidate sequence from the currently available pool.
func (c *Controller) prepare(ctx context.Context, taskID kernel.UUID) (*task.Task, []services.RankedCandidate, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	t, err := uow.TaskRepository().Get(ctx, taskID)
	if err != nil {
		return nil, nil, err
	}
	if err := t.Status().ValidateAssign(); err != nil {
		return nil, nil, err
	}

	pool, err := uow.CandidateRepository().GetAllAvailableByKind(ctx, t.Kind())
	if err != nil {
		return nil, nil, err
	}

	ranked, err := c.ranker.Rank(t.Origin(), c.cfg.radiusFor(t.Kind()), pool)
	if err != nil {
		return nil, nil, err
	}
	return t, ranked, nil
}

// offerAndAwait publishes one offer and blocks until it resolves.
func (c *Controller) offerAndAwait(ctx context.Context, t *task.Task, cand *candidate.Candidate) (Response, error) {
	signal, err := c.registry.Register(t.ID(), cand.ID(), c.cfg.OfferTTL)
	if err != nil {
		return ResponseUnknown, err
	}

	// Cancel sets the flag before sweeping the registry, so a cancellation
	// racing this Register is visible here even if the sweep found nothing.
	if c.isCancelled(t.ID()) {
		c.registry.Resolve(t.ID(), cand.ID(), ResponseCancelled)
		return ResponseCancelled, nil
	}

	offer := ports.Offer{
		TaskID:      t.ID(),
		CandidateID: cand.ID(),
		Kind:        t.Kind(),
		Origin:      t.Origin(),
		Deadline:    time.Now().Add(c.cfg.OfferTTL),
	}
	if err := c.channel.PublishOffer(ctx, offer); err != nil {
		c.registry.Resolve(t.ID(), cand.ID(), ResponseExpired)
		c.logger.Warn("offer publish failed, skipping candidate",
			"taskID", t.ID().String(),
			"candidateID", cand.ID().String(),
			"error", err)
		return ResponseUnknown, errOfferUndeliverable
	}

	select {
	case resp := <-signal:
		return resp, nil
	case <-ctx.Done():
		c.registry.Resolve(t.ID(), cand.ID(), ResponseExpired)
		return ResponseUnknown, ctx.Err()
	}
}

// finalizeAssigned performs the single conditional claim for the accepted
// offer. Storage decides the race: losing to a competing claimer is an
// expected outcome that collapses this run to Exhausted with no
// re-offering and no notification, since the winning run notifies
// instead. Only a real store failure propagates as an error.
func (c *Controller) finalizeAssigned(ctx context.Context, t *task.Task, cand *candidate.Candidate, offersMade int) (Result, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Result{}, err
	}

	claimed, err := uow.TaskRepository().ConditionalAssign(ctx, t.ID(), cand.ID())
	if err != nil {
		_ = uow.Rollback(ctx)
		if errors.Is(err, ports.ErrTaskAlreadyClaimed) {
			c.logger.Info("claim lost to a competing assignment",
				"taskID", t.ID().String(),
				"candidateID", cand.ID().String())
			return Result{Outcome: OutcomeExhausted, OffersMade: offersMade}, nil
		}
		if errors.Is(err, ports.ErrTaskAlreadyFinalized) {
			// A cancellation or an external finalization beat the claim;
			// the stored status carries the outcome that won.
			return c.finalizeExhausted(ctx, t, offersMade)
		}
		return Result{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	// The claim is durable from here on. Flipping the winner's
	// availability is best effort: a failure degrades the pool view but
	// never the assignment itself.
	if err := c.markBusy(ctx, cand.ID()); err != nil {
		c.logger.Warn("assignee availability update failed after claim",
			"taskID", t.ID().String(),
			"candidateID", cand.ID().String(),
			"error", err)
	}

	assigneeID := cand.ID()
	c.finish(ctx, Notification{
		TaskID:     claimed.ID(),
		Outcome:    OutcomeAssigned,
		AssigneeID: &assigneeID,
		OccurredAt: time.Now().UTC(),
	})
	return Result{Outcome: OutcomeAssigned, AssigneeID: &assigneeID, OffersMade: offersMade}, nil
}

func (c *Controller) markBusy(ctx context.Context, candidateID kernel.UUID) error {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	cand, err := uow.CandidateRepository().Get(ctx, candidateID)
	if err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := cand.MarkBusy(); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	if err := uow.CandidateRepository().Update(ctx, cand); err != nil {
		_ = uow.Rollback(ctx)
		return err
	}
	return uow.Commit(ctx)
}

// finalizeExhausted records that the cascade ran out of candidates. If a
// cancellation or a competing claim finalized the task first, that stored
// status wins and no extra notification is produced here.
func (c *Controller) finalizeExhausted(ctx context.Context, t *task.Task, offersMade int) (Result, error) {
	uow := c.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return Result{}, err
	}

	stored, err := uow.TaskRepository().Get(ctx, t.ID())
	if err != nil {
		_ = uow.Rollback(ctx)
		return Result{}, err
	}
	if stored.Status().IsTerminal() {
		_ = uow.Rollback(ctx)
		// A cancellation that flagged this run left the terminal
		// notification to it.
		if stored.Status() == task.Cancelled && c.isCancelled(t.ID()) {
			return c.finalizeCancelled(ctx, t, offersMade)
		}
		return Result{Outcome: outcomeFromStatus(stored.Status()), AssigneeID: stored.Assignee(), OffersMade: offersMade}, nil
	}

	if err := stored.Exhaust(); err != nil {
		_ = uow.Rollback(ctx)
		return Result{}, err
	}
	if err := uow.TaskRepository().Update(ctx, stored); err != nil {
		_ = uow.Rollback(ctx)
		return Result{}, err
	}
	if err := uow.Commit(ctx); err != nil {
		return Result{}, err
	}

	c.finish(ctx, Notification{
		TaskID:     stored.ID(),
		Outcome:    OutcomeExhausted,
		OccurredAt: time.Now().UTC(),
	})
	return Result{Outcome: OutcomeExhausted, OffersMade: offersMade}, nil
}

// finalizeCancelled reports a cancellation that interrupted an outstanding
// offer. The cancelling command has already moved the stored task to
// Cancelled; this run only owes the terminal notification.
func (c *Controller) finalizeCancelled(ctx context.Context, t *task.Task, offersMade int) (Result, error) {
	c.finish(ctx, Notification{
		TaskID:     t.ID(),
		Outcome:    OutcomeCancelled,
		OccurredAt: time.Now().UTC(),
	})
	return Result{Outcome: OutcomeCancelled, OffersMade: offersMade}, nil
}

// finish delivers the terminal notification to in-process subscribers and
// broadcasts it on the outcome topic for external consumers.
func (c *Controller) finish(ctx context.Context, notification Notification) {
	c.notifier.Publish(notification)

	event := ports.OutcomeEvent{
		TaskID:      notification.TaskID,
		CandidateID: notification.AssigneeID,
		Outcome:     notification.Outcome.String(),
		OccurredAt:  notification.OccurredAt,
	}
	if err := c.channel.PublishOutcome(ctx, event); err != nil {
		c.logger.Warn("outcome publish failed",
			"taskID", notification.TaskID.String(),
			"outcome", notification.Outcome.String(),
			"error", err)
	}

	c.logger.Info("dispatch finished",
		"taskID", notification.TaskID.String(),
		"outcome", notification.Outcome.String())
}

func outcomeFromStatus(s task.Status) Outcome {
	switch s {
	case task.Assigned:
		return OutcomeAssigned
	case task.Exhausted:
		return OutcomeExhausted
	case task.Cancelled:
		return OutcomeCancelled
	case task.Unknown, task.Created:
		return OutcomeUnknown
	}
	return OutcomeUnknown
}
