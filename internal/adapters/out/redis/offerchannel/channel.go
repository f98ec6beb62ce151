// Package offerchannel implements the offer messaging contract on Redis
// pub/sub. Offers travel on per-candidate topics so a connected candidate
// client only ever sees proposals addressed to it; terminal outcomes are
// broadcast on one shared topic.
//
// Delivery is fire-and-forget: a candidate that is not subscribed when
// its offer is published simply misses it and the offer window expires,
// advancing the cascade to the next candidate.
package offerchannel

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/task"
	"dispatch/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

const (
	offerTopicPrefix = "offers.candidate."
	outcomeTopic     = "offers.outcomes"
)

// offerMessage is the wire representation of a single offer.
type offerMessage struct {
	TaskID      string    `json:"taskId"`
	CandidateID string    `json:"candidateId"`
	Kind        string    `json:"kind"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	Deadline    time.Time `json:"deadline"`
}

// outcomeMessage is the wire representation of a terminal dispatch result.
type outcomeMessage struct {
	TaskID      string    `json:"taskId"`
	CandidateID *string   `json:"candidateId,omitempty"`
	Outcome     string    `json:"outcome"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// RedisOfferChannel implements ports.OfferChannel on a Redis connection.
type RedisOfferChannel struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisOfferChannel creates an offer channel on the given Redis client.
// The channel takes ownership of the client; Close releases it.
func NewRedisOfferChannel(client *redis.Client, logger *slog.Logger) *RedisOfferChannel {
	return &RedisOfferChannel{
		client: client,
		logger: logger,
	}
}

func offerTopic(candidateID kernel.UUID) string {
	return offerTopicPrefix + candidateID.String()
}

// PublishOffer delivers the offer to the candidate's topic.
func (c *RedisOfferChannel) PublishOffer(ctx context.Context, offer ports.Offer) error {
	payload, err := json.Marshal(offerMessage{
		TaskID:      offer.TaskID.String(),
		CandidateID: offer.CandidateID.String(),
		Kind:        offer.Kind.String(),
		Latitude:    offer.Origin.Latitude(),
		Longitude:   offer.Origin.Longitude(),
		Deadline:    offer.Deadline,
	})
	if err != nil {
		return err
	}

	return c.client.Publish(ctx, offerTopic(offer.CandidateID), payload).Err()
}

// PublishOutcome announces the terminal result of a dispatch run on the
// shared outcome topic.
func (c *RedisOfferChannel) PublishOutcome(ctx context.Context, event ports.OutcomeEvent) error {
	message := outcomeMessage{
		TaskID:     event.TaskID.String(),
		Outcome:    event.Outcome,
		OccurredAt: event.OccurredAt,
	}
	if event.CandidateID != nil {
		candidateID := event.CandidateID.String()
		message.CandidateID = &candidateID
	}

	payload, err := json.Marshal(message)
	if err != nil {
		return err
	}

	return c.client.Publish(ctx, outcomeTopic, payload).Err()
}

// SubscribeOffers registers a handler for offers addressed to the
// candidate. The handler runs on the subscription's own goroutine;
// malformed messages are logged and skipped. The returned function
// closes the subscription.
func (c *RedisOfferChannel) SubscribeOffers(ctx context.Context, candidateID kernel.UUID, handler ports.OfferHandler) (func() error, error) {
	if err := candidateID.Validate(); err != nil {
		return nil, err
	}

	sub := c.client.Subscribe(ctx, offerTopic(candidateID))
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	go func() {
		for message := range sub.Channel() {
			offer, err := c.decodeOffer(message.Payload)
			if err != nil {
				c.logger.Warn("dropping malformed offer message",
					"topic", message.Channel,
					"error", err)
				continue
			}
			handler(offer)
		}
	}()

	return sub.Close, nil
}

// SubscribeOutcomes registers a handler for all terminal dispatch results.
// The returned function closes the subscription.
func (c *RedisOfferChannel) SubscribeOutcomes(ctx context.Context, handler ports.OutcomeHandler) (func() error, error) {
	sub := c.client.Subscribe(ctx, outcomeTopic)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	go func() {
		for message := range sub.Channel() {
			event, err := c.decodeOutcome(message.Payload)
			if err != nil {
				c.logger.Warn("dropping malformed outcome message",
					"topic", message.Channel,
					"error", err)
				continue
			}
			handler(event)
		}
	}()

	return sub.Close, nil
}

// Close releases the underlying Redis client and every open subscription.
func (c *RedisOfferChannel) Close() error {
	return c.client.Close()
}

func (c *RedisOfferChannel) decodeOffer(payload string) (ports.Offer, error) {
	var message offerMessage
	if err := json.Unmarshal([]byte(payload), &message); err != nil {
		return ports.Offer{}, err
	}

	taskID, err := kernel.UUIDFromString(message.TaskID)
	if err != nil {
		return ports.Offer{}, err
	}

	candidateID, err := kernel.UUIDFromString(message.CandidateID)
	if err != nil {
		return ports.Offer{}, err
	}

	kind, err := task.KindFromString(message.Kind)
	if err != nil {
		return ports.Offer{}, err
	}

	origin, err := kernel.NewGeoPoint(message.Latitude, message.Longitude)
	if err != nil {
		return ports.Offer{}, err
	}

	return ports.Offer{
		TaskID:      taskID,
		CandidateID: candidateID,
		Kind:        kind,
		Origin:      origin,
		Deadline:    message.Deadline,
	}, nil
}

func (c *RedisOfferChannel) decodeOutcome(payload string) (ports.OutcomeEvent, error) {
	var message outcomeMessage
	if err := json.Unmarshal([]byte(payload), &message); err != nil {
		return ports.OutcomeEvent{}, err
	}

	taskID, err := kernel.UUIDFromString(message.TaskID)
	if err != nil {
		return ports.OutcomeEvent{}, err
	}

	event := ports.OutcomeEvent{
		TaskID:     taskID,
		Outcome:    message.Outcome,
		OccurredAt: message.OccurredAt,
	}

	if message.CandidateID != nil {
		candidateID, candidateErr := kernel.UUIDFromString(*message.CandidateID)
		if candidateErr != nil {
			return ports.OutcomeEvent{}, candidateErr
		}
		event.CandidateID = &candidateID
	}

	return event, nil
}
