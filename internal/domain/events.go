package domain

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// AggregateType identifies the entity family an outbox event belongs to.
type AggregateType string

const (
	AggregateGame        AggregateType = "game"
	AggregateAchievement AggregateType = "achievement"
	AggregateItem        AggregateType = "item"
	AggregatePlayer      AggregateType = "player"
	AggregateAdmin       AggregateType = "admin"
)

// EventType identifies the lifecycle stage of an outbox event.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// OutboxDraft is an event pending insertion into event_outbox.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"event_id"`
	AggregateType AggregateType   `json:"aggregate_type"`
	AggregateID   string          `json:"aggregate_id"`
	EventType     EventType       `json:"event_type"`
	PartitionKey  string          `json:"partition_key"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurred_at"`
}

// OutboxEvent is a persisted outbox row as read back by the poller.
type OutboxEvent struct {
	SeqID int64
	OutboxDraft
}

// NewCatalogEvent creates an outbox draft for an entity lifecycle change.
// payload is marshalled as the event body; a marshal failure degrades to an
// empty object rather than dropping the event.
func NewCatalogEvent(aggregate AggregateType, id int64, event EventType, payload interface{}) OutboxDraft {
	body, err := json.Marshal(payload)
	if err != nil {
		body = json.RawMessage(`{}`)
	}
	aggregateID := strconv.FormatInt(id, 10)
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: aggregate,
		AggregateID:   aggregateID,
		EventType:     event,
		PartitionKey:  aggregateID,
		Headers:       json.RawMessage(`{}`),
		Payload:       body,
		OccurredAt:    time.Now(),
	}
}
