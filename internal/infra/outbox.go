package infra

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/gamevault/catalog/internal/domain"
	"github.com/gamevault/catalog/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

// OutboxPoller polls the event_outbox table and publishes events to Kafka.
type OutboxPoller struct {
	pool      *pgxpool.Pool
	outbox    repository.OutboxRepository
	producer  *KafkaProducer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

// NewOutboxPoller creates a new outbox poller.
func NewOutboxPoller(pool *pgxpool.Pool, outbox repository.OutboxRepository, producer *KafkaProducer, logger *slog.Logger) *OutboxPoller {
	return &OutboxPoller{
		pool:      pool,
		outbox:    outbox,
		producer:  producer,
		logger:    logger,
		interval:  500 * time.Millisecond,
		batchSize: 100,
	}
}

// Start begins polling in a goroutine. Stops when ctx is cancelled.
func (p *OutboxPoller) Start(ctx context.Context) {
	p.logger.Info("outbox poller started", "interval", p.interval, "batch_size", p.batchSize)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				p.logger.Info("outbox poller stopped")
				return
			case <-ticker.C:
				if err := p.poll(ctx); err != nil {
					p.logger.Error("outbox poll error", "error", err)
				}
			}
		}
	}()
}

func (p *OutboxPoller) poll(ctx context.Context) error {
	events, err := p.outbox.FetchUnpublished(ctx, p.pool, p.batchSize)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		return nil
	}

	published := make([]int64, 0, len(events))
	for _, e := range events {
		if err := p.producer.Publish(ctx, TopicFor(e.OutboxDraft), []byte(e.AggregateID), EncodeEvent(e.OutboxDraft)); err != nil {
			p.logger.Error("kafka publish failed", "event_id", e.EventID, "error", err)
			continue
		}
		published = append(published, e.SeqID)
	}

	if len(published) == 0 {
		return nil
	}
	if err := p.outbox.MarkPublished(ctx, p.pool, published); err != nil {
		return err
	}

	p.logger.Debug("outbox poll complete", "published", len(published))
	return nil
}

// TopicFor returns the Kafka topic for an outbox event,
// e.g. catalog.game.created.
func TopicFor(d domain.OutboxDraft) string {
	return "catalog." + string(d.AggregateType) + "." + string(d.EventType)
}

// EncodeEvent renders the wire form of an outbox event.
func EncodeEvent(d domain.OutboxDraft) []byte {
	msg, _ := json.Marshal(map[string]interface{}{
		"event_id":       d.EventID,
		"aggregate_type": d.AggregateType,
		"aggregate_id":   d.AggregateID,
		"event_type":     d.EventType,
		"payload":        d.Payload,
		"occurred_at":    d.OccurredAt,
	})
	return msg
}
