// Package consumers contains the Kafka consumers feeding the event store.
package consumers

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/seclearn/analytics/internal/config"
	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/internal/domain/repository"
	"github.com/seclearn/analytics/pkg/logger"
)

// IngestRecorder records ingestion metrics. Satisfied by monitoring.Metrics;
// a nil recorder is tolerated.
type IngestRecorder interface {
	RecordEventIngested(tenantID, result string)
}

// EventConsumer reads behavioral events from Kafka and appends them to the
// event store. Malformed messages are committed and dropped; store failures
// leave the message uncommitted for redelivery.
type EventConsumer struct {
	reader  *kafka.Reader
	events  repository.EventRepository
	metrics IngestRecorder
	log     logger.Logger
	stop    chan struct{}
}

// NewEventConsumer creates the consumer for the behavioral event topic.
func NewEventConsumer(cfg config.KafkaConfig, events repository.EventRepository, metrics IngestRecorder, log logger.Logger) *EventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.EventTopic,
		GroupID:        cfg.GroupID,
		MinBytes:       10e3,
		MaxBytes:       10e6,
		CommitInterval: time.Second,
	})

	return &EventConsumer{
		reader:  reader,
		events:  events,
		metrics: metrics,
		log:     log.WithComponent("EventConsumer"),
		stop:    make(chan struct{}),
	}
}

// Start runs the consume loop. Blocking; run in a goroutine.
func (c *EventConsumer) Start(ctx context.Context) {
	c.log.Info(ctx, "starting behavioral event consumer")
	for {
		select {
		case <-c.stop:
			c.log.Info(ctx, "stopping behavioral event consumer")
			return
		default:
			msg, err := c.reader.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				c.log.Error(ctx, "failed to fetch message from kafka", err)
				continue
			}
			c.handleMessage(ctx, msg)
		}
	}
}

func (c *EventConsumer) handleMessage(ctx context.Context, msg kafka.Message) {
	var event models.BehavioralEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		c.log.Error(ctx, "failed to unmarshal behavioral event", err, logger.Fields{
			"payload": string(msg.Value),
		})
		// Commit poison pills so the partition keeps moving.
		_ = c.reader.CommitMessages(ctx, msg)
		c.recordIngested(event.TenantID.String(), "malformed")
		return
	}

	if err := event.Validate(); err != nil {
		c.log.Warn(ctx, "dropping invalid behavioral event", logger.Fields{
			"event_id": event.ID,
			"error":    err.Error(),
		})
		_ = c.reader.CommitMessages(ctx, msg)
		c.recordIngested(event.TenantID.String(), "invalid")
		return
	}

	if err := c.events.Append(ctx, &event); err != nil {
		c.log.Error(ctx, "failed to append behavioral event", err, logger.Fields{
			"event_id": event.ID,
		})
		// Leave uncommitted; the store hiccup resolves on redelivery.
		c.recordIngested(event.TenantID.String(), "store_error")
		return
	}

	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.log.Error(ctx, "failed to commit kafka offset", err)
	}
	c.recordIngested(event.TenantID.String(), "stored")
}

func (c *EventConsumer) recordIngested(tenantID, result string) {
	if c.metrics != nil {
		c.metrics.RecordEventIngested(tenantID, result)
	}
}

// Stop shuts the consumer down and closes the reader.
func (c *EventConsumer) Stop() {
	close(c.stop)
	if err := c.reader.Close(); err != nil {
		c.log.Error(context.Background(), "failed to close kafka reader", err)
	}
}
