// Package messaging implements the Kafka publishers for computed scores and
// fired report schedules.
package messaging

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/seclearn/analytics/internal/config"
	"github.com/seclearn/analytics/internal/domain/models"
	"github.com/seclearn/analytics/pkg/logger"
)

// ScoreProducer publishes freshly computed risk scores and fired report
// schedules to Kafka. Delivery is best-effort: the record store is the
// source of truth and callers treat publish failures as non-fatal.
type ScoreProducer struct {
	writer *kafka.Writer
	log    logger.Logger
}

// NewScoreProducer creates the Kafka writer for the score topic.
func NewScoreProducer(cfg config.KafkaConfig, log logger.Logger) *ScoreProducer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.ScoreTopic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		RequiredAcks: kafka.RequiredAcks(cfg.RequiredAcks),
		BatchSize:    cfg.BatchSize,
		BatchTimeout: cfg.BatchTimeout,
	}
	return &ScoreProducer{
		writer: writer,
		log:    log.WithComponent("ScoreProducer"),
	}
}

// PublishScore sends the record to the score topic, keyed by user so
// per-user ordering survives partitioning.
func (p *ScoreProducer) PublishScore(ctx context.Context, record *models.RiskScoreRecord) error {
	raw, err := json.Marshal(record)
	if err != nil {
		p.log.Error(ctx, "failed to marshal risk score", err)
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(record.UserID.String()),
		Value: raw,
	})
	if err != nil {
		p.log.Error(ctx, "failed to publish risk score", err, logger.Fields{
			"user_id": record.UserID,
		})
	}
	return err
}

// reportFiredMessage is the wire shape consumed by the report pipeline.
type reportFiredMessage struct {
	ScheduleID string `json:"schedule_id"`
	TenantID   string `json:"tenant_id"`
	Frequency  string `json:"frequency"`
	FiredAt    string `json:"fired_at"`
}

// DispatchReport announces a fired schedule on the score topic's sibling
// report stream. The report pipeline owns rendering and delivery.
func (p *ScoreProducer) DispatchReport(ctx context.Context, schedule *models.ReportSchedule) error {
	msg := reportFiredMessage{
		ScheduleID: schedule.ID.String(),
		TenantID:   schedule.TenantID.String(),
		Frequency:  string(schedule.Frequency),
	}
	if schedule.LastRunAt != nil {
		msg.FiredAt = schedule.LastRunAt.Format(time.RFC3339)
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(schedule.TenantID.String()),
		Value: raw,
	})
	if err != nil {
		p.log.Error(ctx, "failed to publish report firing", err, logger.Fields{
			"schedule_id": schedule.ID,
		})
	}
	return err
}

// Close flushes and closes the Kafka writer.
func (p *ScoreProducer) Close() error {
	return p.writer.Close()
}
