package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"wedding-rsvp/internal/models"
	"wedding-rsvp/internal/queue"
	"wedding-rsvp/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Invalidator drops the cached submission list.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// Run starts the Kafka consumer: reads submission events and invalidates
// the cached list so the next load sees the new submission.
// One consumer per process; scale by running more replicas (consumer group shares partitions).
func Run(ctx context.Context, cache Invalidator) {
	brokers := queue.Brokers()
	if len(brokers) == 0 {
		logger.Info(ctx, "Worker disabled (no Kafka brokers)")
		return
	}
	topic := queue.Topic()

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    topic,
		GroupID:  "rsvp-cache-invalidators",
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	defer reader.Close()

	logger.Info(ctx, "Kafka consumer started", "topic", topic)
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.Error(ctx, "Worker fetch failed", "error", err)
			continue
		}
		if err := handleMessage(ctx, cache, msg.Value); err != nil {
			logger.Error(ctx, "Worker handle failed", "error", err, "payload", string(msg.Value))
		}
		// Commit even on failure so a poison message cannot block the partition.
		if err := reader.CommitMessages(ctx, msg); err != nil {
			logger.Error(ctx, "Worker commit failed", "error", err)
		}
	}
}

func handleMessage(ctx context.Context, cache Invalidator, payload []byte) error {
	var ev models.SubmissionEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return err
	}
	if ev.Submission.ID == 0 {
		return fmt.Errorf("event without submission id")
	}
	cache.Invalidate(ctx)
	logger.Info(ctx, "Submission recorded",
		"submission_id", ev.Submission.ID,
		"attendance", ev.Submission.Attendance,
		"recorded_at", ev.RecordedAt)
	return nil
}
