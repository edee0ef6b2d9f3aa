package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"wedding-rsvp/internal/config"
	"wedding-rsvp/internal/models"
	"wedding-rsvp/pkg/logger"

	"github.com/segmentio/kafka-go"
)

// Enabled reports whether brokers are configured.
func Enabled() bool {
	return len(config.Get().KafkaBrokers) > 0
}

// EnsureTopic creates the submissions topic with configured partitions (idempotent).
// Call at startup; if it fails (e.g. no broker or topic exists), app still runs.
func EnsureTopic(ctx context.Context) {
	cfg := config.Get()
	if len(cfg.KafkaBrokers) == 0 {
		return
	}
	conn, err := kafka.Dial("tcp", cfg.KafkaBrokers[0])
	if err != nil {
		logger.Debug(ctx, "Kafka dial for topic creation failed", "error", err)
		return
	}
	defer conn.Close()
	controller, err := conn.Controller()
	if err != nil {
		logger.Debug(ctx, "Kafka controller lookup failed", "error", err)
		return
	}
	ctrlConn, err := kafka.Dial("tcp", fmt.Sprintf("%s:%d", controller.Host, controller.Port))
	if err != nil {
		logger.Debug(ctx, "Kafka controller dial failed", "error", err)
		return
	}
	defer ctrlConn.Close()
	err = ctrlConn.CreateTopics(kafka.TopicConfig{
		Topic:             cfg.KafkaTopic,
		NumPartitions:     cfg.KafkaPartitions,
		ReplicationFactor: 1,
	})
	if err != nil {
		logger.Debug(ctx, "Kafka create topic failed (topic may already exist)", "error", err)
		return
	}
	logger.Info(ctx, "Kafka topic ensured", "topic", cfg.KafkaTopic, "partitions", cfg.KafkaPartitions)
}

// MessageWriter is the part of *kafka.Writer the publisher uses.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
}

var (
	writer *kafka.Writer
	wOnce  sync.Once
)

// Producer returns the global Kafka writer for submission events (initialized on first use).
func Producer(ctx context.Context) *kafka.Writer {
	wOnce.Do(func() {
		cfg := config.Get()
		if len(cfg.KafkaBrokers) == 0 {
			return
		}
		writer = &kafka.Writer{
			Addr:         kafka.TCP(cfg.KafkaBrokers...),
			Topic:        cfg.KafkaTopic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 0,
			Async:        true,
			RequiredAcks: kafka.RequireOne,
			Completion: func(msgs []kafka.Message, err error) {
				if err != nil {
					logger.Error(context.Background(), "Kafka delivery failed", "error", err, "messages", len(msgs))
				}
			},
		}
		logger.Info(ctx, "Kafka producer initialized", "topic", cfg.KafkaTopic, "brokers", cfg.KafkaBrokers)
	})
	return writer
}

// Publisher announces stored submissions on the submissions topic.
type Publisher struct {
	w MessageWriter
}

func NewPublisher(w MessageWriter) *Publisher {
	return &Publisher{w: w}
}

// Publish writes ev keyed by submission id. Non-blocking when using Async writer.
func (p *Publisher) Publish(ctx context.Context, ev models.SubmissionEvent) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatInt(ev.Submission.ID, 10)),
		Value: payload,
	})
}

// Topic returns the submissions topic name.
func Topic() string {
	return config.Get().KafkaTopic
}

// Brokers returns Kafka broker addresses.
func Brokers() []string {
	return config.Get().KafkaBrokers
}
