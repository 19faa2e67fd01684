//go:generate mockgen -source=email_kafka.go -destination=mock_email_kafka.go -package=facades

package facades

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sbilibin2017/gw-auth-service/internal/logger"
	"github.com/sbilibin2017/gw-auth-service/internal/models"
	"github.com/segmentio/kafka-go"
)

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// EmailKafkaFacade hands emails to a mailer service through a Kafka topic.
// Send returns once the writer reports the write acknowledged; the number of
// replicas that must acknowledge is set on the writer.
type EmailKafkaFacade struct {
	writer KafkaWriter
}

// NewEmailKafkaFacade creates a new facade with a Kafka writer.
func NewEmailKafkaFacade(writer KafkaWriter) *EmailKafkaFacade {
	return &EmailKafkaFacade{writer: writer}
}

// Send publishes the email keyed by recipient.
func (f *EmailKafkaFacade) Send(ctx context.Context, to, subject, body string) error {
	data, err := json.Marshal(models.EmailMessage{To: to, Subject: subject, Body: body})
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(to),
		Value: data,
	}

	if err := f.writer.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish email to Kafka", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("kafka publish: %w", err)
	}

	logger.Log.Infow("email published to Kafka", "to", to, "subject", subject)
	return nil
}

// Close closes the underlying writer.
func (f *EmailKafkaFacade) Close() error {
	return f.writer.Close()
}
