package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/config"
)

const schemaVersion = "1.0"

// EventPublisher implements port.EventPublisher using Kafka.
type EventPublisher struct {
	producer *Producer
	logger   *zap.Logger
	appCfg   config.AppSettings
}

// NewEventPublisher constructs a Kafka-backed event publisher.
func NewEventPublisher(producer *Producer, appCfg config.AppSettings, logger *zap.Logger) *EventPublisher {
	return &EventPublisher{producer: producer, appCfg: appCfg, logger: logger}
}

type envelopeMetadata map[string]string

type eventEnvelope struct {
	EventID   string           `json:"event_id"`
	EventType string           `json:"event_type"`
	UserID    string           `json:"user_id,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
	Version   string           `json:"version"`
	Payload   any              `json:"payload"`
	Metadata  envelopeMetadata `json:"metadata,omitempty"`
}

func (p *EventPublisher) publish(ctx context.Context, eventID, eventType, userID string, ts time.Time, payload any) error {
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	id := eventID
	if id == "" {
		id = uuid.NewString()
	}

	metadata := envelopeMetadata{
		"service":     p.appCfg.Name,
		"environment": p.appCfg.Env,
	}

	if span := trace.SpanFromContext(ctx); span != nil {
		if sc := span.SpanContext(); sc.IsValid() {
			metadata["trace_id"] = sc.TraceID().String()
		}
	}

	envelope := eventEnvelope{
		EventID:   id,
		EventType: eventType,
		UserID:    userID,
		Timestamp: ts.UTC(),
		Version:   schemaVersion,
		Payload:   payload,
		Metadata:  metadata,
	}

	bytes, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("marshal event envelope: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.producer.TopicName(eventType),
		Value: sarama.ByteEncoder(bytes),
	}

	select {
	case p.producer.Producer().Input() <- message:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// PublishUserRegistered publishes sphere.user.registered events.
func (p *EventPublisher) PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error {
	payload := struct {
		UserID       string    `json:"user_id"`
		Email        string    `json:"email"`
		FullName     string    `json:"full_name"`
		Batch        string    `json:"batch"`
		Department   string    `json:"department"`
		Role         string    `json:"role"`
		RegisteredAt time.Time `json:"registered_at"`
	}{
		UserID:       event.UserID,
		Email:        event.Email,
		FullName:     event.FullName,
		Batch:        event.Batch,
		Department:   event.Department,
		Role:         string(event.Role),
		RegisteredAt: event.RegisteredAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "user.registered", event.UserID, event.RegisteredAt, payload)
}

// PublishNoticeCreated publishes sphere.notice.created events. Consumers fan
// the notice out to the (batch, department) cohort.
func (p *EventPublisher) PublishNoticeCreated(ctx context.Context, event domain.NoticeCreatedEvent) error {
	payload := struct {
		NoticeID   string    `json:"notice_id"`
		Batch      string    `json:"batch"`
		Department string    `json:"department"`
		Title      string    `json:"title"`
		NoticeType string    `json:"notice_type"`
		SenderID   string    `json:"sender_id"`
		CreatedAt  time.Time `json:"created_at"`
	}{
		NoticeID:   event.NoticeID,
		Batch:      event.Batch,
		Department: event.Department,
		Title:      event.Title,
		NoticeType: string(event.NoticeType),
		SenderID:   event.SenderID,
		CreatedAt:  event.CreatedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "notice.created", event.SenderID, event.CreatedAt, payload)
}

// PublishRoleChanged publishes sphere.role.changed events.
func (p *EventPublisher) PublishRoleChanged(ctx context.Context, event domain.RoleChangedEvent) error {
	payload := struct {
		UserID     string    `json:"user_id"`
		Email      string    `json:"email"`
		Batch      string    `json:"batch"`
		Department string    `json:"department"`
		OldRole    string    `json:"old_role"`
		NewRole    string    `json:"new_role"`
		ChangedBy  string    `json:"changed_by"`
		ChangedAt  time.Time `json:"changed_at"`
	}{
		UserID:     event.UserID,
		Email:      event.Email,
		Batch:      event.Batch,
		Department: event.Department,
		OldRole:    string(event.OldRole),
		NewRole:    string(event.NewRole),
		ChangedBy:  event.ChangedBy,
		ChangedAt:  event.ChangedAt.UTC(),
	}

	return p.publish(ctx, event.EventID, "role.changed", event.UserID, event.ChangedAt, payload)
}

// Close shuts down the underlying producer.
func (p *EventPublisher) Close() error {
	return p.producer.Close()
}

var _ port.EventPublisher = (*EventPublisher)(nil)
