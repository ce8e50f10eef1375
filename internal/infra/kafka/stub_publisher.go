package kafka

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
)

// StubPublisher logs events instead of sending them to Kafka. Useful for development environments.
type StubPublisher struct {
	logger *zap.Logger
}

// NewStubPublisher constructs a development-friendly event publisher.
func NewStubPublisher(logger *zap.Logger) *StubPublisher {
	return &StubPublisher{logger: logger}
}

func (p *StubPublisher) logEvent(eventType, userID string, at time.Time, payload any) {
	if at.IsZero() {
		at = time.Now().UTC()
	}

	p.logger.Info("Stub event published",
		zap.String("event_type", eventType),
		zap.String("user_id", userID),
		zap.Time("timestamp", at.UTC()),
		zap.Any("payload", payload),
	)
}

// PublishUserRegistered logs sphere.user.registered events.
func (p *StubPublisher) PublishUserRegistered(_ context.Context, event domain.UserRegisteredEvent) error {
	payload := map[string]any{
		"user_id":       event.UserID,
		"email":         event.Email,
		"full_name":     event.FullName,
		"batch":         event.Batch,
		"department":    event.Department,
		"role":          event.Role,
		"registered_at": event.RegisteredAt,
	}
	p.logEvent("user.registered", event.UserID, event.RegisteredAt, payload)
	return nil
}

// PublishNoticeCreated logs sphere.notice.created events.
func (p *StubPublisher) PublishNoticeCreated(_ context.Context, event domain.NoticeCreatedEvent) error {
	payload := map[string]any{
		"notice_id":   event.NoticeID,
		"batch":       event.Batch,
		"department":  event.Department,
		"title":       event.Title,
		"notice_type": event.NoticeType,
		"sender_id":   event.SenderID,
		"created_at":  event.CreatedAt,
	}
	p.logEvent("notice.created", event.SenderID, event.CreatedAt, payload)
	return nil
}

// PublishRoleChanged logs sphere.role.changed events.
func (p *StubPublisher) PublishRoleChanged(_ context.Context, event domain.RoleChangedEvent) error {
	payload := map[string]any{
		"user_id":    event.UserID,
		"email":      event.Email,
		"batch":      event.Batch,
		"department": event.Department,
		"old_role":   event.OldRole,
		"new_role":   event.NewRole,
		"changed_by": event.ChangedBy,
		"changed_at": event.ChangedAt,
	}
	p.logEvent("role.changed", event.UserID, event.ChangedAt, payload)
	return nil
}

// Close is a no-op for the stub publisher.
func (p *StubPublisher) Close() error { return nil }

var _ port.EventPublisher = (*StubPublisher)(nil)
