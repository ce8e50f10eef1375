package port

import (
	"context"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// EventPublisher emits domain events for downstream consumers (push
// notification fan-out, audit pipelines). Publishing is asynchronous and
// best-effort from the caller's point of view.
type EventPublisher interface {
	PublishUserRegistered(ctx context.Context, event domain.UserRegisteredEvent) error
	PublishNoticeCreated(ctx context.Context, event domain.NoticeCreatedEvent) error
	PublishRoleChanged(ctx context.Context, event domain.RoleChangedEvent) error
	Close() error
}
