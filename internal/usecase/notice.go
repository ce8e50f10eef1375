package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

// AttachmentUpload describes a file streamed in with a create request.
type AttachmentUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// NoticeService manages cohort-scoped notices.
type NoticeService struct {
	notices     port.NoticeRepository
	attachments port.AttachmentStore
	events      port.EventPublisher
	logger      *zap.Logger
	now         func() time.Time
}

// NewNoticeService constructs a notice service.
func NewNoticeService(notices port.NoticeRepository, attachments port.AttachmentStore, events port.EventPublisher, log *zap.Logger) *NoticeService {
	if log == nil {
		log = zap.NewNop()
	}
	return &NoticeService{
		notices:     notices,
		attachments: attachments,
		events:      events,
		logger:      log,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *NoticeService) WithClock(now func() time.Time) *NoticeService {
	s.now = now
	return s
}

// CreateNoticeInput carries the author-supplied fields of a new notice.
// The owning cohort is never part of the input; it is always taken from the
// actor.
type CreateNoticeInput struct {
	Title      string
	Message    string
	NoticeType domain.NoticeType
	Attachment *AttachmentUpload
}

// Create publishes a notice into the actor's own cohort. Only CR and
// SYSTEM_ADMIN accounts may author notices; a SYSTEM_ADMIN still posts into
// their own cohort, the bypass applies to reads only.
func (s *NoticeService) Create(ctx context.Context, actor domain.User, input CreateNoticeInput) (domain.Notice, error) {
	if !actor.Role.CanAuthorContent() {
		return domain.Notice{}, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Notice{}, fmt.Errorf("title is required")
	}
	message := strings.TrimSpace(input.Message)
	if message == "" {
		return domain.Notice{}, fmt.Errorf("message is required")
	}
	noticeType := input.NoticeType
	if noticeType == "" {
		noticeType = domain.NoticeGeneral
	}

	var attachmentURL *string
	if input.Attachment != nil {
		url, err := s.attachments.Upload(ctx, input.Attachment.FileName, input.Attachment.ContentType, input.Attachment.Body, input.Attachment.Size)
		if err != nil {
			return domain.Notice{}, fmt.Errorf("upload attachment: %w", err)
		}
		attachmentURL = &url
	}

	now := s.now().UTC()
	notice := domain.Notice{
		ID:          uuid.NewString(),
		Batch:       actor.Batch,
		Department:  actor.Department,
		Title:       title,
		Message:     message,
		Attachment:  attachmentURL,
		NoticeType:  noticeType,
		SenderID:    actor.ID,
		SenderName:  actor.FullName,
		SenderEmail: actor.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.notices.Create(ctx, notice); err != nil {
		if attachmentURL != nil {
			s.deleteAttachment(ctx, *attachmentURL)
		}
		return domain.Notice{}, fmt.Errorf("create notice: %w", err)
	}

	if s.events != nil {
		event := domain.NoticeCreatedEvent{
			EventID:    uuid.NewString(),
			NoticeID:   notice.ID,
			Batch:      notice.Batch,
			Department: notice.Department,
			Title:      notice.Title,
			NoticeType: notice.NoticeType,
			SenderID:   notice.SenderID,
			CreatedAt:  now,
		}
		if err := s.events.PublishNoticeCreated(ctx, event); err != nil {
			s.logger.Warn("publish notice created event failed",
				zap.String("notice_id", notice.ID), zap.Error(err))
		}
	}

	return notice, nil
}

// List returns the notices the actor may read: their own cohort's, or every
// cohort's when the role bypasses scoping.
func (s *NoticeService) List(ctx context.Context, actor domain.User, page port.Page) ([]domain.Notice, error) {
	return s.notices.List(ctx, s.scope(actor), "", page)
}

// ListByType narrows List to a single notice type.
func (s *NoticeService) ListByType(ctx context.Context, actor domain.User, noticeType domain.NoticeType, page port.Page) ([]domain.Notice, error) {
	return s.notices.List(ctx, s.scope(actor), noticeType, page)
}

// ListMine returns the notices the actor authored.
func (s *NoticeService) ListMine(ctx context.Context, actor domain.User) ([]domain.Notice, error) {
	return s.notices.ListBySender(ctx, actor.ID)
}

// Get fetches a single notice. A notice outside the actor's cohort is
// indistinguishable from a missing one.
func (s *NoticeService) Get(ctx context.Context, actor domain.User, id string) (domain.Notice, error) {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		return domain.Notice{}, err
	}

	if !actor.Role.CanBypassScope() && !notice.Cohort().Equals(actor.Cohort()) {
		return domain.Notice{}, repository.ErrNotFound
	}
	return *notice, nil
}

// Delete removes a notice. Only the author or a scope-bypassing role may
// delete; attachment cleanup is best-effort and never blocks the deletion.
func (s *NoticeService) Delete(ctx context.Context, actor domain.User, id string) error {
	notice, err := s.notices.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if notice.SenderID != actor.ID && !actor.Role.CanBypassScope() {
		return ErrForbidden
	}

	if err := s.notices.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}

	if notice.Attachment != nil {
		s.deleteAttachment(ctx, *notice.Attachment)
	}
	return nil
}

func (s *NoticeService) deleteAttachment(ctx context.Context, url string) {
	if s.attachments == nil {
		return
	}
	if err := s.attachments.Delete(ctx, url); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("delete attachment failed", zap.String("url", url), zap.Error(err))
	}
}

func (s *NoticeService) scope(actor domain.User) *domain.Cohort {
	if actor.Role.CanBypassScope() {
		return nil
	}
	cohort := actor.Cohort()
	return &cohort
}
