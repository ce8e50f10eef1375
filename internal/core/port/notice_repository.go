package port

import (
	"context"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// Page bounds a bulk read. Number is zero-based; zero Size means the
// repository default.
type Page struct {
	Number int
	Size   int
}

// NoticeRepository persists notices.
type NoticeRepository interface {
	Create(ctx context.Context, notice domain.Notice) error
	GetByID(ctx context.Context, id string) (*domain.Notice, error)
	Delete(ctx context.Context, id string) error
	// List returns notices newest first. A nil scope means no cohort
	// restriction; an empty noticeType means every type.
	List(ctx context.Context, scope *domain.Cohort, noticeType domain.NoticeType, page Page) ([]domain.Notice, error)
	ListBySender(ctx context.Context, senderID string) ([]domain.Notice, error)
}
