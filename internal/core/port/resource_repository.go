package port

import (
	"context"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// ResourceFilter narrows resource listings. Empty fields are ignored.
type ResourceFilter struct {
	CourseCode   string
	SemesterName string
	ResourceType domain.ResourceType
	TitleSearch  string
}

// ResourceRepository persists learning resources.
type ResourceRepository interface {
	Create(ctx context.Context, resource domain.Resource) error
	GetByID(ctx context.Context, id string) (*domain.Resource, error)
	Update(ctx context.Context, resource domain.Resource) error
	Delete(ctx context.Context, id string) error
	// List returns resources newest first. A nil scope means no cohort
	// restriction.
	List(ctx context.Context, scope *domain.Cohort, filter ResourceFilter) ([]domain.Resource, error)
	ListByUploader(ctx context.Context, uploaderID string) ([]domain.Resource, error)
}
