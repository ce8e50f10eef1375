package port

import (
	"context"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// CourseRepository persists the course catalogue.
type CourseRepository interface {
	Create(ctx context.Context, course domain.Course) error
	GetByCode(ctx context.Context, courseCode string) (*domain.Course, error)
	ListByDepartment(ctx context.Context, departmentCode string) ([]domain.Course, error)
	Count(ctx context.Context) (int, error)
}

// SemesterRepository persists the semester catalogue.
type SemesterRepository interface {
	Create(ctx context.Context, semester domain.Semester) error
	GetByName(ctx context.Context, name string) (*domain.Semester, error)
	List(ctx context.Context) ([]domain.Semester, error)
	Count(ctx context.Context) (int, error)
}
