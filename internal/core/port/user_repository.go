package port

import (
	"context"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
)

// UserRepository persists user accounts.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user domain.User) error
	// UpdateRole transitions a single user record from fromRole to toRole.
	// The write is conditional on the current role so concurrent readers
	// never observe an intermediate state; repository.ErrNotFound is
	// returned when no row matched the (email, fromRole) pair.
	UpdateRole(ctx context.Context, email string, fromRole, toRole domain.Role) error
	ListByCohort(ctx context.Context, cohort domain.Cohort) ([]domain.User, error)
	ListAll(ctx context.Context) ([]domain.User, error)
}
