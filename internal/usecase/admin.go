package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/logger"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

// AdminService implements the SYSTEM_ADMIN operations: CR appointment and
// the unfiltered user directory.
type AdminService struct {
	users  port.UserRepository
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewAdminService constructs an admin service.
func NewAdminService(users port.UserRepository, events port.EventPublisher, log *zap.Logger) *AdminService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AdminService{
		users:  users,
		events: events,
		logger: log,
		now:    time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *AdminService) WithClock(now func() time.Time) *AdminService {
	s.now = now
	return s
}

// GrantCR promotes a STUDENT to CR. The caller must declare the cohort it
// believes the target belongs to; a mismatch against the stored record aborts
// the grant, so a stale or mistyped admin request cannot appoint a CR in the
// wrong class. The write is conditional on the target still being a STUDENT,
// so two concurrent grants cannot both succeed and a grant can never
// overwrite SYSTEM_ADMIN. Granting to an existing CR is a conflict, not a
// no-op: the caller's view was stale and must be refreshed.
func (s *AdminService) GrantCR(ctx context.Context, actor domain.User, email string, declared domain.Cohort) (domain.User, error) {
	return s.transitionRole(ctx, actor, email, &declared, domain.RoleStudent, domain.RoleCR)
}

// RevokeCR demotes a CR back to STUDENT, under the same conditional-write
// discipline as GrantCR. Revocation identifies the target by email alone.
func (s *AdminService) RevokeCR(ctx context.Context, actor domain.User, email string) (domain.User, error) {
	return s.transitionRole(ctx, actor, email, nil, domain.RoleCR, domain.RoleStudent)
}

func (s *AdminService) transitionRole(ctx context.Context, actor domain.User, email string, declared *domain.Cohort, fromRole, toRole domain.Role) (domain.User, error) {
	if !actor.Role.CanAdminister() {
		return domain.User{}, ErrForbidden
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return domain.User{}, fmt.Errorf("email is required")
	}

	target, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return domain.User{}, err
	}

	if declared != nil && (target.Batch != declared.Batch || target.Department != declared.Department) {
		return domain.User{}, ErrCohortMismatch
	}

	if target.Role != fromRole {
		switch {
		case toRole == domain.RoleCR && target.Role == domain.RoleCR:
			return domain.User{}, ErrAlreadyCR
		case toRole == domain.RoleStudent && target.Role == domain.RoleStudent:
			return domain.User{}, ErrNotCR
		default:
			return domain.User{}, ErrInvalidRoleTransition
		}
	}

	if err := s.users.UpdateRole(ctx, email, fromRole, toRole); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// The role changed between the read and the conditional write.
			return domain.User{}, ErrInvalidRoleTransition
		}
		return domain.User{}, fmt.Errorf("update role: %w", err)
	}

	target.Role = toRole
	target.UpdatedAt = s.now().UTC()

	if s.events != nil {
		event := domain.RoleChangedEvent{
			EventID:    uuid.NewString(),
			UserID:     target.ID,
			Email:      target.Email,
			Batch:      target.Batch,
			Department: target.Department,
			OldRole:    fromRole,
			NewRole:    toRole,
			ChangedBy:  actor.ID,
			ChangedAt:  target.UpdatedAt,
		}
		if err := s.events.PublishRoleChanged(ctx, event); err != nil {
			s.logger.Warn("publish role changed event failed",
				zap.String("email", logger.MaskEmail(target.Email)), zap.Error(err))
		}
	}

	return *target, nil
}

// ListUsers returns every account. Admin only.
func (s *AdminService) ListUsers(ctx context.Context, actor domain.User) ([]domain.User, error) {
	if !actor.Role.CanAdminister() {
		return nil, ErrForbidden
	}
	return s.users.ListAll(ctx)
}

// ListCohort returns the accounts of one (department, batch) pair. Admin
// only.
func (s *AdminService) ListCohort(ctx context.Context, actor domain.User, department, batch string) ([]domain.User, error) {
	if !actor.Role.CanAdminister() {
		return nil, ErrForbidden
	}
	return s.users.ListByCohort(ctx, domain.Cohort{Batch: batch, Department: department})
}

// GetUser looks up a single account by email. Admin only.
func (s *AdminService) GetUser(ctx context.Context, actor domain.User, email string) (domain.User, error) {
	if !actor.Role.CanAdminister() {
		return domain.User{}, ErrForbidden
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return domain.User{}, err
	}
	return *user, nil
}
