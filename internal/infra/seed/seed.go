package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/config"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/logger"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/infra/security"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

// Seeder bootstraps the semester and course catalogues and the first
// SYSTEM_ADMIN account. Every step is idempotent; running it on an already
// seeded database is a no-op.
type Seeder struct {
	users     port.UserRepository
	courses   port.CourseRepository
	semesters port.SemesterRepository
	logger    *zap.Logger
}

// NewSeeder constructs a Seeder.
func NewSeeder(users port.UserRepository, courses port.CourseRepository, semesters port.SemesterRepository, log *zap.Logger) *Seeder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Seeder{
		users:     users,
		courses:   courses,
		semesters: semesters,
		logger:    log,
	}
}

// courseSeed is one entry of the optional course catalogue file.
type courseSeed struct {
	CourseCode     string `json:"course_code"`
	CourseName     string `json:"course_name"`
	DepartmentCode string `json:"department_code"`
}

// Run applies all enabled seed steps.
func (s *Seeder) Run(ctx context.Context, cfg config.SeedSettings) error {
	if !cfg.Enabled {
		s.logger.Info("seeding disabled, skipping")
		return nil
	}

	if err := s.seedSemesters(ctx); err != nil {
		return fmt.Errorf("seed semesters: %w", err)
	}

	if cfg.CoursesFile != "" {
		if err := s.seedCourses(ctx, cfg.CoursesFile); err != nil {
			return fmt.Errorf("seed courses: %w", err)
		}
	}

	if err := s.seedAdmin(ctx, cfg); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	return nil
}

// seedSemesters inserts the eight canonical "Level X Term Y" terms.
func (s *Seeder) seedSemesters(ctx context.Context) error {
	existing, err := s.semesters.Count(ctx)
	if err != nil {
		return fmt.Errorf("count semesters: %w", err)
	}
	if existing > 0 {
		s.logger.Info("semester catalogue already seeded", zap.Int("semesters", existing))
		return nil
	}

	for level := 1; level <= 4; level++ {
		for term := 1; term <= 2; term++ {
			name := fmt.Sprintf("Level %d Term %d", level, term)
			if err := s.semesters.Create(ctx, domain.Semester{
				ID:   uuid.NewString(),
				Name: name,
			}); err != nil {
				return fmt.Errorf("create semester %q: %w", name, err)
			}
		}
	}

	s.logger.Info("semester catalogue seeded")
	return nil
}

// seedCourses loads the catalogue file and inserts each course. Entries with
// unknown department codes are skipped rather than rejected, so a shared
// catalogue file can carry departments this deployment does not know yet.
func (s *Seeder) seedCourses(ctx context.Context, path string) error {
	existing, err := s.courses.Count(ctx)
	if err != nil {
		return fmt.Errorf("count courses: %w", err)
	}
	if existing > 0 {
		s.logger.Info("course catalogue already seeded", zap.Int("courses", existing))
		return nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read courses file %s: %w", path, err)
	}

	var entries []courseSeed
	if err := json.Unmarshal(raw, &entries); err != nil {
		return fmt.Errorf("parse courses file %s: %w", path, err)
	}

	seeded := 0
	for _, entry := range entries {
		if entry.CourseCode == "" || entry.DepartmentCode == "" {
			s.logger.Warn("skipping malformed course entry", zap.String("course_code", entry.CourseCode))
			continue
		}
		if _, ok := domain.DepartmentName(entry.DepartmentCode); !ok {
			s.logger.Warn("skipping course with unknown department",
				zap.String("course_code", entry.CourseCode),
				zap.String("department_code", entry.DepartmentCode))
			continue
		}

		if err := s.courses.Create(ctx, domain.Course{
			ID:             uuid.NewString(),
			CourseCode:     entry.CourseCode,
			CourseName:     entry.CourseName,
			DepartmentCode: entry.DepartmentCode,
		}); err != nil {
			return fmt.Errorf("create course %q: %w", entry.CourseCode, err)
		}
		seeded++
	}

	s.logger.Info("course catalogue seeded", zap.Int("courses", seeded))
	return nil
}

// seedAdmin creates the bootstrap SYSTEM_ADMIN account. The address must be a
// valid institutional student email because the cohort identity is derived
// from it, same as any other account.
func (s *Seeder) seedAdmin(ctx context.Context, cfg config.SeedSettings) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		s.logger.Info("no admin credentials configured, skipping admin seed")
		return nil
	}

	if _, err := s.users.GetByEmail(ctx, cfg.AdminEmail); err == nil {
		s.logger.Info("admin account already exists", zap.String("email", logger.MaskEmail(cfg.AdminEmail)))
		return nil
	} else if !errors.Is(err, repository.ErrNotFound) {
		return fmt.Errorf("lookup admin account: %w", err)
	}

	identity, err := domain.ParseStudentEmail(cfg.AdminEmail)
	if err != nil {
		return fmt.Errorf("admin email must be an institutional address: %w", err)
	}

	passwordHash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           uuid.NewString(),
		FullName:     cfg.AdminName,
		Email:        cfg.AdminEmail,
		PasswordHash: passwordHash,
		Batch:        identity.Batch,
		Department:   identity.Department,
		StudentID:    identity.StudentID,
		Role:         domain.RoleSystemAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		// Lost a race against another instance seeding the same account.
		if errors.Is(err, repository.ErrConflict) {
			return nil
		}
		return fmt.Errorf("create admin account: %w", err)
	}

	s.logger.Info("admin account seeded", zap.String("email", logger.MaskEmail(cfg.AdminEmail)))
	return nil
}
