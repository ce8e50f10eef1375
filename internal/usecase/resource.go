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
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

// ResourceService manages cohort-scoped learning resources.
type ResourceService struct {
	resources   port.ResourceRepository
	courses     port.CourseRepository
	semesters   port.SemesterRepository
	attachments port.AttachmentStore
	logger      *zap.Logger
	now         func() time.Time
}

// NewResourceService constructs a resource service.
func NewResourceService(resources port.ResourceRepository, courses port.CourseRepository, semesters port.SemesterRepository, attachments port.AttachmentStore, log *zap.Logger) *ResourceService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ResourceService{
		resources:   resources,
		courses:     courses,
		semesters:   semesters,
		attachments: attachments,
		logger:      log,
		now:         time.Now,
	}
}

// WithClock overrides the time source. Intended for tests.
func (s *ResourceService) WithClock(now func() time.Time) *ResourceService {
	s.now = now
	return s
}

// CreateResourceInput carries the uploader-supplied fields of a new resource.
// Batch always comes from the actor; the department comes from the course and
// must match the actor's own.
type CreateResourceInput struct {
	Title        string
	Description  string
	ResourceType domain.ResourceType
	CourseCode   string
	SemesterName string
	File         *AttachmentUpload
	FilePath     string
}

// Create registers a resource in the actor's cohort. The course must belong
// to the actor's department; attaching another department's course is
// rejected rather than silently rescoped.
func (s *ResourceService) Create(ctx context.Context, actor domain.User, input CreateResourceInput) (domain.Resource, error) {
	if !actor.Role.CanAuthorContent() {
		return domain.Resource{}, ErrForbidden
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return domain.Resource{}, fmt.Errorf("title is required")
	}
	resourceType := input.ResourceType
	if resourceType == "" {
		resourceType = domain.ResourceOther
	}
	if input.File == nil && strings.TrimSpace(input.FilePath) == "" {
		return domain.Resource{}, fmt.Errorf("file or file path is required")
	}

	course, err := s.courses.GetByCode(ctx, strings.TrimSpace(input.CourseCode))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Resource{}, ErrCourseNotFound
		}
		return domain.Resource{}, fmt.Errorf("lookup course: %w", err)
	}
	if course.DepartmentCode != actor.Department {
		return domain.Resource{}, ErrCohortMismatch
	}

	semester, err := s.semesters.GetByName(ctx, strings.TrimSpace(input.SemesterName))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.Resource{}, ErrSemesterNotFound
		}
		return domain.Resource{}, fmt.Errorf("lookup semester: %w", err)
	}

	filePath := strings.TrimSpace(input.FilePath)
	uploaded := false
	if input.File != nil {
		url, err := s.attachments.Upload(ctx, input.File.FileName, input.File.ContentType, input.File.Body, input.File.Size)
		if err != nil {
			return domain.Resource{}, fmt.Errorf("upload file: %w", err)
		}
		filePath = url
		uploaded = true
	}

	now := s.now().UTC()
	resource := domain.Resource{
		ID:             uuid.NewString(),
		Batch:          actor.Batch,
		ResourceType:   resourceType,
		Title:          title,
		FilePath:       filePath,
		CourseID:       course.ID,
		CourseCode:     course.CourseCode,
		CourseName:     course.CourseName,
		DepartmentCode: course.DepartmentCode,
		SemesterID:     semester.ID,
		SemesterName:   semester.Name,
		UploaderID:     actor.ID,
		UploaderName:   actor.FullName,
		UploaderEmail:  actor.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if description := strings.TrimSpace(input.Description); description != "" {
		resource.Description = &description
	}

	if err := s.resources.Create(ctx, resource); err != nil {
		if uploaded {
			s.deleteFile(ctx, filePath)
		}
		return domain.Resource{}, fmt.Errorf("create resource: %w", err)
	}

	return resource, nil
}

// UpdateResourceInput carries the editable fields of a resource. Nil fields
// are left unchanged; the cohort, course, and file are immutable.
type UpdateResourceInput struct {
	Title       *string
	Description *string
}

// Update edits a resource's descriptive fields. Only the uploader or a
// scope-bypassing role may edit.
func (s *ResourceService) Update(ctx context.Context, actor domain.User, id string, input UpdateResourceInput) (domain.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return domain.Resource{}, err
	}

	if resource.UploaderID != actor.ID && !actor.Role.CanBypassScope() {
		return domain.Resource{}, ErrForbidden
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return domain.Resource{}, fmt.Errorf("title cannot be empty")
		}
		resource.Title = title
	}
	if input.Description != nil {
		description := strings.TrimSpace(*input.Description)
		if description == "" {
			resource.Description = nil
		} else {
			resource.Description = &description
		}
	}
	resource.UpdatedAt = s.now().UTC()

	if err := s.resources.Update(ctx, *resource); err != nil {
		return domain.Resource{}, fmt.Errorf("update resource: %w", err)
	}
	return *resource, nil
}

// Delete removes a resource. Only the uploader or a scope-bypassing role may
// delete; file cleanup is best-effort and never blocks the deletion.
func (s *ResourceService) Delete(ctx context.Context, actor domain.User, id string) error {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if resource.UploaderID != actor.ID && !actor.Role.CanBypassScope() {
		return ErrForbidden
	}

	if err := s.resources.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}

	s.deleteFile(ctx, resource.FilePath)
	return nil
}

// Get fetches a single resource. A resource outside the actor's cohort is
// indistinguishable from a missing one.
func (s *ResourceService) Get(ctx context.Context, actor domain.User, id string) (domain.Resource, error) {
	resource, err := s.resources.GetByID(ctx, id)
	if err != nil {
		return domain.Resource{}, err
	}

	if !actor.Role.CanBypassScope() && !resource.Cohort().Equals(actor.Cohort()) {
		return domain.Resource{}, repository.ErrNotFound
	}
	return *resource, nil
}

// List returns the resources visible to the actor, narrowed by the filter.
func (s *ResourceService) List(ctx context.Context, actor domain.User, filter port.ResourceFilter) ([]domain.Resource, error) {
	return s.resources.List(ctx, s.scope(actor), filter)
}

// Search performs a case-insensitive title search within the actor's
// visibility.
func (s *ResourceService) Search(ctx context.Context, actor domain.User, query string) ([]domain.Resource, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query is required")
	}
	return s.resources.List(ctx, s.scope(actor), port.ResourceFilter{TitleSearch: query})
}

// Courses lists the course catalogue of one department.
func (s *ResourceService) Courses(ctx context.Context, departmentCode string) ([]domain.Course, error) {
	departmentCode = strings.TrimSpace(departmentCode)
	if departmentCode == "" {
		return nil, fmt.Errorf("department code is required")
	}
	return s.courses.ListByDepartment(ctx, departmentCode)
}

// Semesters lists every known semester.
func (s *ResourceService) Semesters(ctx context.Context) ([]domain.Semester, error) {
	return s.semesters.List(ctx)
}

// ListMine returns the resources the actor uploaded.
func (s *ResourceService) ListMine(ctx context.Context, actor domain.User) ([]domain.Resource, error) {
	return s.resources.ListByUploader(ctx, actor.ID)
}

func (s *ResourceService) deleteFile(ctx context.Context, url string) {
	if s.attachments == nil || url == "" {
		return
	}
	if err := s.attachments.Delete(ctx, url); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("delete resource file failed", zap.String("url", url), zap.Error(err))
	}
}

func (s *ResourceService) scope(actor domain.User) *domain.Cohort {
	if actor.Role.CanBypassScope() {
		return nil
	}
	cohort := actor.Cohort()
	return &cohort
}
