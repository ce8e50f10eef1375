package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/domain"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/core/port"
	"github.com/Saimun-jd/CuetSphere-Backend/internal/repository"
)

// resourceColumns joins the catalogue tables so every read carries the
// course and semester snapshot without extra round trips.
var resourceColumns = []string{
	"r.id",
	"r.batch",
	"r.resource_type",
	"r.title",
	"r.file_path",
	"r.description",
	"c.id",
	"c.course_code",
	"c.course_name",
	"c.department_code",
	"s.id",
	"s.name",
	"r.uploader_id",
	"r.uploader_name",
	"r.uploader_email",
	"r.created_at",
	"r.updated_at",
}

// ResourceRepository implements port.ResourceRepository using PostgreSQL.
type ResourceRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewResourceRepository wires a PostgreSQL-backed resource repository.
func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *ResourceRepository) WithTx(tx pgx.Tx) *ResourceRepository {
	if tx == nil {
		return r
	}
	return &ResourceRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new resource row.
func (r *ResourceRepository) Create(ctx context.Context, resource domain.Resource) error {
	stmt, args, err := r.builder.Insert("sphere.resources").
		Columns(
			"id",
			"batch",
			"resource_type",
			"title",
			"file_path",
			"description",
			"course_id",
			"semester_id",
			"uploader_id",
			"uploader_name",
			"uploader_email",
			"created_at",
			"updated_at",
		).
		Values(
			resource.ID,
			resource.Batch,
			resource.ResourceType,
			resource.Title,
			resource.FilePath,
			resource.Description,
			resource.CourseID,
			resource.SemesterID,
			resource.UploaderID,
			resource.UploaderName,
			resource.UploaderEmail,
			resource.CreatedAt,
			resource.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert resource sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// GetByID retrieves a resource by identifier.
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*domain.Resource, error) {
	stmt, args, err := r.selectResources().
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select resource sql: %w", err)
	}

	resource, err := scanResource(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan resource: %w", err)
	}
	return resource, nil
}

// Update rewrites the editable resource columns.
func (r *ResourceRepository) Update(ctx context.Context, resource domain.Resource) error {
	stmt, args, err := r.builder.
		Update("sphere.resources").
		Set("title", resource.Title).
		Set("description", resource.Description).
		Set("updated_at", resource.UpdatedAt).
		Where(squirrel.Eq{"id": resource.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update resource sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a resource row.
func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("sphere.resources").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete resource sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List retrieves resources newest first, optionally restricted to one cohort
// and narrowed by the filter. The cohort's department matches through the
// course join.
func (r *ResourceRepository) List(ctx context.Context, scope *domain.Cohort, filter port.ResourceFilter) ([]domain.Resource, error) {
	query := r.selectResources().OrderBy("r.created_at DESC")

	if scope != nil {
		query = query.Where(squirrel.Eq{"r.batch": scope.Batch, "c.department_code": scope.Department})
	}
	if filter.CourseCode != "" {
		query = query.Where(squirrel.Eq{"c.course_code": filter.CourseCode})
	}
	if filter.SemesterName != "" {
		query = query.Where(squirrel.Eq{"s.name": filter.SemesterName})
	}
	if filter.ResourceType != "" {
		query = query.Where(squirrel.Eq{"r.resource_type": filter.ResourceType})
	}
	if filter.TitleSearch != "" {
		query = query.Where(squirrel.ILike{"r.title": "%" + filter.TitleSearch + "%"})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list resources sql: %w", err)
	}
	return r.queryResources(ctx, stmt, args)
}

// ListByUploader retrieves every resource uploaded by one user, newest first.
func (r *ResourceRepository) ListByUploader(ctx context.Context, uploaderID string) ([]domain.Resource, error) {
	stmt, args, err := r.selectResources().
		Where(squirrel.Eq{"r.uploader_id": uploaderID}).
		OrderBy("r.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list resources by uploader sql: %w", err)
	}
	return r.queryResources(ctx, stmt, args)
}

func (r *ResourceRepository) selectResources() squirrel.SelectBuilder {
	return r.builder.
		Select(resourceColumns...).
		From("sphere.resources r").
		Join("sphere.courses c ON c.id = r.course_id").
		Join("sphere.semesters s ON s.id = r.semester_id")
}

func (r *ResourceRepository) queryResources(ctx context.Context, stmt string, args []any) ([]domain.Resource, error) {
	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query resources: %w", err)
	}
	defer rows.Close()

	var resources []domain.Resource
	for rows.Next() {
		resource, err := scanResource(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		resources = append(resources, *resource)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate resources: %w", err)
	}
	return resources, nil
}

func scanResource(row pgx.Row) (*domain.Resource, error) {
	var resource domain.Resource
	if err := row.Scan(
		&resource.ID,
		&resource.Batch,
		&resource.ResourceType,
		&resource.Title,
		&resource.FilePath,
		&resource.Description,
		&resource.CourseID,
		&resource.CourseCode,
		&resource.CourseName,
		&resource.DepartmentCode,
		&resource.SemesterID,
		&resource.SemesterName,
		&resource.UploaderID,
		&resource.UploaderName,
		&resource.UploaderEmail,
		&resource.CreatedAt,
		&resource.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &resource, nil
}

var _ port.ResourceRepository = (*ResourceRepository)(nil)
