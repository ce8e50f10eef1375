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

// CourseRepository implements port.CourseRepository using PostgreSQL.
type CourseRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewCourseRepository wires a PostgreSQL-backed course repository.
func NewCourseRepository(pool *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a course; an existing course code is left untouched.
func (r *CourseRepository) Create(ctx context.Context, course domain.Course) error {
	stmt, args, err := r.builder.Insert("sphere.courses").
		Columns("id", "course_code", "course_name", "department_code").
		Values(course.ID, course.CourseCode, course.CourseName, course.DepartmentCode).
		Suffix("ON CONFLICT (course_code) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert course sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert course: %w", err)
	}
	return nil
}

// GetByCode retrieves a course by its code.
func (r *CourseRepository) GetByCode(ctx context.Context, courseCode string) (*domain.Course, error) {
	stmt, args, err := r.builder.
		Select("id", "course_code", "course_name", "department_code").
		From("sphere.courses").
		Where(squirrel.Eq{"course_code": courseCode}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select course sql: %w", err)
	}

	var course domain.Course
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&course.ID,
		&course.CourseCode,
		&course.CourseName,
		&course.DepartmentCode,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan course: %w", err)
	}
	return &course, nil
}

// ListByDepartment retrieves every course of one department.
func (r *CourseRepository) ListByDepartment(ctx context.Context, departmentCode string) ([]domain.Course, error) {
	stmt, args, err := r.builder.
		Select("id", "course_code", "course_name", "department_code").
		From("sphere.courses").
		Where(squirrel.Eq{"department_code": departmentCode}).
		OrderBy("course_code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list courses sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	var courses []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := rows.Scan(&course.ID, &course.CourseCode, &course.CourseName, &course.DepartmentCode); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return courses, nil
}

// Count reports the total number of course rows.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	stmt, args, err := r.builder.Select("count(*)").From("sphere.courses").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count courses sql: %w", err)
	}

	var count int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return count, nil
}

// SemesterRepository implements port.SemesterRepository using PostgreSQL.
type SemesterRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewSemesterRepository wires a PostgreSQL-backed semester repository.
func NewSemesterRepository(pool *pgxpool.Pool) *SemesterRepository {
	return &SemesterRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a semester; an existing name is left untouched.
func (r *SemesterRepository) Create(ctx context.Context, semester domain.Semester) error {
	stmt, args, err := r.builder.Insert("sphere.semesters").
		Columns("id", "name").
		Values(semester.ID, semester.Name).
		Suffix("ON CONFLICT (name) DO NOTHING").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert semester sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert semester: %w", err)
	}
	return nil
}

// GetByName retrieves a semester by its display name.
func (r *SemesterRepository) GetByName(ctx context.Context, name string) (*domain.Semester, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("sphere.semesters").
		Where(squirrel.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select semester sql: %w", err)
	}

	var semester domain.Semester
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&semester.ID, &semester.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan semester: %w", err)
	}
	return &semester, nil
}

// List retrieves every semester.
func (r *SemesterRepository) List(ctx context.Context) ([]domain.Semester, error) {
	stmt, args, err := r.builder.
		Select("id", "name").
		From("sphere.semesters").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list semesters sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list semesters: %w", err)
	}
	defer rows.Close()

	var semesters []domain.Semester
	for rows.Next() {
		var semester domain.Semester
		if err := rows.Scan(&semester.ID, &semester.Name); err != nil {
			return nil, fmt.Errorf("scan semester: %w", err)
		}
		semesters = append(semesters, semester)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate semesters: %w", err)
	}
	return semesters, nil
}

// Count reports the total number of semester rows.
func (r *SemesterRepository) Count(ctx context.Context) (int, error) {
	stmt, args, err := r.builder.Select("count(*)").From("sphere.semesters").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count semesters sql: %w", err)
	}

	var count int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count semesters: %w", err)
	}
	return count, nil
}

var _ port.CourseRepository = (*CourseRepository)(nil)
var _ port.SemesterRepository = (*SemesterRepository)(nil)
