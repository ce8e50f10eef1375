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

var userColumns = []string{
	"id",
	"full_name",
	"email",
	"password_hash",
	"hall",
	"bio",
	"batch",
	"department",
	"student_id",
	"role",
	"is_active",
	"profile_image",
	"background_image",
	"created_at",
	"updated_at",
}

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	if tx == nil {
		return r
	}
	return &UserRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	query := r.builder.Insert("sphere.users").
		Columns(userColumns...).
		Values(
			user.ID,
			user.FullName,
			user.Email,
			user.PasswordHash,
			user.Hall,
			user.Bio,
			user.Batch,
			user.Department,
			user.StudentID,
			user.Role,
			user.IsActive,
			user.ProfileImage,
			user.BackgroundImage,
			user.CreatedAt,
			user.UpdatedAt,
		)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, sql, args...); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	stmt, args, err := r.builder.
		Select(userColumns...).
		From("sphere.users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return user, nil
}

// Update rewrites the mutable profile columns of an existing user.
func (r *UserRepository) Update(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.
		Update("sphere.users").
		Set("full_name", user.FullName).
		Set("hall", user.Hall).
		Set("bio", user.Bio).
		Set("is_active", user.IsActive).
		Set("profile_image", user.ProfileImage).
		Set("background_image", user.BackgroundImage).
		Set("updated_at", user.UpdatedAt).
		Where(squirrel.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update user sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// UpdateRole transitions a user's role in a single conditional write. The
// WHERE clause pins the expected current role, so a concurrent transition
// makes this statement match zero rows instead of clobbering it.
func (r *UserRepository) UpdateRole(ctx context.Context, email string, fromRole, toRole domain.Role) error {
	stmt, args, err := r.builder.
		Update("sphere.users").
		Set("role", toRole).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"email": email, "role": fromRole}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update role sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// ListByCohort retrieves every user in a (batch, department) pair.
func (r *UserRepository) ListByCohort(ctx context.Context, cohort domain.Cohort) ([]domain.User, error) {
	return r.list(ctx, squirrel.Eq{"batch": cohort.Batch, "department": cohort.Department})
}

// ListAll retrieves every user.
func (r *UserRepository) ListAll(ctx context.Context) ([]domain.User, error) {
	return r.list(ctx, nil)
}

func (r *UserRepository) list(ctx context.Context, where squirrel.Eq) ([]domain.User, error) {
	query := r.builder.
		Select(userColumns...).
		From("sphere.users").
		OrderBy("email ASC")
	if where != nil {
		query = query.Where(where)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.FullName,
		&user.Email,
		&user.PasswordHash,
		&user.Hall,
		&user.Bio,
		&user.Batch,
		&user.Department,
		&user.StudentID,
		&user.Role,
		&user.IsActive,
		&user.ProfileImage,
		&user.BackgroundImage,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
