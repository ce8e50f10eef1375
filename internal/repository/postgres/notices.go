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

const defaultNoticePageSize = 50

var noticeColumns = []string{
	"id",
	"batch",
	"department",
	"title",
	"message",
	"attachment",
	"notice_type",
	"sender_id",
	"sender_name",
	"sender_email",
	"created_at",
	"updated_at",
}

// NoticeRepository implements port.NoticeRepository using PostgreSQL.
type NoticeRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewNoticeRepository wires a PostgreSQL-backed notice repository.
func NewNoticeRepository(pool *pgxpool.Pool) *NoticeRepository {
	return &NoticeRepository{
		pool:    pool,
		exec:    pool,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *NoticeRepository) WithTx(tx pgx.Tx) *NoticeRepository {
	if tx == nil {
		return r
	}
	return &NoticeRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new notice row.
func (r *NoticeRepository) Create(ctx context.Context, notice domain.Notice) error {
	stmt, args, err := r.builder.Insert("sphere.notices").
		Columns(noticeColumns...).
		Values(
			notice.ID,
			notice.Batch,
			notice.Department,
			notice.Title,
			notice.Message,
			notice.Attachment,
			notice.NoticeType,
			notice.SenderID,
			notice.SenderName,
			notice.SenderEmail,
			notice.CreatedAt,
			notice.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert notice sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

// GetByID retrieves a notice by identifier.
func (r *NoticeRepository) GetByID(ctx context.Context, id string) (*domain.Notice, error) {
	stmt, args, err := r.builder.
		Select(noticeColumns...).
		From("sphere.notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select notice sql: %w", err)
	}

	notice, err := scanNotice(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan notice: %w", err)
	}
	return notice, nil
}

// Delete removes a notice row.
func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.
		Delete("sphere.notices").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete notice sql: %w", err)
	}

	tag, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// List retrieves notices newest first, optionally restricted to one cohort
// and one type.
func (r *NoticeRepository) List(ctx context.Context, scope *domain.Cohort, noticeType domain.NoticeType, page port.Page) ([]domain.Notice, error) {
	query := r.builder.
		Select(noticeColumns...).
		From("sphere.notices").
		OrderBy("created_at DESC")

	if scope != nil {
		query = query.Where(squirrel.Eq{"batch": scope.Batch, "department": scope.Department})
	}
	if noticeType != "" {
		query = query.Where(squirrel.Eq{"notice_type": noticeType})
	}

	size := page.Size
	if size <= 0 {
		size = defaultNoticePageSize
	}
	offset := 0
	if page.Number > 0 {
		offset = page.Number * size
	}
	query = query.Limit(uint64(size)).Offset(uint64(offset))

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notices sql: %w", err)
	}
	return r.queryNotices(ctx, stmt, args)
}

// ListBySender retrieves every notice authored by one user, newest first.
func (r *NoticeRepository) ListBySender(ctx context.Context, senderID string) ([]domain.Notice, error) {
	stmt, args, err := r.builder.
		Select(noticeColumns...).
		From("sphere.notices").
		Where(squirrel.Eq{"sender_id": senderID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list notices by sender sql: %w", err)
	}
	return r.queryNotices(ctx, stmt, args)
}

func (r *NoticeRepository) queryNotices(ctx context.Context, stmt string, args []any) ([]domain.Notice, error) {
	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query notices: %w", err)
	}
	defer rows.Close()

	var notices []domain.Notice
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, fmt.Errorf("scan notice: %w", err)
		}
		notices = append(notices, *notice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate notices: %w", err)
	}
	return notices, nil
}

func scanNotice(row pgx.Row) (*domain.Notice, error) {
	var notice domain.Notice
	if err := row.Scan(
		&notice.ID,
		&notice.Batch,
		&notice.Department,
		&notice.Title,
		&notice.Message,
		&notice.Attachment,
		&notice.NoticeType,
		&notice.SenderID,
		&notice.SenderName,
		&notice.SenderEmail,
		&notice.CreatedAt,
		&notice.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &notice, nil
}

var _ port.NoticeRepository = (*NoticeRepository)(nil)
