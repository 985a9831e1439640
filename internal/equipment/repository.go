package equipment

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Equipment) error
	GetByID(ctx context.Context, id string) (*Equipment, error)
	List(ctx context.Context, filter Filter) ([]*Equipment, int, error)
	Update(ctx context.Context, e *Equipment) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

var selectColumns = []string{
	"e.id", "e.name", "e.category", "e.location", "e.contact_user_id",
	"COALESCE(u.display_name, '')", "e.description", "e.photo_file_id",
	"e.is_active", "e.created_at", "e.updated_at",
}

func (r *pgxRepository) Create(ctx context.Context, e *Equipment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.equipment").
		Columns("name", "category", "location", "contact_user_id", "description", "is_active").
		Values(e.Name, e.Category, e.Location, e.ContactUserID, e.Description, e.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create equipment query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("create equipment failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Equipment, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(selectColumns...).
		From("public.equipment e").
		LeftJoin("public.users u ON e.contact_user_id = u.id").
		Where(squirrel.Eq{"e.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get equipment query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var e Equipment
	if err := row.Scan(
		&e.ID, &e.Name, &e.Category, &e.Location, &e.ContactUserID,
		&e.ContactName, &e.Description, &e.PhotoFileID,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get equipment failed: %w", err)
	}
	return &e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Equipment, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	cols := append(append([]string{}, selectColumns...), "count(*) OVER() AS total_count")
	query := psql.Select(cols...).
		From("public.equipment e").
		LeftJoin("public.users u ON e.contact_user_id = u.id")

	if filter.Name != "" {
		query = query.Where(squirrel.ILike{"e.name": "%" + filter.Name + "%"})
	}
	if filter.Category != "" {
		query = query.Where(squirrel.Eq{"e.category": filter.Category})
	}
	if filter.Location != "" {
		query = query.Where(squirrel.ILike{"e.location": "%" + filter.Location + "%"})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"e.is_active": *filter.IsActive})
	}

	orderBy := "e.created_at"
	if filter.SortBy != "" {
		orderBy = "e." + filter.SortBy
	}
	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy(orderBy + " " + orderDir)

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list equipment query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list equipment failed: %w", err)
	}
	defer rows.Close()

	var items []*Equipment
	var total int

	for rows.Next() {
		var e Equipment
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Category, &e.Location, &e.ContactUserID,
			&e.ContactName, &e.Description, &e.PhotoFileID,
			&e.IsActive, &e.CreatedAt, &e.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan equipment failed: %w", err)
		}
		items = append(items, &e)
	}

	return items, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Equipment) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.equipment").
		Set("name", e.Name).
		Set("category", e.Category).
		Set("location", e.Location).
		Set("contact_user_id", e.ContactUserID).
		Set("description", e.Description).
		Set("photo_file_id", e.PhotoFileID).
		Set("is_active", e.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update equipment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNameTaken
		}
		return fmt.Errorf("update equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete performs a soft delete so existing bookings keep a valid reference.
func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.equipment").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete equipment query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete equipment failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
