package temple

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, t *Temple) error
	GetByID(ctx context.Context, id string) (*Temple, error)
	List(ctx context.Context, filter Filter) ([]*Temple, int, error)
	Update(ctx context.Context, t *Temple) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, t *Temple) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.temples").
		Columns("name", "location", "description", "established_date", "contact_number", "email").
		Values(t.Name, t.Location, t.Description, t.EstablishedDate, t.ContactNumber, t.Email).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create temple query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&t.ID, &t.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Temple, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "location", "description", "established_date",
		"contact_number", "email", "created_at",
	).
		From("public.temples").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get temple query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var t Temple
	if err := row.Scan(
		&t.ID, &t.Name, &t.Location, &t.Description, &t.EstablishedDate,
		&t.ContactNumber, &t.Email, &t.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get temple failed: %w", err)
	}
	return &t, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Temple, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "location", "description", "established_date",
		"contact_number", "email", "created_at",
		"count(*) OVER() as total_count",
	).From("public.temples")

	if filter.Keyword != "" {
		kw := "%" + filter.Keyword + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"name": kw},
			squirrel.ILike{"location": kw},
			squirrel.ILike{"description": kw},
		})
	}

	query = query.OrderBy("name ASC")

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
		return nil, 0, fmt.Errorf("build list temples query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list temples failed: %w", err)
	}
	defer rows.Close()

	var temples []*Temple
	var total int
	for rows.Next() {
		var t Temple
		if err := rows.Scan(
			&t.ID, &t.Name, &t.Location, &t.Description, &t.EstablishedDate,
			&t.ContactNumber, &t.Email, &t.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan temple failed: %w", err)
		}
		temples = append(temples, &t)
	}

	return temples, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, t *Temple) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.temples").
		Set("name", t.Name).
		Set("location", t.Location).
		Set("description", t.Description).
		Set("established_date", t.EstablishedDate).
		Set("contact_number", t.ContactNumber).
		Set("email", t.Email).
		Where(squirrel.Eq{"id": t.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update temple query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update temple failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
