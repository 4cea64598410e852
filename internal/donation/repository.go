package donation

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, d *Donation) error
	GetByID(ctx context.Context, id string) (*Donation, error)
	List(ctx context.Context, filter Filter) ([]*Donation, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, d *Donation) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.donations").
		Columns("temple_id", "user_id", "donor_name", "purpose", "amount", "note").
		Values(d.TempleID, d.UserID, d.DonorName, d.Purpose, d.Amount, d.Note).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create donation query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&d.ID, &d.CreatedAt); err != nil {
		return fmt.Errorf("create donation failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Donation, error) {
	const query = `
		SELECT d.id, d.temple_id, t.name, d.user_id, d.donor_name, d.purpose, d.amount, d.note, d.created_at
		FROM public.donations d
		JOIN public.temples t ON d.temple_id = t.id
		WHERE d.id = $1
	`
	var d Donation
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID, &d.TempleID, &d.TempleName, &d.UserID, &d.DonorName, &d.Purpose, &d.Amount, &d.Note, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get donation failed: %w", err)
	}
	return &d, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Donation, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"d.id", "d.temple_id", "t.name", "d.user_id", "d.donor_name", "d.purpose",
		"d.amount", "d.note", "d.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.donations d").
		Join("public.temples t ON d.temple_id = t.id")

	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"d.temple_id": filter.TempleID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"d.user_id": filter.UserID})
	}
	if filter.From != nil {
		query = query.Where(squirrel.GtOrEq{"d.created_at": filter.From})
	}
	if filter.To != nil {
		query = query.Where(squirrel.LtOrEq{"d.created_at": filter.To})
	}

	query = query.OrderBy("d.created_at DESC")

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
		return nil, 0, fmt.Errorf("build list donations query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list donations failed: %w", err)
	}
	defer rows.Close()

	var donations []*Donation
	var total int
	for rows.Next() {
		var d Donation
		if err := rows.Scan(
			&d.ID, &d.TempleID, &d.TempleName, &d.UserID, &d.DonorName, &d.Purpose,
			&d.Amount, &d.Note, &d.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan donation failed: %w", err)
		}
		donations = append(donations, &d)
	}

	return donations, total, nil
}
