package event

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter Filter) ([]*Event, int, error)
	Update(ctx context.Context, e *Event) error

	// Upcoming returns active events starting at or after now, soonest first.
	Upcoming(ctx context.Context, now time.Time, limit int) ([]*Event, error)

	// Register inserts a registration; one row per user per event.
	Register(ctx context.Context, reg *Registration) error
	ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error)
	ListUserRegistrations(ctx context.Context, userID string) ([]*Registration, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const eventColumns = `
	e.id, e.temple_id, t.name, e.name, e.description, e.location,
	e.starts_at, e.ends_at, e.is_active, e.created_at, e.updated_at`

func scanEvent(row pgx.Row, extra ...any) (*Event, error) {
	var e Event
	dest := []any{
		&e.ID, &e.TempleID, &e.TempleName, &e.Name, &e.Description, &e.Location,
		&e.StartsAt, &e.EndsAt, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *pgxRepository) Create(ctx context.Context, e *Event) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.events").
		Columns("temple_id", "name", "description", "location", "starts_at", "ends_at", "is_active").
		Values(e.TempleID, e.Name, e.Description, e.Location, e.StartsAt, e.EndsAt, e.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create event query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return fmt.Errorf("create event failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM public.events e
		JOIN public.temples t ON e.temple_id = t.id
		WHERE e.id = $1
	`
	e, err := scanEvent(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event failed: %w", err)
	}
	return e, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Event, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"e.id", "e.temple_id", "t.name", "e.name", "e.description", "e.location",
		"e.starts_at", "e.ends_at", "e.is_active", "e.created_at", "e.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.events e").
		Join("public.temples t ON e.temple_id = t.id")

	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"e.temple_id": filter.TempleID})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"e.is_active": true})
	}
	if filter.UpcomingOnly {
		query = query.Where(squirrel.Expr("e.starts_at >= now()"))
	}

	query = query.OrderBy("e.starts_at ASC")

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
		return nil, 0, fmt.Errorf("build list events query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	var total int
	for rows.Next() {
		e, err := scanEvent(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan event failed: %w", err)
		}
		events = append(events, e)
	}

	return events, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, e *Event) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.events").
		Set("name", e.Name).
		Set("description", e.Description).
		Set("location", e.Location).
		Set("starts_at", e.StartsAt).
		Set("ends_at", e.EndsAt).
		Set("is_active", e.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": e.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update event query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update event failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Upcoming(ctx context.Context, now time.Time, limit int) ([]*Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM public.events e
		JOIN public.temples t ON e.temple_id = t.id
		WHERE e.is_active AND e.starts_at >= $1
		ORDER BY e.starts_at ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, now, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming events failed: %w", err)
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan event failed: %w", err)
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *pgxRepository) Register(ctx context.Context, reg *Registration) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.event_registrations").
		Columns("event_id", "user_id", "people").
		Values(reg.EventID, reg.UserID, reg.People).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build register query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&reg.ID, &reg.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyRegistered
		}
		return fmt.Errorf("register for event failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListRegistrations(ctx context.Context, eventID string) ([]*Registration, error) {
	const query = `
		SELECT r.id, r.event_id, e.name, r.user_id, COALESCE(u.display_name, ''), r.people, r.created_at
		FROM public.event_registrations r
		JOIN public.events e ON r.event_id = e.id
		JOIN public.users u ON r.user_id = u.id
		WHERE r.event_id = $1
		ORDER BY r.created_at ASC
	`
	return r.queryRegistrations(ctx, query, eventID)
}

func (r *pgxRepository) ListUserRegistrations(ctx context.Context, userID string) ([]*Registration, error) {
	const query = `
		SELECT r.id, r.event_id, e.name, r.user_id, COALESCE(u.display_name, ''), r.people, r.created_at
		FROM public.event_registrations r
		JOIN public.events e ON r.event_id = e.id
		JOIN public.users u ON r.user_id = u.id
		WHERE r.user_id = $1
		ORDER BY r.created_at DESC
	`
	return r.queryRegistrations(ctx, query, userID)
}

func (r *pgxRepository) queryRegistrations(ctx context.Context, query string, arg any) ([]*Registration, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list registrations failed: %w", err)
	}
	defer rows.Close()

	var regs []*Registration
	for rows.Next() {
		var reg Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.EventName, &reg.UserID, &reg.UserName,
			&reg.People, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration failed: %w", err)
		}
		regs = append(regs, &reg)
	}
	return regs, nil
}
