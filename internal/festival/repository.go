package festival

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, f *Festival) error
	GetByID(ctx context.Context, id string) (*Festival, error)
	List(ctx context.Context, filter Filter) ([]*Festival, int, error)
	Update(ctx context.Context, f *Festival) error

	// Upcoming returns festivals still running or yet to start, soonest
	// first, capped at limit.
	Upcoming(ctx context.Context, today time.Time, limit int) ([]*Festival, error)

	// RollStatuses rewrites every non-cancelled festival's status from its
	// dates as of today. Returns the number of rows that changed.
	RollStatuses(ctx context.Context, today time.Time) (int, error)

	CreateBooking(ctx context.Context, b *Booking) error
	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error)

	// MutateBooking loads the booking with a row lock, applies fn, and
	// persists the status.
	MutateBooking(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const festivalColumns = `
	f.id, f.temple_id, t.name, f.name, f.description,
	f.start_date, f.end_date, f.expected_attendance, f.status, f.created_at, f.updated_at`

func scanFestival(row pgx.Row, extra ...any) (*Festival, error) {
	var f Festival
	dest := []any{
		&f.ID, &f.TempleID, &f.TempleName, &f.Name, &f.Description,
		&f.StartDate, &f.EndDate, &f.ExpectedAttendance, &f.Status, &f.CreatedAt, &f.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *pgxRepository) Create(ctx context.Context, f *Festival) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.festivals").
		Columns("temple_id", "name", "description", "start_date", "end_date", "expected_attendance", "status").
		Values(f.TempleID, f.Name, f.Description, f.StartDate, f.EndDate, f.ExpectedAttendance, f.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create festival query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return fmt.Errorf("create festival failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Festival, error) {
	query := `
		SELECT ` + festivalColumns + `
		FROM public.festivals f
		JOIN public.temples t ON f.temple_id = t.id
		WHERE f.id = $1
	`
	f, err := scanFestival(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get festival failed: %w", err)
	}
	return f, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Festival, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"f.id", "f.temple_id", "t.name", "f.name", "f.description",
		"f.start_date", "f.end_date", "f.expected_attendance", "f.status", "f.created_at", "f.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.festivals f").
		Join("public.temples t ON f.temple_id = t.id")

	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"f.temple_id": filter.TempleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"f.status": filter.Status})
	}

	query = query.OrderBy("f.start_date ASC")

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
		return nil, 0, fmt.Errorf("build list festivals query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list festivals failed: %w", err)
	}
	defer rows.Close()

	var festivals []*Festival
	var total int
	for rows.Next() {
		f, err := scanFestival(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan festival failed: %w", err)
		}
		festivals = append(festivals, f)
	}

	return festivals, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, f *Festival) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.festivals").
		Set("name", f.Name).
		Set("description", f.Description).
		Set("start_date", f.StartDate).
		Set("end_date", f.EndDate).
		Set("expected_attendance", f.ExpectedAttendance).
		Set("status", f.Status).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": f.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update festival query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update festival failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Upcoming(ctx context.Context, today time.Time, limit int) ([]*Festival, error) {
	query := `
		SELECT ` + festivalColumns + `
		FROM public.festivals f
		JOIN public.temples t ON f.temple_id = t.id
		WHERE f.end_date >= $1 AND f.status <> 'cancelled'
		ORDER BY f.start_date ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, today, limit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming festivals failed: %w", err)
	}
	defer rows.Close()

	var festivals []*Festival
	for rows.Next() {
		f, err := scanFestival(rows)
		if err != nil {
			return nil, fmt.Errorf("scan festival failed: %w", err)
		}
		festivals = append(festivals, f)
	}
	return festivals, nil
}

func (r *pgxRepository) RollStatuses(ctx context.Context, today time.Time) (int, error) {
	const query = `
		UPDATE public.festivals
		SET status = CASE
			WHEN start_date > $1 THEN 'upcoming'
			WHEN end_date < $1 THEN 'completed'
			ELSE 'ongoing'
		END,
		updated_at = now()
		WHERE status <> 'cancelled'
		AND status <> CASE
			WHEN start_date > $1 THEN 'upcoming'
			WHEN end_date < $1 THEN 'completed'
			ELSE 'ongoing'
		END
	`
	tag, err := r.pool.Exec(ctx, query, today)
	if err != nil {
		return 0, fmt.Errorf("roll festival statuses failed: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

func (r *pgxRepository) CreateBooking(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.festival_bookings").
		Columns("festival_id", "user_id", "people", "notes", "status").
		Values(b.FestivalID, b.UserID, b.People, b.Notes, b.Status).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create festival booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create festival booking failed: %w", err)
	}
	return nil
}

const bookingJoinColumns = `
	fb.id, fb.festival_id, f.name, f.temple_id, fb.user_id, u.display_name,
	fb.people, fb.notes, fb.status, fb.created_at, fb.updated_at`

func scanJoinedBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var displayName *string
	dest := []any{
		&b.ID, &b.FestivalID, &b.FestivalName, &b.TempleID, &b.UserID, &displayName,
		&b.People, &b.Notes, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	if displayName != nil {
		b.UserName = *displayName
	}
	return &b, nil
}

func (r *pgxRepository) GetBookingByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingJoinColumns + `
		FROM public.festival_bookings fb
		JOIN public.festivals f ON fb.festival_id = f.id
		JOIN public.users u ON fb.user_id = u.id
		WHERE fb.id = $1
	`
	b, err := scanJoinedBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get festival booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"fb.id", "fb.festival_id", "f.name", "f.temple_id", "fb.user_id", "u.display_name",
		"fb.people", "fb.notes", "fb.status", "fb.created_at", "fb.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.festival_bookings fb").
		Join("public.festivals f ON fb.festival_id = f.id").
		Join("public.users u ON fb.user_id = u.id")

	if filter.FestivalID != "" {
		query = query.Where(squirrel.Eq{"fb.festival_id": filter.FestivalID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"fb.user_id": filter.UserID})
	}
	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"f.temple_id": filter.TempleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"fb.status": filter.Status})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("fb.created_at " + orderDir)

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
		return nil, 0, fmt.Errorf("build list festival bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list festival bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanJoinedBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan festival booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) MutateBooking(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin mutate festival booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		SELECT id, festival_id, user_id, people, notes, status, created_at, updated_at
		FROM public.festival_bookings
		WHERE id = $1
		FOR UPDATE
	`
	var b Booking
	err = tx.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.FestivalID, &b.UserID, &b.People, &b.Notes,
		&b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lock festival booking failed: %w", err)
	}

	if err := fn(&b); err != nil {
		return nil, err
	}

	const update = `
		UPDATE public.festival_bookings
		SET status = $1, updated_at = now()
		WHERE id = $2
		RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, update, b.Status, b.ID).Scan(&b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update festival booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit mutate festival booking failed: %w", err)
	}
	return &b, nil
}
