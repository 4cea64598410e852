package offering

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
	Create(ctx context.Context, o *Offering) error
	GetByID(ctx context.Context, id string) (*Offering, error)
	List(ctx context.Context, filter Filter) ([]*Offering, int, error)
	Update(ctx context.Context, o *Offering) error

	// CreateBookingIfCapacity inserts the booking unless the offering's
	// daily cap would be exceeded. The headcount check and the insert run
	// in one transaction under a per-offering advisory lock. maxPerDay of
	// zero disables the check. Returns ErrCapacityReached when full.
	CreateBookingIfCapacity(ctx context.Context, b *Booking, maxPerDay int) error

	GetBookingByID(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error)

	// BookedPeople sums the party sizes of active bookings for the
	// offering on the given date.
	BookedPeople(ctx context.Context, offeringID string, date time.Time) (int, error)

	// MutateBooking loads the booking with a row lock, applies fn, and
	// persists status and payment fields.
	MutateBooking(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func activeStatusStrings() []string {
	out := make([]string, len(ActiveStatuses))
	for i, s := range ActiveStatuses {
		out[i] = string(s)
	}
	return out
}

func (r *pgxRepository) Create(ctx context.Context, o *Offering) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.offerings").
		Columns("temple_id", "name", "kind", "description", "price", "max_per_day", "is_active").
		Values(o.TempleID, o.Name, o.Kind, o.Description, o.Price, o.MaxPerDay, o.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create offering query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return fmt.Errorf("create offering failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Offering, error) {
	const query = `
		SELECT o.id, o.temple_id, t.name, o.name, o.kind, o.description,
		       o.price, o.max_per_day, o.is_active, o.created_at, o.updated_at
		FROM public.offerings o
		JOIN public.temples t ON o.temple_id = t.id
		WHERE o.id = $1
	`
	var o Offering
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.TempleID, &o.TempleName, &o.Name, &o.Kind, &o.Description,
		&o.Price, &o.MaxPerDay, &o.IsActive, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get offering failed: %w", err)
	}
	return &o, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Offering, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"o.id", "o.temple_id", "t.name", "o.name", "o.kind", "o.description",
		"o.price", "o.max_per_day", "o.is_active", "o.created_at", "o.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.offerings o").
		Join("public.temples t ON o.temple_id = t.id")

	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"o.temple_id": filter.TempleID})
	}
	if filter.Kind != "" {
		query = query.Where(squirrel.Eq{"o.kind": filter.Kind})
	}
	if filter.ActiveOnly {
		query = query.Where(squirrel.Eq{"o.is_active": true})
	}

	query = query.OrderBy("o.name ASC")

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
		return nil, 0, fmt.Errorf("build list offerings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offerings failed: %w", err)
	}
	defer rows.Close()

	var offerings []*Offering
	var total int
	for rows.Next() {
		var o Offering
		if err := rows.Scan(
			&o.ID, &o.TempleID, &o.TempleName, &o.Name, &o.Kind, &o.Description,
			&o.Price, &o.MaxPerDay, &o.IsActive, &o.CreatedAt, &o.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan offering failed: %w", err)
		}
		offerings = append(offerings, &o)
	}

	return offerings, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, o *Offering) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.offerings").
		Set("name", o.Name).
		Set("description", o.Description).
		Set("price", o.Price).
		Set("max_per_day", o.MaxPerDay).
		Set("is_active", o.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": o.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update offering query failed: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update offering failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CreateBookingIfCapacity(ctx context.Context, b *Booking, maxPerDay int) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create offering booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent bookings per offering for the rest of this tx.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", b.OfferingID); err != nil {
		return fmt.Errorf("acquire offering lock failed: %w", err)
	}

	if maxPerDay > 0 {
		const sumQuery = `
			SELECT COALESCE(SUM(people), 0)
			FROM public.offering_bookings
			WHERE offering_id = $1 AND booking_date = $2 AND status = ANY($3)
		`
		var booked int
		if err := tx.QueryRow(ctx, sumQuery, b.OfferingID, b.Date, activeStatusStrings()).Scan(&booked); err != nil {
			return fmt.Errorf("sum booked people failed: %w", err)
		}
		if booked+b.People > maxPerDay {
			return ErrCapacityReached
		}
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.offering_bookings").
		Columns("offering_id", "user_id", "booking_date", "people", "devotee_names",
			"status", "payment_settled", "amount").
		Values(b.OfferingID, b.UserID, b.Date, b.People, b.DevoteeNames,
			b.Status, b.PaymentSettled, b.Amount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create offering booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create offering booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create offering booking failed: %w", err)
	}
	return nil
}

const bookingJoinColumns = `
	ob.id, ob.offering_id, o.name, o.kind, o.temple_id, ob.user_id, u.display_name,
	ob.booking_date, ob.people, ob.devotee_names, ob.status, ob.payment_settled,
	ob.amount, ob.created_at, ob.updated_at`

func scanJoinedBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var displayName *string
	dest := []any{
		&b.ID, &b.OfferingID, &b.OfferingName, &b.Kind, &b.TempleID, &b.UserID, &displayName,
		&b.Date, &b.People, &b.DevoteeNames, &b.Status, &b.PaymentSettled,
		&b.Amount, &b.CreatedAt, &b.UpdatedAt,
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
		FROM public.offering_bookings ob
		JOIN public.offerings o ON ob.offering_id = o.id
		JOIN public.users u ON ob.user_id = u.id
		WHERE ob.id = $1
	`
	b, err := scanJoinedBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("get offering booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) ListBookings(ctx context.Context, filter BookingFilter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"ob.id", "ob.offering_id", "o.name", "o.kind", "o.temple_id", "ob.user_id", "u.display_name",
		"ob.booking_date", "ob.people", "ob.devotee_names", "ob.status", "ob.payment_settled",
		"ob.amount", "ob.created_at", "ob.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.offering_bookings ob").
		Join("public.offerings o ON ob.offering_id = o.id").
		Join("public.users u ON ob.user_id = u.id")

	if filter.OfferingID != "" {
		query = query.Where(squirrel.Eq{"ob.offering_id": filter.OfferingID})
	}
	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"ob.user_id": filter.UserID})
	}
	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"o.temple_id": filter.TempleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"ob.status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"ob.booking_date": filter.DateFrom})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"ob.booking_date": filter.DateTo})
	}

	orderDir := "DESC"
	if filter.SortOrder != "" {
		orderDir = filter.SortOrder
	}
	query = query.OrderBy("ob.created_at " + orderDir)

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
		return nil, 0, fmt.Errorf("build list offering bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offering bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanJoinedBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan offering booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) BookedPeople(ctx context.Context, offeringID string, date time.Time) (int, error) {
	const query = `
		SELECT COALESCE(SUM(people), 0)
		FROM public.offering_bookings
		WHERE offering_id = $1 AND booking_date = $2 AND status = ANY($3)
	`
	var booked int
	if err := r.pool.QueryRow(ctx, query, offeringID, date, activeStatusStrings()).Scan(&booked); err != nil {
		return 0, fmt.Errorf("sum booked people failed: %w", err)
	}
	return booked, nil
}

func (r *pgxRepository) MutateBooking(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin mutate offering booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		SELECT id, offering_id, user_id, booking_date, people, devotee_names,
		       status, payment_settled, amount, created_at, updated_at
		FROM public.offering_bookings
		WHERE id = $1
		FOR UPDATE
	`
	var b Booking
	err = tx.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.OfferingID, &b.UserID, &b.Date, &b.People, &b.DevoteeNames,
		&b.Status, &b.PaymentSettled, &b.Amount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, fmt.Errorf("lock offering booking failed: %w", err)
	}

	if err := fn(&b); err != nil {
		return nil, err
	}

	const update = `
		UPDATE public.offering_bookings
		SET status = $1, payment_settled = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, update, b.Status, b.PaymentSettled, b.ID).Scan(&b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update offering booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit mutate offering booking failed: %w", err)
	}
	return &b, nil
}
