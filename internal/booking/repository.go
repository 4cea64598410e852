package booking

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
	// CreateIfVacant inserts the booking only if no active booking on the
	// same room overlaps [CheckIn, CheckOut). The overlap check and the
	// insert run in one transaction under a per-room advisory lock, so two
	// concurrent requests for the same room serialize and the loser sees
	// the winner's row. Returns ErrDateConflict on overlap.
	CreateIfVacant(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// HasOverlap checks if any active booking on the room intersects the
	// given half-open range. excludeBookingID ignores a booking's own row.
	// Pure read; used by the availability endpoint.
	HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error)

	// Mutate loads the booking with a row lock, applies fn, and persists
	// status and payment fields. Concurrent mutations of one booking
	// serialize on the row lock. fn returning an error aborts the update.
	Mutate(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error)
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

func (r *pgxRepository) CreateIfVacant(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin create booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Serialize concurrent creates per room for the rest of this tx.
	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock(hashtextextended($1, 0))", b.RoomID); err != nil {
		return fmt.Errorf("acquire room lock failed: %w", err)
	}

	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	sub, args, err := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": b.RoomID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"check_in": b.CheckOut}).
		Where(squirrel.Gt{"check_out": b.CheckIn}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build overlap query failed: %w", err)
	}

	var exists bool
	if err := tx.QueryRow(ctx, "SELECT EXISTS ("+sub+")", args...).Scan(&exists); err != nil {
		return fmt.Errorf("check overlap failed: %w", err)
	}
	if exists {
		return ErrDateConflict
	}

	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "room_id", "check_in", "check_out", "adults", "children",
			"special_requests", "status", "payment_settled", "total_amount").
		Values(b.UserID, b.RoomID, b.CheckIn, b.CheckOut, b.Adults, b.Children,
			b.Requests, b.Status, b.PaymentSettled, b.TotalAmount).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := tx.QueryRow(ctx, query, args...).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.ExclusionViolation {
			// Store-level range constraint fired; same outcome as the check.
			return ErrDateConflict
		}
		return fmt.Errorf("create booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit create booking failed: %w", err)
	}
	return nil
}

const bookingJoinColumns = `
	b.id, b.user_id, u.display_name, b.room_id, rm.room_number, rm.temple_id, t.name,
	b.check_in, b.check_out, b.adults, b.children, b.special_requests,
	b.status, b.payment_settled, b.total_amount, b.created_at, b.updated_at`

func scanJoinedBooking(row pgx.Row, extra ...any) (*Booking, error) {
	var b Booking
	var displayName *string
	dest := []any{
		&b.ID, &b.UserID, &displayName, &b.RoomID, &b.RoomNumber, &b.TempleID, &b.TempleName,
		&b.CheckIn, &b.CheckOut, &b.Adults, &b.Children, &b.Requests,
		&b.Status, &b.PaymentSettled, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt,
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

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `
		SELECT ` + bookingJoinColumns + `
		FROM public.bookings b
		JOIN public.users u ON b.user_id = u.id
		JOIN public.rooms rm ON b.room_id = rm.id
		JOIN public.temples t ON rm.temple_id = t.id
		WHERE b.id = $1
	`
	b, err := scanJoinedBooking(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"b.id", "b.user_id", "u.display_name", "b.room_id", "rm.room_number", "rm.temple_id", "t.name",
		"b.check_in", "b.check_out", "b.adults", "b.children", "b.special_requests",
		"b.status", "b.payment_settled", "b.total_amount", "b.created_at", "b.updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.rooms rm ON b.room_id = rm.id").
		Join("public.temples t ON rm.temple_id = t.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"rm.temple_id": filter.TempleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	if filter.CheckInFrom != nil {
		query = query.Where(squirrel.GtOrEq{"b.check_in": filter.CheckInFrom})
	}
	if filter.CheckInTo != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in": filter.CheckInTo})
	}

	orderBy := "b.created_at"
	if filter.SortBy != "" {
		orderBy = "b." + filter.SortBy
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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		b, err := scanJoinedBooking(rows, &total)
		if err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, b)
	}

	return bookings, total, nil
}

func (r *pgxRepository) HasOverlap(ctx context.Context, roomID string, checkIn, checkOut time.Time, excludeBookingID string) (bool, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	subQuery := psql.Select("1").
		From("public.bookings").
		Where(squirrel.Eq{"room_id": roomID}).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Where(squirrel.Lt{"check_in": checkOut}).
		Where(squirrel.Gt{"check_out": checkIn})

	if excludeBookingID != "" {
		subQuery = subQuery.Where(squirrel.NotEq{"id": excludeBookingID})
	}

	sql, args, err := subQuery.ToSql()
	if err != nil {
		return false, fmt.Errorf("build check overlap query failed: %w", err)
	}

	var exists bool
	if err := r.pool.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check overlap failed: %w", err)
	}
	return exists, nil
}

func (r *pgxRepository) Mutate(ctx context.Context, id string, fn func(*Booking) error) (*Booking, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin mutate booking tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const query = `
		SELECT id, user_id, room_id, check_in, check_out, adults, children,
		       special_requests, status, payment_settled, total_amount, created_at, updated_at
		FROM public.bookings
		WHERE id = $1
		FOR UPDATE
	`
	var b Booking
	err = tx.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.RoomID, &b.CheckIn, &b.CheckOut, &b.Adults, &b.Children,
		&b.Requests, &b.Status, &b.PaymentSettled, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("lock booking failed: %w", err)
	}

	if err := fn(&b); err != nil {
		return nil, err
	}

	const update = `
		UPDATE public.bookings
		SET status = $1, payment_settled = $2, updated_at = now()
		WHERE id = $3
		RETURNING updated_at
	`
	if err := tx.QueryRow(ctx, update, b.Status, b.PaymentSettled, b.ID).Scan(&b.UpdatedAt); err != nil {
		return nil, fmt.Errorf("update booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit mutate booking failed: %w", err)
	}
	return &b, nil
}
