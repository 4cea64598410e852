package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Totals(ctx context.Context) (Totals, error)
	OfferingTotals(ctx context.Context) ([]KindTotal, error)
	Window(ctx context.Context, since time.Time) (Window, error)
	PopularOfferings(ctx context.Context, kind string, limit int) ([]PopularOffering, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Totals(ctx context.Context) (Totals, error) {
	// One round trip; each aggregate is cheap on its own.
	const query = `
		SELECT
			(SELECT count(*) FROM public.temples),
			(SELECT count(*) FROM public.users WHERE is_active),
			(SELECT count(*) FROM public.rooms),
			(SELECT count(*) FROM public.bookings),
			(SELECT COALESCE(SUM(total_amount), 0) FROM public.bookings WHERE status <> 'cancelled'),
			(SELECT count(*) FROM public.festival_bookings),
			(SELECT count(*) FROM public.event_registrations),
			(SELECT count(*) FROM public.donations),
			(SELECT COALESCE(SUM(amount), 0) FROM public.donations)
	`
	var t Totals
	err := r.pool.QueryRow(ctx, query).Scan(
		&t.Temples, &t.Users, &t.Rooms, &t.RoomBookings, &t.RoomBookingAmount,
		&t.FestivalBookings, &t.EventRegistrations, &t.Donations, &t.DonationAmount,
	)
	if err != nil {
		return Totals{}, fmt.Errorf("load dashboard totals failed: %w", err)
	}
	return t, nil
}

func (r *pgxRepository) OfferingTotals(ctx context.Context) ([]KindTotal, error) {
	const query = `
		SELECT o.kind, count(ob.id), COALESCE(SUM(ob.amount), 0)
		FROM public.offerings o
		JOIN public.offering_bookings ob ON ob.offering_id = o.id
		WHERE ob.status <> 'cancelled'
		GROUP BY o.kind
		ORDER BY o.kind ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("load offering totals failed: %w", err)
	}
	defer rows.Close()

	var totals []KindTotal
	for rows.Next() {
		var kt KindTotal
		if err := rows.Scan(&kt.Kind, &kt.Bookings, &kt.Amount); err != nil {
			return nil, fmt.Errorf("scan offering totals failed: %w", err)
		}
		totals = append(totals, kt)
	}
	return totals, nil
}

func (r *pgxRepository) Window(ctx context.Context, since time.Time) (Window, error) {
	const query = `
		SELECT
			(SELECT count(*) FROM public.bookings WHERE created_at >= $1),
			(SELECT COALESCE(SUM(total_amount), 0) FROM public.bookings
				WHERE created_at >= $1 AND status <> 'cancelled'),
			(SELECT COALESCE(SUM(amount), 0) FROM public.donations WHERE created_at >= $1),
			(SELECT count(*) FROM public.users WHERE created_at >= $1)
	`
	var w Window
	err := r.pool.QueryRow(ctx, query, since).Scan(
		&w.NewBookings, &w.BookingRevenue, &w.DonationAmount, &w.NewRegistrations,
	)
	if err != nil {
		return Window{}, fmt.Errorf("load dashboard window failed: %w", err)
	}
	return w, nil
}

func (r *pgxRepository) PopularOfferings(ctx context.Context, kind string, limit int) ([]PopularOffering, error) {
	const query = `
		SELECT o.id, o.name, o.kind, count(ob.id), COALESCE(SUM(ob.people), 0)
		FROM public.offerings o
		JOIN public.offering_bookings ob ON ob.offering_id = o.id
		WHERE ob.status <> 'cancelled' AND o.kind = $1
		GROUP BY o.id, o.name, o.kind
		ORDER BY count(ob.id) DESC, o.name ASC
		LIMIT $2
	`
	rows, err := r.pool.Query(ctx, query, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("load popular offerings failed: %w", err)
	}
	defer rows.Close()

	var popular []PopularOffering
	for rows.Next() {
		var p PopularOffering
		if err := rows.Scan(&p.OfferingID, &p.Name, &p.Kind, &p.Bookings, &p.People); err != nil {
			return nil, fmt.Errorf("scan popular offering failed: %w", err)
		}
		popular = append(popular, p)
	}
	return popular, nil
}
