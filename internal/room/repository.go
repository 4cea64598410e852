package room

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

// TypeRepository defines storage access for room types.
type TypeRepository interface {
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	ListByTemple(ctx context.Context, templeID string) ([]*RoomType, error)
	Update(ctx context.Context, rt *RoomType) error
}

// Repository defines storage access for rooms.
type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateNotes(ctx context.Context, id string, notes string) error
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type pgxTypeRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTypeRepository(pool *pgxpool.Pool) TypeRepository {
	return &pgxTypeRepository{pool: pool}
}

func (r *pgxTypeRepository) Create(ctx context.Context, rt *RoomType) error {
	const query = `
		INSERT INTO public.room_types (temple_id, name, bed_count, capacity, price_per_night, description, amenities)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		rt.TempleID, rt.Name, rt.BedCount, rt.Capacity, rt.PricePerNight, rt.Description, rt.Amenities,
	).Scan(&rt.ID, &rt.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrTypeNameTaken
		}
		return fmt.Errorf("create room type failed: %w", err)
	}
	return nil
}

func (r *pgxTypeRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	const query = `
		SELECT id, temple_id, name, bed_count, capacity, price_per_night, description, amenities, created_at
		FROM public.room_types
		WHERE id = $1
	`
	row := r.pool.QueryRow(ctx, query, id)

	var rt RoomType
	if err := row.Scan(
		&rt.ID, &rt.TempleID, &rt.Name, &rt.BedCount, &rt.Capacity,
		&rt.PricePerNight, &rt.Description, &rt.Amenities, &rt.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTypeNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxTypeRepository) ListByTemple(ctx context.Context, templeID string) ([]*RoomType, error) {
	const query = `
		SELECT id, temple_id, name, bed_count, capacity, price_per_night, description, amenities, created_at
		FROM public.room_types
		WHERE temple_id = $1
		ORDER BY name ASC
	`
	rows, err := r.pool.Query(ctx, query, templeID)
	if err != nil {
		return nil, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var result []*RoomType
	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.TempleID, &rt.Name, &rt.BedCount, &rt.Capacity,
			&rt.PricePerNight, &rt.Description, &rt.Amenities, &rt.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan room type failed: %w", err)
		}
		result = append(result, &rt)
	}
	return result, nil
}

func (r *pgxTypeRepository) Update(ctx context.Context, rt *RoomType) error {
	const query = `
		UPDATE public.room_types
		SET name = $1, bed_count = $2, capacity = $3, price_per_night = $4, description = $5, amenities = $6
		WHERE id = $7
	`
	ct, err := r.pool.Exec(ctx, query,
		rt.Name, rt.BedCount, rt.Capacity, rt.PricePerNight, rt.Description, rt.Amenities, rt.ID,
	)
	if err != nil {
		return fmt.Errorf("update room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrTypeNotFound
	}
	return nil
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	const query = `
		INSERT INTO public.rooms (temple_id, room_number, room_type_id, status, floor, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	err := r.pool.QueryRow(ctx, query,
		rm.TempleID, rm.RoomNumber, rm.RoomTypeID, rm.Status, rm.Floor, rm.Notes,
	).Scan(&rm.ID, &rm.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberTaken
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"rm.id", "rm.temple_id", "t.name", "rm.room_number", "rm.room_type_id", "rt.name",
		"rm.status", "rm.floor", "rm.notes", "rm.created_at",
	).
		From("public.rooms rm").
		Join("public.temples t ON rm.temple_id = t.id").
		Join("public.room_types rt ON rm.room_type_id = rt.id").
		Where(squirrel.Eq{"rm.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	row := r.pool.QueryRow(ctx, query, args...)

	var rm Room
	if err := row.Scan(
		&rm.ID, &rm.TempleID, &rm.TempleName, &rm.RoomNumber, &rm.RoomTypeID, &rm.TypeName,
		&rm.Status, &rm.Floor, &rm.Notes, &rm.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"rm.id", "rm.temple_id", "t.name", "rm.room_number", "rm.room_type_id", "rt.name",
		"rm.status", "rm.floor", "rm.notes", "rm.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.rooms rm").
		Join("public.temples t ON rm.temple_id = t.id").
		Join("public.room_types rt ON rm.room_type_id = rt.id")

	if filter.TempleID != "" {
		query = query.Where(squirrel.Eq{"rm.temple_id": filter.TempleID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"rm.status": filter.Status})
	}

	query = query.OrderBy("rm.room_number ASC")

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
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var rooms []*Room
	var total int
	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.TempleID, &rm.TempleName, &rm.RoomNumber, &rm.RoomTypeID, &rm.TypeName,
			&rm.Status, &rm.Floor, &rm.Notes, &rm.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		rooms = append(rooms, &rm)
	}

	return rooms, total, nil
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status) error {
	const query = `UPDATE public.rooms SET status = $1 WHERE id = $2`
	ct, err := r.pool.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("update room status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) UpdateNotes(ctx context.Context, id string, notes string) error {
	const query = `UPDATE public.rooms SET notes = $1 WHERE id = $2`
	ct, err := r.pool.Exec(ctx, query, notes, id)
	if err != nil {
		return fmt.Errorf("update room notes failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	const query = `
		SELECT status, count(*)
		FROM public.rooms
		GROUP BY status
		ORDER BY status ASC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("count rooms by status failed: %w", err)
	}
	defer rows.Close()

	var counts []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan room status count failed: %w", err)
		}
		counts = append(counts, sc)
	}
	return counts, nil
}
