package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventbooking/internal/domain"
)

type bookingRepository struct {
	DB *sql.DB
}

func NewBookingRepository(db *sql.DB) domain.BookingRepository {
	return &bookingRepository{DB: db}
}

const bookingColumns = `id, user_id, event_id, status, notes, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `
		INSERT INTO bookings (user_id, event_id, status, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		b.UserID, b.EventID, b.Status, b.Notes, b.CreatedAt, b.UpdatedAt,
	).Scan(&b.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateBooking
		}
		return err
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetByUserAndEvent(ctx context.Context, userID int64, eventID string) (*domain.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE user_id = $1 AND event_id = $2`
	b, err := scanBooking(r.DB.QueryRowContext(ctx, query, userID, eventID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

func (r *bookingRepository) GetDetails(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	query := `
		SELECT b.id, b.user_id, b.event_id, b.status, b.notes, b.created_at, b.updated_at,
		       u.id, u.email, u.display_name, u.avatar_url, u.origin_world, u.alive, u.created_at, u.updated_at,
		       e.id, e.title, e.description, e.date, e.location, e.images, e.created_at, e.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		JOIN events e ON e.id = b.event_id
		WHERE b.id = $1
	`
	b := &domain.Booking{}
	u := &domain.User{}
	e := &domain.Event{}
	var notesNull, avatarNull, worldNull, descNull, locNull sql.NullString
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.EventID, &b.Status, &notesNull, &b.CreatedAt, &b.UpdatedAt,
		&u.ID, &u.Email, &u.DisplayName, &avatarNull, &worldNull, &u.Alive, &u.CreatedAt, &u.UpdatedAt,
		&e.ID, &e.Title, &descNull, &e.Date, &locNull, pq.Array(&e.Images), &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if notesNull.Valid {
		b.Notes = &notesNull.String
	}
	if avatarNull.Valid {
		u.AvatarURL = &avatarNull.String
	}
	if worldNull.Valid {
		u.OriginWorld = &worldNull.String
	}
	if descNull.Valid {
		e.Description = &descNull.String
	}
	if locNull.Valid {
		e.Location = &locNull.String
	}
	if e.Images == nil {
		e.Images = []string{}
	}
	return &domain.BookingDetails{Booking: b, User: u, Event: e}, nil
}

func (r *bookingRepository) ListByUserID(ctx context.Context, userID int64) ([]*domain.BookingWithEvent, error) {
	query := `
		SELECT b.id, b.user_id, b.event_id, b.status, b.notes, b.created_at, b.updated_at,
		       e.id, e.title, e.description, e.date, e.location, e.images, e.created_at, e.updated_at
		FROM bookings b
		JOIN events e ON e.id = b.event_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.BookingWithEvent, 0)
	for rows.Next() {
		b := &domain.Booking{}
		e := &domain.Event{}
		var notesNull, descNull, locNull sql.NullString
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.EventID, &b.Status, &notesNull, &b.CreatedAt, &b.UpdatedAt,
			&e.ID, &e.Title, &descNull, &e.Date, &locNull, pq.Array(&e.Images), &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if notesNull.Valid {
			b.Notes = &notesNull.String
		}
		if descNull.Valid {
			e.Description = &descNull.String
		}
		if locNull.Valid {
			e.Location = &locNull.String
		}
		if e.Images == nil {
			e.Images = []string{}
		}
		result = append(result, &domain.BookingWithEvent{Booking: b, Event: e})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *bookingRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.BookingWithUser, error) {
	query := `
		SELECT b.id, b.user_id, b.event_id, b.status, b.notes, b.created_at, b.updated_at,
		       u.id, u.email, u.display_name, u.avatar_url, u.origin_world, u.alive, u.created_at, u.updated_at
		FROM bookings b
		JOIN users u ON u.id = b.user_id
		WHERE b.event_id = $1
		ORDER BY b.created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make([]*domain.BookingWithUser, 0)
	for rows.Next() {
		b := &domain.Booking{}
		u := &domain.User{}
		var notesNull, avatarNull, worldNull sql.NullString
		if err := rows.Scan(
			&b.ID, &b.UserID, &b.EventID, &b.Status, &notesNull, &b.CreatedAt, &b.UpdatedAt,
			&u.ID, &u.Email, &u.DisplayName, &avatarNull, &worldNull, &u.Alive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if notesNull.Valid {
			b.Notes = &notesNull.String
		}
		if avatarNull.Valid {
			u.AvatarURL = &avatarNull.String
		}
		if worldNull.Valid {
			u.OriginWorld = &worldNull.String
		}
		result = append(result, &domain.BookingWithUser{Booking: b, User: u})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *bookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, notes = $2, updated_at = $3
		WHERE id = $4
	`
	res, err := r.DB.ExecContext(ctx, query, b.Status, b.Notes, b.UpdatedAt, b.ID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanBooking(row *sql.Row) (*domain.Booking, error) {
	b := &domain.Booking{}
	var notesNull sql.NullString
	err := row.Scan(&b.ID, &b.UserID, &b.EventID, &b.Status, &notesNull, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if notesNull.Valid {
		b.Notes = &notesNull.String
	}
	return b, nil
}
