package postgres

import (
	"context"
	"database/sql"

	"eventbooking/internal/domain"
)

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{DB: db}
}

func (r *attendeeRepository) Add(ctx context.Context, eventID string, userID int64) error {
	query := `
		INSERT INTO event_attendees (event_id, user_id)
		VALUES ($1, $2)
	`
	if _, err := r.DB.ExecContext(ctx, query, eventID, userID); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *attendeeRepository) Remove(ctx context.Context, eventID string, userID int64) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM event_attendees WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrNotRegistered
	}
	return nil
}

func (r *attendeeRepository) Exists(ctx context.Context, eventID string, userID int64) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_attendees WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attendeeRepository) ListByEventID(ctx context.Context, eventID string) ([]*domain.User, error) {
	query := `
		SELECT u.id, u.email, u.password_hash, u.salt, u.display_name, u.avatar_url, u.origin_world, u.alive, u.created_at, u.updated_at
		FROM event_attendees ea
		JOIN users u ON u.id = ea.user_id
		WHERE ea.event_id = $1
		ORDER BY ea.created_at ASC
	`
	rows, err := r.DB.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		u := &domain.User{}
		var avatarNull, worldNull sql.NullString
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Salt, &u.DisplayName,
			&avatarNull, &worldNull, &u.Alive, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if avatarNull.Valid {
			u.AvatarURL = &avatarNull.String
		}
		if worldNull.Valid {
			u.OriginWorld = &worldNull.String
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}
