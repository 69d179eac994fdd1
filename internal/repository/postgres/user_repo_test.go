package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"eventbooking/internal/domain"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		user    *domain.User
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
		wantID  int64
	}{
		{
			name: "success assigns generated id",
			user: domain.NewUser("frodo@shire.example", "hash", "salt", "Frodo", nil, nil, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WithArgs("frodo@shire.example", "hash", "salt", "Frodo", nil, nil, true, now, now).
					WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
			},
			wantID: 7,
		},
		{
			name: "unique violation returns ErrDuplicateEmail",
			user: domain.NewUser("taken@shire.example", "hash", "salt", "Frodo", nil, nil, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505"})
			},
			wantErr: true,
			errIs:   domain.ErrDuplicateEmail,
		},
		{
			name: "db error",
			user: domain.NewUser("frodo@shire.example", "hash", "salt", "Frodo", nil, nil, now, now),
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Create(ctx, tt.user)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errIs != nil {
					require.ErrorIs(t, err, tt.errIs)
				}
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.wantID, tt.user.ID)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "email", "password_hash", "salt", "display_name", "avatar_url", "origin_world", "alive", "created_at", "updated_at"}

	t.Run("success with nullable fields set", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM users`).
			WithArgs("frodo@shire.example").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(7), "frodo@shire.example", "hash", "salt", "Frodo", "https://img.example/f.png", "Middle-earth", true, now, now))

		repo := NewUserRepository(db)
		u, err := repo.GetByEmail(ctx, "frodo@shire.example")
		require.NoError(t, err)
		require.Equal(t, int64(7), u.ID)
		require.NotNil(t, u.AvatarURL)
		require.Equal(t, "Middle-earth", *u.OriginWorld)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success with null optional fields", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM users`).
			WithArgs("frodo@shire.example").
			WillReturnRows(sqlmock.NewRows(columns).
				AddRow(int64(7), "frodo@shire.example", "hash", "salt", "Frodo", nil, nil, true, now, now))

		repo := NewUserRepository(db)
		u, err := repo.GetByEmail(ctx, "frodo@shire.example")
		require.NoError(t, err)
		require.Nil(t, u.AvatarURL)
		require.Nil(t, u.OriginWorld)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no rows returns ErrUserNotFound", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT .+ FROM users`).
			WithArgs("missing@shire.example").
			WillReturnError(sql.ErrNoRows)

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "missing@shire.example")
		require.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		id      int64
		mock    func(mock sqlmock.Sqlmock)
		wantErr bool
		errIs   error
	}{
		{
			name: "success",
			id:   7,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM users`).
					WithArgs(int64(7)).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "not found zero rows affected",
			id:   42,
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`DELETE FROM users`).
					WithArgs(int64(42)).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			errIs:   domain.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewUserRepository(db)
			err = repo.Delete(ctx, tt.id)
			if tt.wantErr {
				require.ErrorIs(t, err, tt.errIs)
			} else {
				require.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
