package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/GastonDeS/SportMatch-Back/models"
)

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	birthdate := "1999-05-20"

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "success",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users \(firstname, lastname, email, phone_number, birthdate, password_hash\)`).
					WithArgs("Ana", "Lopez", "ana@example.com", "111", birthdate, "hash").
					WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))
			},
		},
		{
			name: "duplicate email",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_email_key"})
			},
			wantErr: ErrUserEmailConflict,
		},
		{
			name: "duplicate phone number",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO users`).
					WillReturnError(&pq.Error{Code: "23505", Constraint: "users_phone_number_key"})
			},
			wantErr: ErrUserPhoneConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			repo := NewPostgresUserRepository(db)
			user := &models.User{
				FirstName:    "Ana",
				LastName:     "Lopez",
				Email:        "ana@example.com",
				PhoneNumber:  "111",
				Birthdate:    birthdate,
				PasswordHash: "hash",
			}
			err = repo.Create(ctx, user)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, 3, user.ID)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetDetailByID(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"id", "firstname", "lastname", "email", "phone_number",
		"sports", "locations", "rating", "count",
	}).AddRow(3, "Ana", "Lopez", "ana@example.com", "111",
		"{1,4}", "{Almagro,Palermo}", 4.2, 5)

	mock.ExpectQuery(`SELECT\s+u\.id`).
		WithArgs(3).
		WillReturnRows(rows)

	repo := NewPostgresUserRepository(db)
	detail, err := repo.GetDetailByID(ctx, 3)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 4}, detail.SportIDs)
	require.Equal(t, []string{"Almagro", "Palermo"}, detail.Locations)
	require.Equal(t, 4.2, detail.Rating)
	require.Equal(t, 5, detail.Count)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_ReplaceLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("delete and insert run in one transaction", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM users_locations WHERE user_id = \$1`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO users_locations \(user_id, location\)`).
			WithArgs(3, pq.Array([]string{"Almagro", "Palermo"})).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		repo := NewPostgresUserRepository(db)
		require.NoError(t, repo.ReplaceLocations(ctx, 3, []string{"Almagro", "Palermo"}))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty set only clears", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM users_locations`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		repo := NewPostgresUserRepository(db)
		require.NoError(t, repo.ReplaceLocations(ctx, 3, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insert failure rolls back", func(t *testing.T) {
		db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM users_locations`).
			WithArgs(3).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO users_locations`).
			WillReturnError(&pq.Error{Code: "23503"})
		mock.ExpectRollback()

		repo := NewPostgresUserRepository(db)
		require.Error(t, repo.ReplaceLocations(ctx, 3, []string{"Almagro"}))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ReplaceSports(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM users_sports WHERE user_id = \$1`).
		WithArgs(3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO users_sports \(user_id, sport_id\)`).
		WithArgs(3, pq.Array([]int64{1, 4})).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	repo := NewPostgresUserRepository(db)
	require.NoError(t, repo.ReplaceSports(ctx, 3, []int{1, 4}))
	require.NoError(t, mock.ExpectationsWereMet())
}
