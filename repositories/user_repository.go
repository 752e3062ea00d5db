package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/lib/pq"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserEmailConflict = errors.New("user email conflict")
	ErrUserPhoneConflict = errors.New("user phone number conflict")
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	GetDetailByID(ctx context.Context, id int) (*models.UserDetail, error)
	UpdatePhoneNumber(ctx context.Context, id int, phoneNumber string) error
	ReplaceLocations(ctx context.Context, userID int, locations []string) error
	ReplaceSports(ctx context.Context, userID int, sportIDs []int) error
}

type postgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) UserRepository {
	return &postgresUserRepository{db: db}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (firstname, lastname, email, phone_number, birthdate, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.Birthdate, user.PasswordHash,
	).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if conflictErr := translateUserConflict(err); conflictErr != nil {
			return conflictErr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func translateUserConflict(err error) error {
	pqErr, ok := err.(*pq.Error)
	if !ok || pqErr.Code != "23505" {
		return nil
	}
	switch pqErr.Constraint {
	case "users_email_key":
		return ErrUserEmailConflict
	case "users_phone_number_key":
		return ErrUserPhoneConflict
	}
	return nil
}

const userColumns = `id, firstname, lastname, email, phone_number, birthdate, password_hash, created_at`

func (r *postgresUserRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(
		&u.ID, &u.FirstName, &u.LastName, &u.Email,
		&u.PhoneNumber, &u.Birthdate, &u.PasswordHash, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return u, nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *postgresUserRepository) GetAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if scanErr := rows.Scan(
			&u.ID, &u.FirstName, &u.LastName, &u.Email,
			&u.PhoneNumber, &u.Birthdate, &u.PasswordHash, &u.CreatedAt,
		); scanErr != nil {
			return nil, scanErr
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return users, nil
}

// GetDetailByID returns the user row merged with preferred sports and
// locations plus the received-rating aggregate. The aggregate is computed
// here on every read instead of being maintained on the user row.
func (r *postgresUserRepository) GetDetailByID(ctx context.Context, id int) (*models.UserDetail, error) {
	query := `
		SELECT
			u.id,
			u.firstname,
			u.lastname,
			u.email,
			u.phone_number,
			ARRAY_REMOVE(ARRAY_AGG(DISTINCT us.sport_id), NULL) AS sports,
			ARRAY_REMOVE(ARRAY_AGG(DISTINCT ul.location), NULL) AS locations,
			COALESCE(AVG(r.rating)::float, 0) AS rating,
			COALESCE(r.count_ratings, 0)::integer AS count
		FROM users u
		LEFT JOIN users_sports us ON u.id = us.user_id
		LEFT JOIN users_locations ul ON u.id = ul.user_id
		LEFT JOIN (
			SELECT rated, AVG(rating) AS rating, COUNT(*) AS count_ratings
			FROM ratings
			GROUP BY rated
		) r ON u.id = r.rated
		WHERE u.id = $1
		GROUP BY u.id, r.rating, r.count_ratings`

	d := &models.UserDetail{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.Email, &d.PhoneNumber,
		pq.Array(&d.SportIDs), pq.Array(&d.Locations), &d.Rating, &d.Count,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user detail: %w", err)
	}
	return d, nil
}

func (r *postgresUserRepository) UpdatePhoneNumber(ctx context.Context, id int, phoneNumber string) error {
	query := `UPDATE users SET phone_number = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, phoneNumber, id)
	if err != nil {
		if conflictErr := translateUserConflict(err); conflictErr != nil {
			return conflictErr
		}
		return fmt.Errorf("failed to update phone number: %w", err)
	}
	return checkAffectedRows(result, ErrUserNotFound)
}

// ReplaceLocations swaps the user's full location preference set. Delete and
// insert run inside one transaction so a failure between the two cannot
// leave the user with an empty set.
func (r *postgresUserRepository) ReplaceLocations(ctx context.Context, userID int, locations []string) error {
	return r.replacePreferences(ctx,
		`DELETE FROM users_locations WHERE user_id = $1`,
		`INSERT INTO users_locations (user_id, location)
			SELECT $1, UNNEST($2::text[])
			ON CONFLICT DO NOTHING`,
		userID, pq.Array(locations), len(locations))
}

// ReplaceSports swaps the user's full preferred-sport set inside one
// transaction, same contract as ReplaceLocations.
func (r *postgresUserRepository) ReplaceSports(ctx context.Context, userID int, sportIDs []int) error {
	ids := make([]int64, len(sportIDs))
	for i, id := range sportIDs {
		ids[i] = int64(id)
	}
	return r.replacePreferences(ctx,
		`DELETE FROM users_sports WHERE user_id = $1`,
		`INSERT INTO users_sports (user_id, sport_id)
			SELECT $1, UNNEST($2::integer[])
			ON CONFLICT DO NOTHING`,
		userID, pq.Array(ids), len(sportIDs))
}

func (r *postgresUserRepository) replacePreferences(ctx context.Context, deleteQuery, insertQuery string, userID int, values interface{}, count int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err = tx.ExecContext(ctx, deleteQuery, userID); err != nil {
		return fmt.Errorf("failed to clear preferences: %w", err)
	}
	if count > 0 {
		if _, err = tx.ExecContext(ctx, insertQuery, userID, values); err != nil {
			return fmt.Errorf("failed to insert preferences: %w", err)
		}
	}
	return tx.Commit()
}
