package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/GastonDeS/SportMatch-Back/models"
)

var ErrSportNotFound = errors.New("sport not found")

type SportRepository interface {
	GetAll(ctx context.Context) ([]models.Sport, error)
	GetByID(ctx context.Context, id int) (*models.Sport, error)
}

type postgresSportRepository struct {
	db *sql.DB
}

func NewPostgresSportRepository(db *sql.DB) SportRepository {
	return &postgresSportRepository{db: db}
}

func (r *postgresSportRepository) GetAll(ctx context.Context) ([]models.Sport, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM sports ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list sports: %w", err)
	}
	defer rows.Close()

	sports := make([]models.Sport, 0)
	for rows.Next() {
		var s models.Sport
		if scanErr := rows.Scan(&s.ID, &s.Name); scanErr != nil {
			return nil, scanErr
		}
		sports = append(sports, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sports, nil
}

func (r *postgresSportRepository) GetByID(ctx context.Context, id int) (*models.Sport, error) {
	s := &models.Sport{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM sports WHERE id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to get sport: %w", err)
	}
	return s, nil
}
