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
	ErrRatingConflict     = errors.New("rating conflict: counterpart already rated for this event")
	ErrRatingEventInvalid = errors.New("rating event conflict or invalid")
	ErrRatingUserInvalid  = errors.New("rating user conflict or invalid")
)

type RatingRepository interface {
	Create(ctx context.Context, rating *models.Rating) error
	AggregateForUser(ctx context.Context, userID int) (*models.RatingAggregate, error)
}

type postgresRatingRepository struct {
	db *sql.DB
}

func NewPostgresRatingRepository(db *sql.DB) RatingRepository {
	return &postgresRatingRepository{db: db}
}

// Create persists a rating. The (rater, rated, event_id) triple is unique;
// concurrent duplicates race to the constraint and the loser gets
// ErrRatingConflict.
func (r *postgresRatingRepository) Create(ctx context.Context, rating *models.Rating) error {
	query := `
		INSERT INTO ratings (rater, rated, event_id, rating)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		rating.Rater, rating.Rated, rating.EventID, rating.Rating,
	).Scan(&rating.ID, &rating.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrRatingConflict
			case "23503": // foreign_key_violation
				if pqErr.Constraint == "ratings_event_id_fkey" {
					return ErrRatingEventInvalid
				}
				return ErrRatingUserInvalid
			}
		}
		return fmt.Errorf("failed to create rating: %w", err)
	}
	return nil
}

// AggregateForUser recomputes the user's displayed rating from the ratings
// table. Nothing is cached or incrementally maintained.
func (r *postgresRatingRepository) AggregateForUser(ctx context.Context, userID int) (*models.RatingAggregate, error) {
	query := `
		SELECT COALESCE(AVG(rating)::float, 0), COUNT(rating)::integer
		FROM ratings
		WHERE rated = $1`

	agg := &models.RatingAggregate{}
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&agg.Rating, &agg.Count); err != nil {
		return nil, fmt.Errorf("failed to aggregate ratings: %w", err)
	}
	return agg, nil
}
