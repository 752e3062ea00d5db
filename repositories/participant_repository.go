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
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrParticipantConflict     = errors.New("participant conflict: user already requested to join this event")
	ErrParticipantEventInvalid = errors.New("participant event conflict or invalid")
	ErrParticipantUserInvalid  = errors.New("participant user conflict or invalid")
)

type ParticipantRepository interface {
	Create(ctx context.Context, p *models.Participant) error
	UpdateStatus(ctx context.Context, eventID, userID int, status bool) error
	Delete(ctx context.Context, eventID, userID int) error
	ListByEvent(ctx context.Context, eventID int) ([]models.Participant, error)
	ListDetailsByEvent(ctx context.Context, eventID, callerID int) ([]models.ParticipantDetail, error)
}

type postgresParticipantRepository struct {
	db *sql.DB
}

func NewPostgresParticipantRepository(db *sql.DB) ParticipantRepository {
	return &postgresParticipantRepository{db: db}
}

// Create inserts a pending join request. Concurrent duplicate requests race
// to the unique (event_id, user_id) constraint; the loser gets
// ErrParticipantConflict.
func (r *postgresParticipantRepository) Create(ctx context.Context, p *models.Participant) error {
	query := `
		INSERT INTO participants (event_id, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, p.EventID, p.UserID, p.Status).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrParticipantConflict
			case "23503": // foreign_key_violation
				switch pqErr.Constraint {
				case "participants_event_id_fkey":
					return ErrParticipantEventInvalid
				case "participants_user_id_fkey":
					return ErrParticipantUserInvalid
				}
			}
		}
		return fmt.Errorf("failed to create participant: %w", err)
	}
	return nil
}

func (r *postgresParticipantRepository) UpdateStatus(ctx context.Context, eventID, userID int, status bool) error {
	query := `UPDATE participants SET status = $1 WHERE event_id = $2 AND user_id = $3`
	result, err := r.db.ExecContext(ctx, query, status, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to update participant status: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) Delete(ctx context.Context, eventID, userID int) error {
	query := `DELETE FROM participants WHERE event_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, eventID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}
	return checkAffectedRows(result, ErrParticipantNotFound)
}

func (r *postgresParticipantRepository) ListByEvent(ctx context.Context, eventID int) ([]models.Participant, error) {
	query := `SELECT id, event_id, user_id, status, created_at FROM participants WHERE event_id = $1`

	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	defer rows.Close()

	participants := make([]models.Participant, 0)
	for rows.Next() {
		var p models.Participant
		if scanErr := rows.Scan(&p.ID, &p.EventID, &p.UserID, &p.Status, &p.CreatedAt); scanErr != nil {
			return nil, scanErr
		}
		participants = append(participants, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participants, nil
}

// ListDetailsByEvent enriches every participant row of an event with the
// user's display fields, the received-rating aggregate, and whether the
// caller already rated that user for this event.
func (r *postgresParticipantRepository) ListDetailsByEvent(ctx context.Context, eventID, callerID int) ([]models.ParticipantDetail, error) {
	query := `
		SELECT
			participants.user_id,
			users.firstname,
			users.lastname,
			users.email,
			users.phone_number,
			participants.status AS participant_status,
			COALESCE(AVG(ratings.rating)::float, 0) AS rating,
			COALESCE(COUNT(ratings.rating)::integer, 0) AS count,
			COALESCE(rated_aux.is_rated, FALSE) AS is_rated
		FROM participants
		LEFT OUTER JOIN users ON participants.user_id = users.id
		LEFT OUTER JOIN ratings ON participants.user_id = ratings.rated
		LEFT OUTER JOIN (
			SELECT CASE WHEN MAX(1) > 0 THEN TRUE ELSE FALSE END AS is_rated, rated
			FROM ratings WHERE event_id = $1 AND rater = $2 GROUP BY rated
		) AS rated_aux ON rated_aux.rated = participants.user_id
		WHERE participants.event_id = $1
		GROUP BY participants.user_id, users.firstname, users.lastname, users.email,
			participants.status, users.phone_number, rated_aux.is_rated`

	rows, err := r.db.QueryContext(ctx, query, eventID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participant details: %w", err)
	}
	defer rows.Close()

	details := make([]models.ParticipantDetail, 0)
	for rows.Next() {
		var d models.ParticipantDetail
		if scanErr := rows.Scan(
			&d.UserID, &d.FirstName, &d.LastName, &d.Email, &d.PhoneNumber,
			&d.Status, &d.Rating, &d.RateCount, &d.IsRated,
		); scanErr != nil {
			return nil, scanErr
		}
		details = append(details, d)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return details, nil
}
