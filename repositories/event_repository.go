package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/lib/pq"
)

var (
	ErrEventNotFound     = errors.New("event not found")
	ErrEventInvalidOwner = errors.New("invalid event owner reference")
	ErrEventInvalidSport = errors.New("invalid sport reference")
)

// Time-of-day buckets carried by the schedule csv filter. The clock ranges
// are fixed: morning 06:00-12:00, afternoon 12:00-18:00, evening the rest.
const (
	TimeOfDayMorning   = 0
	TimeOfDayAfternoon = 1
	TimeOfDayEvening   = 2
)

// EventSearchFilter is the normalized form of the /events query parameters.
// Nil pointer fields mean the filter is absent.
type EventSearchFilter struct {
	SportIDs      []int
	UserID        *int
	ParticipantID *int
	FilterOut     bool
	Locations     []string
	Expertise     *int
	Date          *string // YYYY-MM-DD
	TimeOfDay     []int
	Page          int
	Limit         int
}

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id int) (*models.Event, error)
	GetDetailByID(ctx context.Context, id int) (*models.EventDetail, error)
	Search(ctx context.Context, filter EventSearchFilter) ([]models.EventSummary, error)
}

type postgresEventRepository struct {
	db *sql.DB
}

func NewPostgresEventRepository(db *sql.DB) EventRepository {
	return &postgresEventRepository{db: db}
}

func (r *postgresEventRepository) Create(ctx context.Context, e *models.Event) error {
	query := `
		INSERT INTO events (owner_id, sport_id, description, schedule, duration, location, expertise, remaining)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		e.OwnerID, e.SportID, e.Description, e.Schedule, e.Duration, e.Location, e.Expertise, e.Remaining,
	).Scan(&e.ID, &e.CreatedAt)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
			switch pqErr.Constraint {
			case "events_owner_id_fkey":
				return ErrEventInvalidOwner
			case "events_sport_id_fkey":
				return ErrEventInvalidSport
			}
		}
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

func (r *postgresEventRepository) GetByID(ctx context.Context, id int) (*models.Event, error) {
	query := `
		SELECT id, owner_id, sport_id, description, schedule, duration, location, expertise, remaining, created_at
		FROM events
		WHERE id = $1`

	e := &models.Event{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&e.ID, &e.OwnerID, &e.SportID, &e.Description, &e.Schedule,
		&e.Duration, &e.Location, &e.Expertise, &e.Remaining, &e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (r *postgresEventRepository) GetDetailByID(ctx context.Context, id int) (*models.EventDetail, error) {
	query := `
		SELECT
			events.id,
			events.description,
			events.schedule,
			events.duration,
			events.location,
			events.expertise,
			events.sport_id,
			events.remaining AS capacity,
			COUNT(participants.id) FILTER (WHERE participants.status)::integer AS accepted_count,
			users.id AS owner_id,
			users.firstname AS owner_firstname
		FROM events
		JOIN users ON events.owner_id = users.id
		LEFT JOIN participants ON events.id = participants.event_id
		WHERE events.id = $1
		GROUP BY events.id, users.id, users.firstname`

	var (
		d        models.EventDetail
		schedule time.Time
	)
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.EventID, &d.Description, &schedule, &d.Duration, &d.Location,
		&d.Expertise, &d.SportID, &d.Capacity, &d.AcceptedCount,
		&d.OwnerID, &d.OwnerName,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event detail: %w", err)
	}

	d.Schedule = schedule.Format(time.RFC3339)
	d.Remaining = d.Capacity - d.AcceptedCount
	event := models.Event{Schedule: schedule, Duration: d.Duration}
	d.Status = event.StatusAt(time.Now())
	return &d, nil
}

// Search runs the aggregate event search query. Predicates are appended in
// a fixed order (sport, owner, participant, location, expertise, date,
// time-of-day, implicit future filter) so the generated statement is
// deterministic for a given filter set.
func (r *postgresEventRepository) Search(ctx context.Context, filter EventSearchFilter) ([]models.EventSummary, error) {
	qb := buildEventSearchQuery(filter)

	rows, err := r.db.QueryContext(ctx, qb.Build(), qb.Args()...)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}
	defer rows.Close()

	withParticipant := filter.ParticipantID != nil
	now := time.Now()

	summaries := make([]models.EventSummary, 0)
	for rows.Next() {
		var (
			s        models.EventSummary
			schedule time.Time
			duration int
		)
		dest := []interface{}{
			&s.EventID, &s.Description, &schedule, &duration, &s.Location,
			&s.Expertise, &s.SportID, &s.Capacity, &s.AcceptedCount,
			&s.OwnerName, &s.OwnerID, &s.Rating, &s.RateCount,
		}
		var participantStatus, isRated sql.NullBool
		if withParticipant {
			dest = append(dest, &participantStatus, &isRated)
		}
		if scanErr := rows.Scan(dest...); scanErr != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", scanErr)
		}

		s.Schedule = schedule.Format(time.RFC3339)
		s.Remaining = s.Capacity - s.AcceptedCount
		if withParticipant {
			status := participantStatus.Bool
			rated := isRated.Bool
			s.ParticipantStatus = &status
			s.IsRated = &rated
		}
		event := models.Event{Schedule: schedule, Duration: duration}
		s.Status = event.StatusAt(now)
		summaries = append(summaries, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func buildEventSearchQuery(filter EventSearchFilter) *QueryBuilder {
	withParticipant := filter.ParticipantID != nil

	head := `SELECT
		events.id AS event_id,
		events.description,
		events.schedule,
		events.duration,
		events.location,
		events.expertise,
		events.sport_id,
		events.remaining AS capacity,
		COUNT(participants.id) FILTER (WHERE participants.status)::integer AS accepted_count,
		users.firstname AS owner_firstname,
		users.id AS owner_id,
		COALESCE(rate.rating::float, 0) AS rating,
		COALESCE(rate.count::integer, 0) AS rate_count`
	if withParticipant {
		head += `,
		participants.status AS participant_status,
		COALESCE(rated_aux.is_rated, FALSE) AS is_rated`
	}
	head += `
	FROM events
	JOIN users ON events.owner_id = users.id
	LEFT JOIN participants ON events.id = participants.event_id
	LEFT JOIN (
		SELECT rated, AVG(rating) AS rating, COUNT(rating) AS count FROM ratings GROUP BY rated
	) AS rate ON events.owner_id = rate.rated`

	var headArgs []interface{}
	if withParticipant {
		head += `
	LEFT JOIN (
		SELECT CASE WHEN MAX(1) > 0 THEN TRUE ELSE FALSE END AS is_rated, event_id
		FROM ratings WHERE rater = ? GROUP BY event_id
	) AS rated_aux ON rated_aux.event_id = events.id`
		headArgs = append(headArgs, *filter.ParticipantID)
	}

	qb := NewQueryBuilder(head, headArgs...)

	if len(filter.SportIDs) == 1 {
		qb.AddFilter("events.sport_id = ?", filter.SportIDs[0])
	} else if len(filter.SportIDs) > 1 {
		placeholders := make([]string, len(filter.SportIDs))
		args := make([]interface{}, len(filter.SportIDs))
		for i, id := range filter.SportIDs {
			placeholders[i] = "?"
			args[i] = id
		}
		qb.AddFilter(fmt.Sprintf("events.sport_id IN (%s)", strings.Join(placeholders, ",")), args...)
	}

	if filter.UserID != nil {
		// filterOut inverts the owner relation only, never the
		// participant one.
		if filter.FilterOut {
			qb.AddFilter("events.owner_id != ?", *filter.UserID)
		} else {
			qb.AddFilter("events.owner_id = ?", *filter.UserID)
		}
	}

	if withParticipant {
		qb.AddFilter("participants.user_id = ?", *filter.ParticipantID)
	}

	if len(filter.Locations) == 1 {
		qb.AddFilter("events.location = ?", filter.Locations[0])
	} else if len(filter.Locations) > 1 {
		placeholders := make([]string, len(filter.Locations))
		args := make([]interface{}, len(filter.Locations))
		for i, loc := range filter.Locations {
			placeholders[i] = "?"
			args[i] = loc
		}
		qb.AddFilter(fmt.Sprintf("events.location IN (%s)", strings.Join(placeholders, ",")), args...)
	}

	if filter.Expertise != nil {
		qb.AddFilter("events.expertise = ?", *filter.Expertise)
	}

	if filter.Date != nil {
		qb.AddFilter("TO_CHAR(events.schedule, 'YYYY-MM-DD') = ?", *filter.Date)
	}

	if predicate := timeOfDayPredicate(filter.TimeOfDay); predicate != "" {
		qb.AddFilter(predicate)
	}

	// Browsing without a user relation only shows future events; "my
	// events" listings must include past ones.
	if filter.UserID == nil && filter.ParticipantID == nil {
		qb.AddFilter("events.schedule >= CURRENT_TIMESTAMP")
	}

	qb.AddGroupBy("events.id, users.firstname, users.id")
	if withParticipant {
		qb.AddGroupBy("participants.status")
	}
	qb.AddGroupBy("rate.rating, rate.count")
	if withParticipant {
		qb.AddGroupBy("rated_aux.is_rated")
	}
	// Tie-break on id so pagination stays stable when schedules collide.
	qb.AddOrderBy("events.schedule ASC")
	qb.AddOrderBy("events.id ASC")
	qb.AddPagination(filter.Page, filter.Limit)

	return qb
}

// timeOfDayPredicate enumerates the fixed clock ranges of the requested
// buckets. Duplicate and unknown bucket values are ignored.
func timeOfDayPredicate(buckets []int) string {
	seen := make(map[int]bool)
	valid := make([]int, 0, len(buckets))
	for _, b := range buckets {
		if b >= TimeOfDayMorning && b <= TimeOfDayEvening && !seen[b] {
			seen[b] = true
			valid = append(valid, b)
		}
	}
	if len(valid) == 0 {
		return ""
	}
	sort.Ints(valid)

	ranges := make([]string, 0, len(valid))
	for _, b := range valid {
		switch b {
		case TimeOfDayMorning:
			ranges = append(ranges, "(EXTRACT(HOUR FROM events.schedule) >= 6 AND EXTRACT(HOUR FROM events.schedule) < 12)")
		case TimeOfDayAfternoon:
			ranges = append(ranges, "(EXTRACT(HOUR FROM events.schedule) >= 12 AND EXTRACT(HOUR FROM events.schedule) < 18)")
		case TimeOfDayEvening:
			ranges = append(ranges, "(EXTRACT(HOUR FROM events.schedule) >= 18 OR EXTRACT(HOUR FROM events.schedule) < 6)")
		}
	}
	return "(" + strings.Join(ranges, " OR ") + ")"
}
