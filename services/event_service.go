package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
)

// EventPage is the paginated search response envelope. PageSize is the
// number of items actually returned, not the requested limit.
type EventPage struct {
	Page     int                   `json:"page"`
	PageSize int                   `json:"pageSize"`
	Items    []models.EventSummary `json:"items"`
}

type CreateEventInput struct {
	SportID     int    `json:"sportId"`
	Expertise   int    `json:"expertise"`
	Schedule    string `json:"schedule"` // RFC 3339
	Location    string `json:"location"`
	Remaining   int    `json:"remaining"`
	Duration    int    `json:"duration"` // minutes
	Description string `json:"description"`
}

type EventService struct {
	eventRepo repositories.EventRepository
	sportRepo repositories.SportRepository
}

func NewEventService(eventRepo repositories.EventRepository, sportRepo repositories.SportRepository) *EventService {
	return &EventService{eventRepo: eventRepo, sportRepo: sportRepo}
}

// SearchEvents normalizes the raw query parameters and runs the aggregate
// search query.
func (s *EventService) SearchEvents(ctx context.Context, query url.Values) (*EventPage, error) {
	filter, err := ParseEventFilters(query)
	if err != nil {
		return nil, err
	}

	items, err := s.eventRepo.Search(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search events: %w", err)
	}

	return &EventPage{
		Page:     filter.Page,
		PageSize: len(items),
		Items:    items,
	}, nil
}

func (s *EventService) GetEventDetail(ctx context.Context, eventID int) (*models.EventDetail, error) {
	detail, err := s.eventRepo.GetDetailByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event detail: %w", err)
	}
	return detail, nil
}

func (s *EventService) CreateEvent(ctx context.Context, ownerID int, input CreateEventInput) (*models.Event, error) {
	schedule, err := time.Parse(time.RFC3339, input.Schedule)
	if err != nil {
		return nil, fmt.Errorf("%w: schedule must be an RFC 3339 timestamp", ErrValidationFailed)
	}
	if input.SportID < 1 {
		return nil, fmt.Errorf("%w: sportId is required", ErrValidationFailed)
	}
	if input.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrValidationFailed)
	}
	if input.Duration < 1 {
		return nil, fmt.Errorf("%w: duration must be at least one minute", ErrValidationFailed)
	}
	if input.Remaining < 0 {
		return nil, fmt.Errorf("%w: remaining cannot be negative", ErrValidationFailed)
	}
	if len(input.Description) > 100 {
		return nil, fmt.Errorf("%w: description must be at most 100 characters", ErrValidationFailed)
	}

	if _, err := s.sportRepo.GetByID(ctx, input.SportID); err != nil {
		if errors.Is(err, repositories.ErrSportNotFound) {
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to verify sport: %w", err)
	}

	event := &models.Event{
		OwnerID:     ownerID,
		SportID:     input.SportID,
		Description: input.Description,
		Schedule:    schedule,
		Duration:    input.Duration,
		Location:    input.Location,
		Expertise:   input.Expertise,
		Remaining:   input.Remaining,
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		switch {
		case errors.Is(err, repositories.ErrEventInvalidOwner):
			return nil, ErrOwnerNotFound
		case errors.Is(err, repositories.ErrEventInvalidSport):
			return nil, ErrSportNotFound
		}
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}
