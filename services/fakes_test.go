package services

import (
	"context"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
)

// fakeEventRepo serves canned events keyed by id.
type fakeEventRepo struct {
	events    map[int]*models.Event
	createErr error
}

func (f *fakeEventRepo) Create(ctx context.Context, event *models.Event) error {
	if f.createErr != nil {
		return f.createErr
	}
	event.ID = len(f.events) + 1
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id int) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, repositories.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) GetDetailByID(ctx context.Context, id int) (*models.EventDetail, error) {
	if _, ok := f.events[id]; !ok {
		return nil, repositories.ErrEventNotFound
	}
	return &models.EventDetail{EventID: id}, nil
}

func (f *fakeEventRepo) Search(ctx context.Context, filter repositories.EventSearchFilter) ([]models.EventSummary, error) {
	return nil, nil
}

type fakeParticipantRepo struct {
	participants []models.Participant
	details      []models.ParticipantDetail
	createErr    error
	updateErr    error
	deleteErr    error

	updated []int
	deleted []int
}

func (f *fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	if f.createErr != nil {
		return f.createErr
	}
	p.ID = len(f.participants) + 1
	f.participants = append(f.participants, *p)
	return nil
}

func (f *fakeParticipantRepo) UpdateStatus(ctx context.Context, eventID, userID int, status bool) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = append(f.updated, userID)
	return nil
}

func (f *fakeParticipantRepo) Delete(ctx context.Context, eventID, userID int) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, userID)
	return nil
}

func (f *fakeParticipantRepo) ListByEvent(ctx context.Context, eventID int) ([]models.Participant, error) {
	return f.participants, nil
}

func (f *fakeParticipantRepo) ListDetailsByEvent(ctx context.Context, eventID, callerID int) ([]models.ParticipantDetail, error) {
	return f.details, nil
}

type fakeRatingRepo struct {
	createErr error
	created   []models.Rating
	aggregate models.RatingAggregate
}

func (f *fakeRatingRepo) Create(ctx context.Context, rating *models.Rating) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, *rating)
	return nil
}

func (f *fakeRatingRepo) AggregateForUser(ctx context.Context, userID int) (*models.RatingAggregate, error) {
	aggregate := f.aggregate
	return &aggregate, nil
}

// fakeNotifier records feed broadcasts.
type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) NotifyEvent(eventID int, messageType string, payload interface{}) {
	f.messages = append(f.messages, messageType)
}
