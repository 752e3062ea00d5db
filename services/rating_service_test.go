package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
)

func concludedEvent(ownerID int) *models.Event {
	return &models.Event{
		ID:       1,
		OwnerID:  ownerID,
		Schedule: time.Now().Add(-2 * time.Hour),
		Duration: 90,
	}
}

func TestRatingService_RateUser(t *testing.T) {
	ctx := context.Background()
	accepted := models.Participant{EventID: 1, UserID: 5, Status: true}
	pending := models.Participant{EventID: 1, UserID: 6, Status: false}

	t.Run("participant rates the owner of a concluded event", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: concludedEvent(7)}}
		participantRepo := &fakeParticipantRepo{participants: []models.Participant{accepted}}
		ratingRepo := &fakeRatingRepo{aggregate: models.RatingAggregate{Rating: 4.0, Count: 3}}
		svc := NewRatingService(eventRepo, participantRepo, ratingRepo)

		aggregate, err := svc.RateUser(ctx, 5, 7, 1, 4)
		require.NoError(t, err)
		require.Len(t, ratingRepo.created, 1)
		require.Equal(t, models.Rating{Rater: 5, Rated: 7, EventID: 1, Rating: 4}, ratingRepo.created[0])
		require.Equal(t, &models.RatingAggregate{Rating: 4.0, Count: 3}, aggregate)
	})

	t.Run("score out of range", func(t *testing.T) {
		svc := NewRatingService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeRatingRepo{})

		_, err := svc.RateUser(ctx, 5, 7, 1, 0)
		require.ErrorIs(t, err, ErrInvalidRatingScore)
		_, err = svc.RateUser(ctx, 5, 7, 1, 6)
		require.ErrorIs(t, err, ErrInvalidRatingScore)
	})

	t.Run("self rating", func(t *testing.T) {
		svc := NewRatingService(&fakeEventRepo{}, &fakeParticipantRepo{}, &fakeRatingRepo{})

		_, err := svc.RateUser(ctx, 5, 5, 1, 4)
		require.ErrorIs(t, err, ErrSelfRating)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewRatingService(&fakeEventRepo{events: map[int]*models.Event{}}, &fakeParticipantRepo{}, &fakeRatingRepo{})

		_, err := svc.RateUser(ctx, 5, 7, 1, 4)
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("event not yet concluded", func(t *testing.T) {
		ongoing := &models.Event{
			ID:       1,
			OwnerID:  7,
			Schedule: time.Now().Add(-30 * time.Minute),
			Duration: 90,
		}
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: ongoing}}
		participantRepo := &fakeParticipantRepo{participants: []models.Participant{accepted}}
		svc := NewRatingService(eventRepo, participantRepo, &fakeRatingRepo{})

		_, err := svc.RateUser(ctx, 5, 7, 1, 4)
		require.ErrorIs(t, err, ErrEventNotRateable)
	})

	t.Run("pending participant cannot rate", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: concludedEvent(7)}}
		participantRepo := &fakeParticipantRepo{participants: []models.Participant{pending}}
		svc := NewRatingService(eventRepo, participantRepo, &fakeRatingRepo{})

		_, err := svc.RateUser(ctx, 6, 7, 1, 4)
		require.ErrorIs(t, err, ErrNotEventParticipant)
	})

	t.Run("rated user must have attended", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: concludedEvent(7)}}
		participantRepo := &fakeParticipantRepo{participants: []models.Participant{accepted}}
		svc := NewRatingService(eventRepo, participantRepo, &fakeRatingRepo{})

		_, err := svc.RateUser(ctx, 5, 99, 1, 4)
		require.ErrorIs(t, err, ErrNotEventParticipant)
	})

	t.Run("second rating of the same triple conflicts", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: concludedEvent(7)}}
		participantRepo := &fakeParticipantRepo{participants: []models.Participant{accepted}}
		ratingRepo := &fakeRatingRepo{createErr: repositories.ErrRatingConflict}
		svc := NewRatingService(eventRepo, participantRepo, ratingRepo)

		_, err := svc.RateUser(ctx, 5, 7, 1, 4)
		require.ErrorIs(t, err, ErrAlreadyRated)
	})
}
