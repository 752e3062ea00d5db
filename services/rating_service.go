package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
	"golang.org/x/sync/errgroup"
)

// RatingService records post-event ratings between co-participants.
type RatingService struct {
	eventRepo       repositories.EventRepository
	participantRepo repositories.ParticipantRepository
	ratingRepo      repositories.RatingRepository
}

func NewRatingService(
	eventRepo repositories.EventRepository,
	participantRepo repositories.ParticipantRepository,
	ratingRepo repositories.RatingRepository,
) *RatingService {
	return &RatingService{
		eventRepo:       eventRepo,
		participantRepo: participantRepo,
		ratingRepo:      ratingRepo,
	}
}

// RateUser records a 1..5 score from rater to rated for a concluded event
// and returns the rated user's refreshed aggregate. Both parties must have
// attended the event as its owner or an accepted participant. The concluded
// check uses the same schedule+duration arithmetic as the status derivation,
// so an event is rateable exactly when it is finished.
func (s *RatingService) RateUser(ctx context.Context, raterID, ratedID, eventID, score int) (*models.RatingAggregate, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidRatingScore
	}
	if raterID == ratedID {
		return nil, ErrSelfRating
	}

	var (
		event        *models.Event
		participants []models.Participant
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		event, err = s.eventRepo.GetByID(gCtx, eventID)
		return err
	})
	g.Go(func() error {
		var err error
		participants, err = s.participantRepo.ListByEvent(gCtx, eventID)
		return err
	})
	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to load event for rating: %w", err)
	}

	if event.EndsAt().After(time.Now()) {
		return nil, ErrEventNotRateable
	}

	if !s.attended(event, participants, raterID) || !s.attended(event, participants, ratedID) {
		return nil, ErrNotEventParticipant
	}

	rating := &models.Rating{
		Rater:   raterID,
		Rated:   ratedID,
		EventID: eventID,
		Rating:  score,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		switch {
		case errors.Is(err, repositories.ErrRatingConflict):
			return nil, ErrAlreadyRated
		case errors.Is(err, repositories.ErrRatingUserInvalid):
			return nil, ErrUserNotFound
		case errors.Is(err, repositories.ErrRatingEventInvalid):
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to create rating: %w", err)
	}

	aggregate, err := s.ratingRepo.AggregateForUser(ctx, ratedID)
	if err != nil {
		return nil, fmt.Errorf("failed to refresh rating aggregate: %w", err)
	}
	return aggregate, nil
}

// attended reports whether the user took part in the event, either as its
// owner or as an accepted participant. Pending requests do not count.
func (s *RatingService) attended(event *models.Event, participants []models.Participant, userID int) bool {
	if event.OwnerID == userID {
		return true
	}
	for _, p := range participants {
		if p.UserID == userID && p.Status {
			return true
		}
	}
	return false
}
