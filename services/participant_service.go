package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
)

// EventNotifier pushes participant state changes to live feed subscribers.
type EventNotifier interface {
	NotifyEvent(eventID int, messageType string, payload interface{})
}

// Feed message types for participant transitions.
const (
	FeedParticipantRequested = "PARTICIPANT_REQUESTED"
	FeedParticipantAccepted  = "PARTICIPANT_ACCEPTED"
	FeedParticipantRemoved   = "PARTICIPANT_REMOVED"
)

// ParticipantService governs a user's membership in an event:
// request (pending), owner-accept, self-cancel and owner-remove.
type ParticipantService struct {
	participantRepo repositories.ParticipantRepository
	eventRepo       repositories.EventRepository
	notifier        EventNotifier
}

func NewParticipantService(
	participantRepo repositories.ParticipantRepository,
	eventRepo repositories.EventRepository,
	notifier EventNotifier,
) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
		eventRepo:       eventRepo,
		notifier:        notifier,
	}
}

// Join files a pending participation request. A duplicate request for the
// same (event, user) pair is a conflict.
func (s *ParticipantService) Join(ctx context.Context, eventID, userID int) (*models.Participant, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to check event: %w", err)
	}

	participant := &models.Participant{
		EventID: eventID,
		UserID:  userID,
		Status:  false,
	}
	if err := s.participantRepo.Create(ctx, participant); err != nil {
		switch {
		case errors.Is(err, repositories.ErrParticipantConflict):
			return nil, ErrAlreadyRequested
		case errors.Is(err, repositories.ErrParticipantEventInvalid):
			return nil, ErrEventNotFound
		case errors.Is(err, repositories.ErrParticipantUserInvalid):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	s.notify(eventID, FeedParticipantRequested, participant)
	return participant, nil
}

// Accept flips a participant's status to accepted. Only the event owner may
// accept; accepting an already accepted participant is a no-op by design.
func (s *ParticipantService) Accept(ctx context.Context, eventID, participantID, callerID int) error {
	if err := s.requireOwner(ctx, eventID, callerID); err != nil {
		return err
	}

	if err := s.participantRepo.UpdateStatus(ctx, eventID, participantID, true); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to accept participant: %w", err)
	}

	s.notify(eventID, FeedParticipantAccepted, map[string]int{"userId": participantID})
	return nil
}

// Leave removes the caller's own participation, pending or accepted. No
// owner check applies.
func (s *ParticipantService) Leave(ctx context.Context, eventID, userID int) error {
	if err := s.participantRepo.Delete(ctx, eventID, userID); err != nil {
		if errors.Is(err, repositories.ErrParticipantNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	s.notify(eventID, FeedParticipantRemoved, map[string]int{"userId": userID})
	return nil
}

// RemoveAsOwner removes a participant on the owner's behalf.
func (s *ParticipantService) RemoveAsOwner(ctx context.Context, eventID, participantID, callerID int) error {
	if err := s.requireOwner(ctx, eventID, callerID); err != nil {
		return err
	}
	return s.Leave(ctx, eventID, participantID)
}

// GetParticipants lists an event's participants enriched with the caller's
// rating view. A non-nil status restricts the result to accepted (true) or
// pending (false) rows.
func (s *ParticipantService) GetParticipants(ctx context.Context, eventID, callerID int, status *bool) ([]models.ParticipantDetail, error) {
	details, err := s.participantRepo.ListDetailsByEvent(ctx, eventID, callerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}
	if status == nil {
		return details, nil
	}

	filtered := make([]models.ParticipantDetail, 0, len(details))
	for _, d := range details {
		if d.Status == *status {
			filtered = append(filtered, d)
		}
	}
	return filtered, nil
}

func (s *ParticipantService) requireOwner(ctx context.Context, eventID, callerID int) error {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("failed to check event: %w", err)
	}
	if event.OwnerID != callerID {
		return ErrNotEventOwner
	}
	return nil
}

func (s *ParticipantService) notify(eventID int, messageType string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.NotifyEvent(eventID, messageType, payload)
	}
}
