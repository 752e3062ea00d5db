package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/GastonDeS/SportMatch-Back/models"
	"github.com/GastonDeS/SportMatch-Back/repositories"
)

func futureEvent(ownerID int) *models.Event {
	return &models.Event{
		ID:       1,
		OwnerID:  ownerID,
		Schedule: time.Now().Add(24 * time.Hour),
		Duration: 90,
	}
}

func TestParticipantService_Join(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request and notifies the feed", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		participantRepo := &fakeParticipantRepo{}
		notifier := &fakeNotifier{}
		svc := NewParticipantService(participantRepo, eventRepo, notifier)

		participant, err := svc.Join(ctx, 1, 5)
		require.NoError(t, err)
		require.Equal(t, 1, participant.EventID)
		require.Equal(t, 5, participant.UserID)
		require.False(t, participant.Status)
		require.Equal(t, []string{FeedParticipantRequested}, notifier.messages)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewParticipantService(&fakeParticipantRepo{}, &fakeEventRepo{events: map[int]*models.Event{}}, nil)

		_, err := svc.Join(ctx, 99, 5)
		require.ErrorIs(t, err, ErrEventNotFound)
	})

	t.Run("second request for the same pair conflicts", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		participantRepo := &fakeParticipantRepo{createErr: repositories.ErrParticipantConflict}
		svc := NewParticipantService(participantRepo, eventRepo, nil)

		_, err := svc.Join(ctx, 1, 5)
		require.ErrorIs(t, err, ErrAlreadyRequested)
	})
}

func TestParticipantService_Accept(t *testing.T) {
	ctx := context.Background()

	t.Run("owner accepts", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		participantRepo := &fakeParticipantRepo{}
		notifier := &fakeNotifier{}
		svc := NewParticipantService(participantRepo, eventRepo, notifier)

		require.NoError(t, svc.Accept(ctx, 1, 5, 7))
		require.Equal(t, []int{5}, participantRepo.updated)
		require.Equal(t, []string{FeedParticipantAccepted}, notifier.messages)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		svc := NewParticipantService(&fakeParticipantRepo{}, eventRepo, nil)

		require.ErrorIs(t, svc.Accept(ctx, 1, 5, 8), ErrNotEventOwner)
	})

	t.Run("unknown event", func(t *testing.T) {
		svc := NewParticipantService(&fakeParticipantRepo{}, &fakeEventRepo{events: map[int]*models.Event{}}, nil)

		require.ErrorIs(t, svc.Accept(ctx, 99, 5, 7), ErrEventNotFound)
	})

	t.Run("unknown participant", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		participantRepo := &fakeParticipantRepo{updateErr: repositories.ErrParticipantNotFound}
		svc := NewParticipantService(participantRepo, eventRepo, nil)

		require.ErrorIs(t, svc.Accept(ctx, 1, 5, 7), ErrParticipantNotFound)
	})
}

func TestParticipantService_Leave(t *testing.T) {
	ctx := context.Background()

	t.Run("removes own participation without owner check", func(t *testing.T) {
		participantRepo := &fakeParticipantRepo{}
		notifier := &fakeNotifier{}
		svc := NewParticipantService(participantRepo, &fakeEventRepo{}, notifier)

		require.NoError(t, svc.Leave(ctx, 1, 5))
		require.Equal(t, []int{5}, participantRepo.deleted)
		require.Equal(t, []string{FeedParticipantRemoved}, notifier.messages)
	})

	t.Run("missing participation", func(t *testing.T) {
		participantRepo := &fakeParticipantRepo{deleteErr: repositories.ErrParticipantNotFound}
		svc := NewParticipantService(participantRepo, &fakeEventRepo{}, nil)

		require.ErrorIs(t, svc.Leave(ctx, 1, 5), ErrParticipantNotFound)
	})
}

func TestParticipantService_RemoveAsOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("owner removes a participant", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		participantRepo := &fakeParticipantRepo{}
		svc := NewParticipantService(participantRepo, eventRepo, nil)

		require.NoError(t, svc.RemoveAsOwner(ctx, 1, 5, 7))
		require.Equal(t, []int{5}, participantRepo.deleted)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
		svc := NewParticipantService(&fakeParticipantRepo{}, eventRepo, nil)

		require.ErrorIs(t, svc.RemoveAsOwner(ctx, 1, 5, 8), ErrNotEventOwner)
	})
}

func TestParticipantService_GetParticipants(t *testing.T) {
	ctx := context.Background()
	details := []models.ParticipantDetail{
		{UserID: 5, Status: true},
		{UserID: 6, Status: false},
		{UserID: 8, Status: true},
	}

	eventRepo := &fakeEventRepo{events: map[int]*models.Event{1: futureEvent(7)}}
	svc := NewParticipantService(&fakeParticipantRepo{details: details}, eventRepo, nil)

	t.Run("no status filter returns everyone", func(t *testing.T) {
		got, err := svc.GetParticipants(ctx, 1, 7, nil)
		require.NoError(t, err)
		require.Len(t, got, 3)
	})

	t.Run("accepted only", func(t *testing.T) {
		accepted := true
		got, err := svc.GetParticipants(ctx, 1, 7, &accepted)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, d := range got {
			require.True(t, d.Status)
		}
	})

	t.Run("pending only", func(t *testing.T) {
		pending := false
		got, err := svc.GetParticipants(ctx, 1, 7, &pending)
		require.NoError(t, err)
		require.Len(t, got, 1)
		require.Equal(t, 6, got[0].UserID)
	})
}
