package models

import "time"

// EventStatus is the derived lifecycle of an event relative to a point in
// time. It is computed from schedule and duration, never persisted.
type EventStatus int

const (
	EventStatusUpcoming EventStatus = 0
	EventStatusOngoing  EventStatus = 1
	EventStatusFinished EventStatus = 2
)

type Event struct {
	ID          int       `json:"id"`
	OwnerID     int       `json:"ownerId"`
	SportID     int       `json:"sportId"`
	Description string    `json:"description"`
	Schedule    time.Time `json:"schedule"`
	Duration    int       `json:"duration"` // minutes
	Location    string    `json:"location"`
	Expertise   int       `json:"expertise"`
	Remaining   int       `json:"remaining"`
	CreatedAt   time.Time `json:"created_at"`
}

// EndsAt returns the instant the event concludes.
func (e *Event) EndsAt() time.Time {
	return e.Schedule.Add(time.Duration(e.Duration) * time.Minute)
}

// StatusAt derives the lifecycle status at the given instant. The same
// derivation is used for the list endpoint, the detail endpoint and the
// rating eligibility check so the three can never disagree.
func (e *Event) StatusAt(now time.Time) EventStatus {
	switch {
	case now.Before(e.Schedule):
		return EventStatusUpcoming
	case now.After(e.EndsAt()):
		return EventStatusFinished
	default:
		return EventStatusOngoing
	}
}

// EventSummary is one row of the event search result. Capacity is the
// ceiling set by the owner at creation time; AcceptedCount is the number of
// accepted participants; Remaining is capacity minus accepted, computed in
// the projection. Rating/RateCount aggregate the owner's received ratings.
type EventSummary struct {
	EventID       int     `json:"eventId"`
	Description   string  `json:"description"`
	Schedule      string  `json:"schedule"`
	Location      string  `json:"location"`
	Expertise     int     `json:"expertise"`
	SportID       int     `json:"sportId"`
	Capacity      int     `json:"capacity"`
	AcceptedCount int     `json:"acceptedCount"`
	Remaining     int     `json:"remaining"`
	OwnerID       int     `json:"ownerId"`
	OwnerName     string  `json:"ownerFirstname"`
	Rating        float64 `json:"rating"`
	RateCount     int     `json:"rateCount"`

	// ParticipantStatus and IsRated are present only when the search was
	// filtered by participantId.
	ParticipantStatus *bool `json:"participantStatus,omitempty"`
	IsRated           *bool `json:"isRated,omitempty"`

	Status EventStatus `json:"status"`
}

// EventDetail is the single-event view returned by GET /events/{eventId}.
type EventDetail struct {
	EventID       int         `json:"eventId"`
	Description   string      `json:"description"`
	Schedule      string      `json:"schedule"`
	Location      string      `json:"location"`
	Expertise     int         `json:"expertise"`
	SportID       int         `json:"sportId"`
	Duration      int         `json:"duration"`
	Capacity      int         `json:"capacity"`
	AcceptedCount int         `json:"acceptedCount"`
	Remaining     int         `json:"remaining"`
	OwnerID       int         `json:"ownerId"`
	OwnerName     string      `json:"ownerFirstname"`
	Status        EventStatus `json:"status"`
}
