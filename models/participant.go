package models

import "time"

// Participant is a user's membership record for an event. Status is a
// two-state flag: false while the join request is pending, true once the
// owner accepts. The (event_id, user_id) pair is unique.
type Participant struct {
	ID        int       `json:"id"`
	EventID   int       `json:"eventId"`
	UserID    int       `json:"userId"`
	Status    bool      `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// ParticipantDetail is a participant row enriched with the user's display
// fields, the received-rating aggregate and whether the requesting
// counterpart already rated this user for the event.
type ParticipantDetail struct {
	UserID      int     `json:"userId"`
	FirstName   string  `json:"firstname"`
	LastName    string  `json:"lastname"`
	Email       string  `json:"email"`
	PhoneNumber string  `json:"phoneNumber"`
	Status      bool    `json:"participantStatus"`
	Rating      float64 `json:"rating"`
	RateCount   int     `json:"count"`
	IsRated     bool    `json:"isRated"`
}
